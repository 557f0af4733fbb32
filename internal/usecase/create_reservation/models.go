package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

// PathDirect метка пути создания для метрик
const PathDirect = "direct"

// Request модель запроса на создание бронирования
type Request struct {
	PitchID     int64     // ID поля
	RequesterID int64     // ID пользователя, отправившего заявку
	Date        time.Time // Дата бронирования (без времени)
	Hours       []int     // Выбранные часы (непрерывный блок)
}

// Response созданное бронирование
type Response struct {
	ID            int64
	PitchID       int64
	RequesterID   int64
	Date          time.Time
	StartHour     int
	DurationHours int
	TotalAmount   int64
	Status        domain.ReservationStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func fromDomain(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		PitchID:       r.PitchID,
		RequesterID:   r.RequesterID,
		Date:          r.Date,
		StartHour:     r.StartHour,
		DurationHours: r.DurationHours,
		TotalAmount:   r.TotalAmount,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
