package reservations

import (
	"context"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByRequester(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	ListByPitch(ctx context.Context, filter domain.PitchReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.ReservationStatus) (bool, error)
}

// PitchRepository интерфейс репозитория полей
type PitchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pitch, error)
}

// Notifier доставка событий об изменении бронирования
type Notifier interface {
	Notify(ctx context.Context, event domain.ReservationStatusChanged)
}

// Metrics счетчик переходов статусов
type Metrics interface {
	IncTransition(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
