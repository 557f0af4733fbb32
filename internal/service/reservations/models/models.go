package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("dateFrom is after dateTo")
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetPitchReservationsRequest запрос на получение бронирований поля
type GetPitchReservationsRequest struct {
	Actor    domain.Actor `json:"-"`
	PitchID  int64        `json:"pitchId"`
	DateFrom *time.Time   `json:"dateFrom,omitempty"` // Начало периода (опционально)
	DateTo   *time.Time   `json:"dateTo,omitempty"`   // Конец периода включительно (опционально)
	Status   *string      `json:"status,omitempty"`   // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPitchReservationsRequest) ToDomainFilter() (domain.PitchReservationsFilter, error) {
	filter := domain.PitchReservationsFilter{
		PitchID:  r.PitchID,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
	}

	if r.DateFrom != nil && r.DateTo != nil && r.DateFrom.After(*r.DateTo) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID               int64     `json:"id"`
	PitchID          int64     `json:"pitchId"`
	RequesterID      int64     `json:"requesterId"`
	BookingDate      string    `json:"bookingDate"` // "2025-10-15"
	StartHour        int       `json:"startHour"`
	EndHour          int       `json:"endHour"` // не включается
	DurationHours    int       `json:"durationHours"`
	TotalAmount      int64     `json:"totalAmount"`
	Status           string    `json:"status"`
	PaymentReference *string   `json:"paymentReference,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:               r.ID,
		PitchID:          r.PitchID,
		RequesterID:      r.RequesterID,
		BookingDate:      r.Date.Format(domain.DateFormat),
		StartHour:        r.StartHour,
		EndHour:          r.EndHour(),
		DurationHours:    r.DurationHours,
		TotalAmount:      r.TotalAmount,
		Status:           string(r.Status),
		PaymentReference: r.PaymentReference,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if r == nil {
			continue
		}
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
