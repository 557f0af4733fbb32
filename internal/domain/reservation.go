package domain

import (
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending        ReservationStatus = "pending"
	StatusValidated      ReservationStatus = "validated"
	StatusRefused        ReservationStatus = "refused"
	StatusPendingPayment ReservationStatus = "pending_payment"
)

// IsValid returns true for a known status
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusRefused, StatusPendingPayment:
		return true
	}
	return false
}

// IsActive returns true if a reservation in this status blocks its hours
func (s ReservationStatus) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s ReservationStatus) IsTerminal() bool {
	for _, terminal := range TerminalStatuses {
		if s == terminal {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to target
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusValidated || target == StatusRefused
	case StatusPendingPayment:
		return target == StatusValidated
	default:
		return false
	}
}

// Reservation represents a contiguous block of hours on one pitch and date
type Reservation struct {
	ID            int64
	PitchID       int64
	RequesterID   int64
	Date          time.Time // календарная дата (время не используется)
	StartHour     int
	DurationHours int
	TotalAmount   int64
	Status        ReservationStatus

	// ID платежа во внешнем шлюзе (только для оплаченных бронирований)
	PaymentReference *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndHour returns the exclusive end of the reserved interval
func (r *Reservation) EndHour() int {
	return r.StartHour + r.DurationHours
}

// Hours returns every hour covered by [StartHour, EndHour)
func (r *Reservation) Hours() []int {
	hours := make([]int, 0, r.DurationHours)
	for h := r.StartHour; h < r.EndHour(); h++ {
		hours = append(hours, h)
	}
	return hours
}

// Overlaps returns true if [start, end) intersects the reservation interval
func (r *Reservation) Overlaps(start, end int) bool {
	return r.StartHour < end && start < r.EndHour()
}

// IsActive returns true if the reservation blocks its hours
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// PitchReservationsFilter фильтр для списка бронирований поля
type PitchReservationsFilter struct {
	PitchID  int64              // Обязательный параметр
	DateFrom *time.Time         // Начало периода (опционально)
	DateTo   *time.Time         // Конец периода включительно (опционально)
	Status   *ReservationStatus // Фильтр по статусу (опционально)
}

// DateOnly обрезает время, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
