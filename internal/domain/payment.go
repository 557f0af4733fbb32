package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSnapshot снимок бронирования не удалось разобрать
var ErrInvalidSnapshot = errors.New("payment: invalid reservation snapshot")

// PaymentStatus статус записи об ожидающем платеже
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"  // ждет результата от шлюза
	PaymentFailed   PaymentStatus = "failed"   // шлюз отклонил платеж или не ответил
	PaymentConflict PaymentStatus = "conflict" // оплачено, но часы уже заняты: нужен ручной возврат
)

// PaymentOutcome итог платежа по данным шлюза
type PaymentOutcome string

const (
	OutcomeSuccessful PaymentOutcome = "successful"
	OutcomeFailed     PaymentOutcome = "failed"
	OutcomePending    PaymentOutcome = "pending"
)

// ReservationSnapshot serialized reservation-to-be stored with a pending payment
type ReservationSnapshot struct {
	PitchID       int64             `json:"pitch_id"`
	RequesterID   int64             `json:"requester_id"`
	Date          string            `json:"date"` // YYYY-MM-DD
	StartHour     int               `json:"start_hour"`
	DurationHours int               `json:"duration_hours"`
	TotalAmount   int64             `json:"total_amount"`
	Status        ReservationStatus `json:"status"`
}

// NewReservationSnapshot captures r with status pending_payment
func NewReservationSnapshot(r *Reservation) ReservationSnapshot {
	return ReservationSnapshot{
		PitchID:       r.PitchID,
		RequesterID:   r.RequesterID,
		Date:          r.Date.Format(DateFormat),
		StartHour:     r.StartHour,
		DurationHours: r.DurationHours,
		TotalAmount:   r.TotalAmount,
		Status:        StatusPendingPayment,
	}
}

// Encode serializes the snapshot to JSON
func (s ReservationSnapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeReservationSnapshot parses and validates a stored snapshot
func DecodeReservationSnapshot(data []byte) (ReservationSnapshot, error) {
	var s ReservationSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return ReservationSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if _, err := s.ToReservation(StatusValidated, nil); err != nil {
		return ReservationSnapshot{}, err
	}
	return s, nil
}

// ToReservation materializes the snapshot into a reservation with the given status
func (s ReservationSnapshot) ToReservation(status ReservationStatus, paymentReference *string) (*Reservation, error) {
	date, err := time.Parse(DateFormat, s.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidSnapshot, s.Date)
	}
	if s.PitchID <= 0 || s.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: missing pitch or requester", ErrInvalidSnapshot)
	}
	if !IsValidHour(s.StartHour) || s.DurationHours < 1 || s.StartHour+s.DurationHours > HoursPerDay {
		return nil, fmt.Errorf("%w: hours [%d, %d)", ErrInvalidSnapshot, s.StartHour, s.StartHour+s.DurationHours)
	}

	return &Reservation{
		PitchID:          s.PitchID,
		RequesterID:      s.RequesterID,
		Date:             date,
		StartHour:        s.StartHour,
		DurationHours:    s.DurationHours,
		TotalAmount:      s.TotalAmount,
		Status:           status,
		PaymentReference: paymentReference,
	}, nil
}

// PendingPayment staging record of the pay-now path.
// No reservation row exists until the gateway confirms the payment.
type PendingPayment struct {
	ID                int64
	OrderReference    string
	Snapshot          ReservationSnapshot
	Amount            int64
	Currency          string
	Status            PaymentStatus
	ExternalReference *string // ID платежа в шлюзе
	RedirectURL       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ConsumedPayment tombstone left after a pending payment was materialized
type ConsumedPayment struct {
	OrderReference string
	ReservationID  int64
	ConsumedAt     time.Time
}
