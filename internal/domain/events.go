package domain

import "time"

// EventType тип события об изменении бронирования
type EventType string

const (
	EventReservationValidated EventType = "reservation.validated"
	EventReservationRefused   EventType = "reservation.refused"
)

// ReservationStatusChanged published after an effective status transition
type ReservationStatusChanged struct {
	Type           EventType         `json:"type"`
	ReservationID  int64             `json:"reservation_id"`
	PitchID        int64             `json:"pitch_id"`
	RequesterID    int64             `json:"requester_id"`
	PreviousStatus ReservationStatus `json:"previous_status"`
	Status         ReservationStatus `json:"status"`
	Date           string            `json:"date"`
	StartHour      int               `json:"start_hour"`
	DurationHours  int               `json:"duration_hours"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// NewReservationStatusChanged builds the event for r, which already carries the new status
func NewReservationStatusChanged(r *Reservation, previous ReservationStatus, at time.Time) ReservationStatusChanged {
	eventType := EventReservationValidated
	if r.Status == StatusRefused {
		eventType = EventReservationRefused
	}

	return ReservationStatusChanged{
		Type:           eventType,
		ReservationID:  r.ID,
		PitchID:        r.PitchID,
		RequesterID:    r.RequesterID,
		PreviousStatus: previous,
		Status:         r.Status,
		Date:           r.Date.Format(DateFormat),
		StartHour:      r.StartHour,
		DurationHours:  r.DurationHours,
		OccurredAt:     at,
	}
}
