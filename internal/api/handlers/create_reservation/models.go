package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-PitchBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	PitchID     int64  `json:"pitchId"`
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	Hours       []int  `json:"hours"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64  `json:"id"`
	PitchID       int64  `json:"pitchId"`
	RequesterID   int64  `json:"requesterId"`
	BookingDate   string `json:"bookingDate"`
	StartHour     int    `json:"startHour"`
	EndHour       int    `json:"endHour"`
	DurationHours int    `json:"durationHours"`
	TotalAmount   int64  `json:"totalAmount"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(requesterID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		PitchID:     r.PitchID,
		RequesterID: requesterID,
		Date:        date,
		Hours:       r.Hours,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:            resp.ID,
		PitchID:       resp.PitchID,
		RequesterID:   resp.RequesterID,
		BookingDate:   resp.Date.Format(domain.DateFormat),
		StartHour:     resp.StartHour,
		EndHour:       resp.StartHour + resp.DurationHours,
		DurationHours: resp.DurationHours,
		TotalAmount:   resp.TotalAmount,
		Status:        string(resp.Status),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
