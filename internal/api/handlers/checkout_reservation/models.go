package checkout_reservation

import (
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	initiatePayment "github.com/m04kA/SMC-PitchBookingService/internal/usecase/initiate_payment"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	PitchID     int64  `json:"pitchId"`
	BookingDate string `json:"bookingDate"`
	Hours       []int  `json:"hours"`
}

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	OrderReference string `json:"orderReference"`
	RedirectURL    string `json:"redirectUrl"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	StartHour      int    `json:"startHour"`
	EndHour        int    `json:"endHour"`
}

func (r *CheckoutRequest) ToUseCaseRequest(requesterID int64) (*initiatePayment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &initiatePayment.Request{
		PitchID:     r.PitchID,
		RequesterID: requesterID,
		Date:        date,
		Hours:       r.Hours,
	}, nil
}

func FromUseCaseResponse(resp *initiatePayment.Response) *CheckoutResponse {
	return &CheckoutResponse{
		OrderReference: resp.OrderReference,
		RedirectURL:    resp.RedirectURL,
		Amount:         resp.Amount,
		Currency:       resp.Currency,
		StartHour:      resp.StartHour,
		EndHour:        resp.StartHour + resp.DurationHours,
	}
}
