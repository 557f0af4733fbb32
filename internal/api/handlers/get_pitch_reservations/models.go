package get_pitch_reservations

import (
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-PitchBookingService/pkg/ptr"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(actor domain.Actor, pitchID int64, dateFromStr, dateToStr, statusStr string) (*models.GetPitchReservationsRequest, error) {
	req := &models.GetPitchReservationsRequest{
		Actor:   actor,
		PitchID: pitchID,
	}

	if dateFromStr != "" {
		dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &dateFrom
	}

	if dateToStr != "" {
		dateTo, err := time.Parse(domain.DateFormat, dateToStr)
		if err != nil {
			return nil, err
		}
		req.DateTo = &dateTo
	}

	if statusStr != "" {
		req.Status = ptr.Ptr(statusStr)
	}

	return req, nil
}
