package get_pitch_reservations

import (
	"context"

	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetPitchReservations(ctx context.Context, req *models.GetPitchReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
