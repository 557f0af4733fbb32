package review_reservation

import (
	"context"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Validate(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error)
	Refuse(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
