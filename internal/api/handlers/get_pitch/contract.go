package get_pitch

import (
	"context"

	"github.com/m04kA/SMC-PitchBookingService/internal/service/pitches/models"
)

type PitchService interface {
	GetByID(ctx context.Context, id int64) (*models.PitchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
