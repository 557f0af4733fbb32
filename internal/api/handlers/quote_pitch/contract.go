package quote_pitch

import (
	"context"

	"github.com/m04kA/SMC-PitchBookingService/internal/service/pitches/models"
)

type PitchService interface {
	Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
