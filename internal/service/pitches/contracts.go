package pitches

import (
	"context"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

// PitchRepository интерфейс репозитория полей
type PitchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pitch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
