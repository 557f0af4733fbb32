package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

// PitchRepository интерфейс репозитория полей
type PitchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pitch, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveByPitchAndDate(ctx context.Context, pitchID int64, date time.Time) ([]*domain.Reservation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
