package create_reservation

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
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListActiveByPitchAndDate(ctx context.Context, pitchID int64, date time.Time) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик созданных бронирований
type Metrics interface {
	IncReservationCreated(path string)
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
