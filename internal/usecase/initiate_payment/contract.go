package initiate_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/integrations/paymentgateway"
)

// PitchRepository интерфейс репозитория полей
type PitchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pitch, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveByPitchAndDate(ctx context.Context, pitchID int64, date time.Time) ([]*domain.Reservation, error)
}

// PaymentRepository интерфейс репозитория ожидающих платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.PendingPayment) (*domain.PendingPayment, error)
	UpdateGatewayData(ctx context.Context, orderReference, externalReference, redirectURL string) error
	MarkStatus(ctx context.Context, orderReference string, status domain.PaymentStatus) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, req paymentgateway.PaymentRequest) (*paymentgateway.PaymentSession, error)
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
