package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/integrations/paymentgateway"
)

// PaymentRepository интерфейс репозитория ожидающих платежей
type PaymentRepository interface {
	GetByReference(ctx context.Context, orderReference string) (*domain.PendingPayment, error)
	MarkStatus(ctx context.Context, orderReference string, status domain.PaymentStatus) error
	Delete(ctx context.Context, orderReference string) error
	CreateTombstone(ctx context.Context, orderReference string, reservationID int64) error
	GetTombstone(ctx context.Context, orderReference string) (*domain.ConsumedPayment, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	GetCharge(ctx context.Context, externalReference string) (*paymentgateway.ChargeResult, error)
	VerifyEvent(ctx context.Context, eventID string) (*paymentgateway.ChargeResult, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier доставка событий об изменении бронирования
type Notifier interface {
	Notify(ctx context.Context, event domain.ReservationStatusChanged)
}

// Metrics счетчики обработки callback'ов
type Metrics interface {
	IncPaymentCallback(result string)
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
