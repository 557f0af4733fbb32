package sweep_pending_payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	confirmPayment "github.com/m04kA/SMC-PitchBookingService/internal/usecase/confirm_payment"
)

// PaymentRepository интерфейс репозитория ожидающих платежей
type PaymentRepository interface {
	ListStaleCharged(ctx context.Context, before time.Time, limit int) ([]*domain.PendingPayment, error)
	DeleteAbandoned(ctx context.Context, before time.Time) (int64, error)
}

// PaymentConfirmer сверяет запись с платежным шлюзом и материализует оплаченное бронирование
type PaymentConfirmer interface {
	Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error)
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
