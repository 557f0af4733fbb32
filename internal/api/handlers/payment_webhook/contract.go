package payment_webhook

import (
	"context"

	confirmPayment "github.com/m04kA/SMC-PitchBookingService/internal/usecase/confirm_payment"
)

type ConfirmPaymentUseCase interface {
	ExecuteEvent(ctx context.Context, eventID string) (*confirmPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
