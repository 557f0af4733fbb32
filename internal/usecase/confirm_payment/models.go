package confirm_payment

import "github.com/m04kA/SMC-PitchBookingService/internal/domain"

// PathPayment метка пути создания бронирования для метрик
const PathPayment = "payment"

// Результаты обработки callback'а для метрик
const (
	resultSuccessful = "successful"
	resultFailed     = "failed"
	resultPending    = "pending"
	resultDuplicate  = "duplicate"
	resultConflict   = "conflict"
	resultNotFound   = "not_found"
)

// Request модель запроса подтверждения платежа
type Request struct {
	OrderReference string
}

// Response итог обработки
type Response struct {
	OrderReference   string
	Outcome          domain.PaymentOutcome
	AlreadyProcessed bool  // платеж уже был обработан ранее, повтор ничего не изменил
	ReservationID    int64 // ID созданного бронирования (если есть)
}
