package confirm_payment

import "errors"

var (
	// ErrReferenceNotFound возвращается, когда order reference неизвестен и не был обработан
	ErrReferenceNotFound = errors.New("confirm_payment: order reference not found")

	// ErrAvailabilityConflict возвращается, когда оплаченные часы уже заняты.
	// Запись остается в статусе conflict для ручного возврата средств.
	ErrAvailabilityConflict = errors.New("confirm_payment: paid hours are no longer available")

	// ErrIgnoredEvent возвращается для событий webhook, не связанных с завершением платежа
	ErrIgnoredEvent = errors.New("confirm_payment: event ignored")

	// ErrGateway возвращается, когда шлюз не смог сообщить состояние платежа
	ErrGateway = errors.New("confirm_payment: payment gateway error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)

// errAlreadyConsumed откатывает транзакцию, когда параллельный callback уже обработал платеж
var errAlreadyConsumed = errors.New("confirm_payment: already consumed")
