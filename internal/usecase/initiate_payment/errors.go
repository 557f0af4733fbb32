package initiate_payment

import "errors"

var (
	// ErrPitchNotFound возвращается, когда поле не найдено
	ErrPitchNotFound = errors.New("initiate_payment: pitch not found")

	// ErrAvailabilityConflict возвращается, когда выбранные часы уже заняты
	ErrAvailabilityConflict = errors.New("initiate_payment: hours are no longer available")

	// ErrGateway возвращается, когда платежный шлюз отклонил платеж или недоступен
	ErrGateway = errors.New("initiate_payment: payment gateway error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("initiate_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initiate_payment: internal error")
)

// GatewayError отказ шлюза. Message содержит сообщение шлюза, если оно было
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return ErrGateway.Error() + ": " + e.Err.Error()
	}
	return ErrGateway.Error() + ": " + e.Message
}

// Is позволяет проверять ошибку через errors.Is(err, ErrGateway)
func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
