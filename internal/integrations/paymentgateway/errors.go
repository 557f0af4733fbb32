package paymentgateway

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected шлюз отклонил запрос (см. RejectedError для сообщения шлюза)
	ErrRejected = errors.New("paymentgateway: request rejected")

	// ErrUnavailable шлюз недоступен или вернул неожиданную ошибку транспорта
	ErrUnavailable = errors.New("paymentgateway: gateway unavailable")

	// ErrInvalidResponse шлюз вернул ответ без обязательных полей
	ErrInvalidResponse = errors.New("paymentgateway: invalid response")

	// ErrUnsupportedEvent событие webhook не относится к завершению платежа
	ErrUnsupportedEvent = errors.New("paymentgateway: unsupported event")

	// ErrInvalidRequest некорректные параметры платежа
	ErrInvalidRequest = errors.New("paymentgateway: invalid request")
)

// RejectedError отказ шлюза с его собственным сообщением
type RejectedError struct {
	Code    string
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: %s (%s)", ErrRejected, e.Message, e.Code)
}

// Is позволяет проверять отказ через errors.Is(err, ErrRejected)
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// GatewayMessage возвращает сообщение шлюза, если оно есть в цепочке ошибок
func GatewayMessage(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	return ""
}
