package pitches

import "errors"

var (
	// ErrPitchNotFound возвращается, когда поле не найдено
	ErrPitchNotFound = errors.New("pitch not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
