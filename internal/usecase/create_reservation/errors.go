package create_reservation

import "errors"

var (
	// ErrPitchNotFound возвращается, когда поле не найдено
	ErrPitchNotFound = errors.New("create_reservation: pitch not found")

	// ErrAvailabilityConflict возвращается, когда выбранные часы уже заняты
	ErrAvailabilityConflict = errors.New("create_reservation: hours are no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
