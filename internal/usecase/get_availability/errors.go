package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrUnavailableData возвращается, когда занятость не удалось прочитать после всех попыток.
	// Вызывающая сторона должна считать часы неизвестными, а не свободными.
	ErrUnavailableData = errors.New("get_availability: availability data unavailable")
)
