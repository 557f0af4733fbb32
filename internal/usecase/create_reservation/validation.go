package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PitchID <= 0 {
		return fmt.Errorf("%w: pitchID must be positive", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Hours) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrEmptySelection)
	}

	return nil
}

// checkHours проверяет выбранные часы на фоне текущей занятости.
// Занятый час означает конфликт, остальные нарушения считаются ошибкой ввода.
func checkHours(hours []int, view domain.DayView) ([]int, error) {
	sorted, err := domain.ValidateHours(hours, view)
	if err == nil {
		return sorted, nil
	}
	if errors.Is(err, domain.ErrHourReserved) {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityConflict, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
