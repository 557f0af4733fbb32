package initiate_payment

import (
	"errors"
	"fmt"
	"net/url"

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

// checkHours проверяет выбранные часы на фоне текущей занятости
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

// returnURL добавляет order reference к адресу возврата
func returnURL(base, orderReference string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("ref", orderReference)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// description формирует описание платежа для шлюза
func description(pitch *domain.Pitch, r *domain.Reservation) string {
	d := fmt.Sprintf("%s, %s %02d:00-%02d:00",
		pitch.Name, r.Date.Format(domain.DateFormat), r.StartHour, r.EndHour())
	if len(d) > domain.MaxPaymentDescriptionLen {
		d = d[:domain.MaxPaymentDescriptionLen]
	}
	return d
}
