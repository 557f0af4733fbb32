package handlers

import (
	"errors"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

const msgInvalidSelection = "некорректный выбор часов"

var selectionMessages = []struct {
	err error
	msg string
}{
	{domain.ErrEmptySelection, "не выбрано ни одного часа"},
	{domain.ErrHourOutOfRange, "часы должны быть в диапазоне 0-23"},
	{domain.ErrDuplicateHour, "час указан несколько раз"},
	{domain.ErrNotContiguous, "выбранные часы должны идти подряд"},
	{domain.ErrHourPassed, "выбранный час уже прошел"},
	{domain.ErrHourReserved, "выбранный час уже занят"},
	{domain.ErrHourNotAdjacent, "час должен примыкать к уже выбранным"},
}

// SelectionMessage возвращает сообщение для ошибки выбора часов
func SelectionMessage(err error) string {
	for _, m := range selectionMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return msgInvalidSelection
}
