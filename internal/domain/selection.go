package domain

import (
	"errors"
	"sort"
	"time"
)

var (
	// ErrHourOutOfRange час вне диапазона [0, 23]
	ErrHourOutOfRange = errors.New("selection: hour out of range")

	// ErrHourReserved час уже занят активным бронированием
	ErrHourReserved = errors.New("selection: hour is reserved")

	// ErrHourPassed час уже наступил
	ErrHourPassed = errors.New("selection: hour has passed")

	// ErrHourNotAdjacent час не соседствует ни с одним выбранным
	ErrHourNotAdjacent = errors.New("selection: hour is not adjacent to the selection")

	// ErrEmptySelection не выбрано ни одного часа
	ErrEmptySelection = errors.New("selection: no hours selected")

	// ErrDuplicateHour час указан более одного раза
	ErrDuplicateHour = errors.New("selection: duplicate hour")

	// ErrNotContiguous выбранные часы не образуют непрерывный блок
	ErrNotContiguous = errors.New("selection: hours are not contiguous")
)

// SelectionState состояние выбора слотов
type SelectionState int

const (
	SelectionEmpty SelectionState = iota
	SelectionSelecting
)

// Selection hours being picked by a requester for one date.
// Hours are kept sorted ascending. Never persisted.
type Selection struct {
	date  time.Time
	hours []int
}

// NewSelection creates an empty selection for date
func NewSelection(date time.Time) *Selection {
	return &Selection{date: DateOnly(date)}
}

// Date returns the selected calendar date
func (s *Selection) Date() time.Time {
	return s.date
}

// Hours returns a copy of the selected hours
func (s *Selection) Hours() []int {
	out := make([]int, len(s.hours))
	copy(out, s.hours)
	return out
}

// State returns Empty or Selecting
func (s *Selection) State() SelectionState {
	if len(s.hours) == 0 {
		return SelectionEmpty
	}
	return SelectionSelecting
}

// SelectHour applies one selection step.
// A rejected step leaves the selection unchanged. Selecting an already selected
// hour removes it, which can leave a gap in the middle of the run.
func (s *Selection) SelectHour(h int, view DayView) error {
	if !IsValidHour(h) {
		return ErrHourOutOfRange
	}
	if view.IsReserved(h) {
		return ErrHourReserved
	}
	if view.IsPassed(h) {
		return ErrHourPassed
	}

	if len(s.hours) == 0 {
		s.hours = []int{h}
		return nil
	}

	for i, selected := range s.hours {
		if selected == h {
			s.hours = append(s.hours[:i], s.hours[i+1:]...)
			return nil
		}
	}

	if !s.isAdjacent(h) {
		return ErrHourNotAdjacent
	}

	s.hours = append(s.hours, h)
	sort.Ints(s.hours)
	return nil
}

func (s *Selection) isAdjacent(h int) bool {
	for _, selected := range s.hours {
		if selected-h == 1 || h-selected == 1 {
			return true
		}
	}
	return false
}

// ChangeDate switches to another date and resets the selection
func (s *Selection) ChangeDate(date time.Time) {
	s.date = DateOnly(date)
	s.hours = nil
}

// Clear resets the selection
func (s *Selection) Clear() {
	s.hours = nil
}

// Validate re-checks that no selected hour became reserved or passed
func (s *Selection) Validate(view DayView) error {
	for _, h := range s.hours {
		if view.IsReserved(h) {
			return ErrHourReserved
		}
		if view.IsPassed(h) {
			return ErrHourPassed
		}
	}
	return nil
}

// ValidateHours checks a submitted set of hours: non-empty, in range, unique,
// contiguous, and none reserved or passed. Returns the hours sorted ascending.
func ValidateHours(hours []int, view DayView) ([]int, error) {
	if len(hours) == 0 {
		return nil, ErrEmptySelection
	}

	sorted := make([]int, len(hours))
	copy(sorted, hours)
	sort.Ints(sorted)

	for i, h := range sorted {
		if !IsValidHour(h) {
			return nil, ErrHourOutOfRange
		}
		if i > 0 {
			switch sorted[i] - sorted[i-1] {
			case 0:
				return nil, ErrDuplicateHour
			case 1:
			default:
				return nil, ErrNotContiguous
			}
		}
	}

	for _, h := range sorted {
		if view.IsReserved(h) {
			return nil, ErrHourReserved
		}
		if view.IsPassed(h) {
			return nil, ErrHourPassed
		}
	}

	return sorted, nil
}

// IsSelectionError returns true for errors produced by selection checks
func IsSelectionError(err error) bool {
	return errors.Is(err, ErrHourOutOfRange) ||
		errors.Is(err, ErrHourReserved) ||
		errors.Is(err, ErrHourPassed) ||
		errors.Is(err, ErrHourNotAdjacent) ||
		errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrDuplicateHour) ||
		errors.Is(err, ErrNotContiguous)
}
