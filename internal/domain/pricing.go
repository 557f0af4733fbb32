package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PitchBookingService/pkg/types"
)

// ErrInvalidRateBand некорректные тарифы или границы ночного тарифа
var ErrInvalidRateBand = errors.New("pricing: invalid rate band")

// RateBand day/night hourly rates of a pitch.
// Night hours are [NightStartHour, 24) ∪ [0, NightEndHour) when the band crosses
// midnight, [NightStartHour, NightEndHour) otherwise, and empty when both are equal.
type RateBand struct {
	DayRate        int64
	NightRate      int64
	NightStartHour int
	NightEndHour   int
}

// NewRateBand builds a band from rates and "HH:MM" night boundaries (minutes are ignored)
func NewRateBand(dayRate, nightRate int64, nightStart, nightEnd types.TimeString) (RateBand, error) {
	if dayRate < 0 || nightRate < 0 {
		return RateBand{}, fmt.Errorf("%w: negative rate", ErrInvalidRateBand)
	}

	startHour, err := nightStart.Hour()
	if err != nil {
		return RateBand{}, fmt.Errorf("%w: night start: %v", ErrInvalidRateBand, err)
	}
	endHour, err := nightEnd.Hour()
	if err != nil {
		return RateBand{}, fmt.Errorf("%w: night end: %v", ErrInvalidRateBand, err)
	}

	return RateBand{
		DayRate:        dayRate,
		NightRate:      nightRate,
		NightStartHour: startHour,
		NightEndHour:   endHour,
	}, nil
}

// IsNight returns true if hour h is billed at the night rate
func (b RateBand) IsNight(h int) bool {
	switch {
	case b.NightStartHour > b.NightEndHour:
		return h >= b.NightStartHour || h < b.NightEndHour
	case b.NightStartHour < b.NightEndHour:
		return h >= b.NightStartHour && h < b.NightEndHour
	default:
		return false
	}
}

// RateFor returns the hourly rate applied to h
func (b RateBand) RateFor(h int) int64 {
	if b.IsNight(h) {
		return b.NightRate
	}
	return b.DayRate
}

// ComputeTotal sums the hourly rate of every hour. Empty selection costs 0.
func ComputeTotal(hours []int, band RateBand) int64 {
	var total int64
	for _, h := range hours {
		total += band.RateFor(h)
	}
	return total
}
