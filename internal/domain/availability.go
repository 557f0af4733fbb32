package domain

import (
	"math/bits"
	"time"
)

// HourSet множество часов суток [0, 23], хранится битовой маской
type HourSet uint32

// NewHourSet builds a set from hours, ignoring values outside [0, 23]
func NewHourSet(hours ...int) HourSet {
	var s HourSet
	for _, h := range hours {
		s = s.With(h)
	}
	return s
}

// With returns a copy of the set containing h
func (s HourSet) With(h int) HourSet {
	if !IsValidHour(h) {
		return s
	}
	return s | 1<<uint(h)
}

// Without returns a copy of the set without h
func (s HourSet) Without(h int) HourSet {
	if !IsValidHour(h) {
		return s
	}
	return s &^ (1 << uint(h))
}

// Has returns true if h is in the set
func (s HourSet) Has(h int) bool {
	return IsValidHour(h) && s&(1<<uint(h)) != 0
}

// Len returns the number of hours in the set
func (s HourSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Hours returns the hours in ascending order
func (s HourSet) Hours() []int {
	hours := make([]int, 0, s.Len())
	for h := MinHour; h <= MaxHour; h++ {
		if s.Has(h) {
			hours = append(hours, h)
		}
	}
	return hours
}

// IsValidHour returns true for an hour of day in [0, 23]
func IsValidHour(h int) bool {
	return h >= MinHour && h <= MaxHour
}

// ReservedHours returns the union of [start, start+duration) over active reservations.
// Refused and pending-payment reservations never mark an hour as reserved.
func ReservedHours(reservations []*Reservation) HourSet {
	var reserved HourSet
	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		for h := r.StartHour; h < r.EndHour(); h++ {
			reserved = reserved.With(h)
		}
	}
	return reserved
}

// IsHourPassed returns true if hour h of date has already started at now
func IsHourPassed(date time.Time, h int, now time.Time) bool {
	start := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, now.Location())
	return start.Before(now)
}

// DayView snapshot of one pitch-day used to drive slot selection
type DayView struct {
	Date     time.Time
	Reserved HourSet
	Now      time.Time
}

// IsReserved returns true if h is taken by an active reservation
func (v DayView) IsReserved(h int) bool {
	return v.Reserved.Has(h)
}

// IsPassed returns true if h is in the past relative to Now
func (v DayView) IsPassed(h int) bool {
	return IsHourPassed(v.Date, h, v.Now)
}
