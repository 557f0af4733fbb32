package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal_EveningScenario(t *testing.T) {
	band, err := NewRateBand(10000, 15000, "18:00", "06:00")
	require.NoError(t, err)

	assert.Equal(t, int64(45000), ComputeTotal([]int{19, 20, 21}, band))
}

func TestComputeTotal_OrderIndependentAndEmpty(t *testing.T) {
	band, err := NewRateBand(10000, 15000, "22:00", "06:00")
	require.NoError(t, err)

	assert.Equal(t, ComputeTotal([]int{10, 11}, band), ComputeTotal([]int{11, 10}, band))
	assert.Equal(t, int64(0), ComputeTotal(nil, band))
	assert.Equal(t, int64(0), ComputeTotal([]int{}, band))
}

func TestComputeTotal_MixedBand(t *testing.T) {
	band, err := NewRateBand(10000, 15000, "18:00", "06:00")
	require.NoError(t, err)

	// 16, 17 дневные; 18, 19 ночные
	assert.Equal(t, int64(2*10000+2*15000), ComputeTotal([]int{16, 17, 18, 19}, band))
}

func TestRateBand_IsNight(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		hour       int
		want       bool
	}{
		{name: "wraparound late evening", start: "22:00", end: "06:00", hour: 23, want: true},
		{name: "wraparound early morning", start: "22:00", end: "06:00", hour: 2, want: true},
		{name: "wraparound day", start: "22:00", end: "06:00", hour: 10, want: false},
		{name: "wraparound start inclusive", start: "22:00", end: "06:00", hour: 22, want: true},
		{name: "wraparound end exclusive", start: "22:00", end: "06:00", hour: 6, want: false},
		{name: "same day band", start: "18:00", end: "23:00", hour: 20, want: true},
		{name: "same day band after end", start: "18:00", end: "23:00", hour: 23, want: false},
		{name: "same day band before start", start: "18:00", end: "23:00", hour: 2, want: false},
		{name: "empty band", start: "20:00", end: "20:00", hour: 20, want: false},
		{name: "minutes ignored", start: "21:30", end: "05:45", hour: 21, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, err := NewRateBand(1, 2, typesTime(tt.start), typesTime(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.want, band.IsNight(tt.hour))
		})
	}
}

func TestNewRateBand_Invalid(t *testing.T) {
	_, err := NewRateBand(-1, 10, "18:00", "06:00")
	assert.ErrorIs(t, err, ErrInvalidRateBand)

	_, err = NewRateBand(10, 10, "late", "06:00")
	assert.ErrorIs(t, err, ErrInvalidRateBand)
}

func TestPitch_RateBand(t *testing.T) {
	p := &Pitch{DayRate: 10000, NightRate: 15000, NightStart: "18:00", NightEnd: "06:00"}

	band, err := p.RateBand()
	require.NoError(t, err)
	assert.Equal(t, RateBand{DayRate: 10000, NightRate: 15000, NightStartHour: 18, NightEndHour: 6}, band)
}
