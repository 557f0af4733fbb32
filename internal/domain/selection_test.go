package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayView(reserved ...int) DayView {
	return DayView{
		Date:     mustDate("2025-06-01"),
		Reserved: NewHourSet(reserved...),
		Now:      time.Date(2025, 6, 1, 8, 15, 0, 0, time.UTC),
	}
}

func TestSelection_ContiguousRun(t *testing.T) {
	s := NewSelection(mustDate("2025-06-01"))
	view := dayView()

	assert.Equal(t, SelectionEmpty, s.State())
	require.NoError(t, s.SelectHour(11, view))
	require.NoError(t, s.SelectHour(12, view))
	require.NoError(t, s.SelectHour(10, view), "extending backward is allowed")

	assert.Equal(t, SelectionSelecting, s.State())
	assert.Equal(t, []int{10, 11, 12}, s.Hours())
}

func TestSelection_RejectsNonAdjacent(t *testing.T) {
	s := NewSelection(mustDate("2025-06-01"))
	view := dayView()

	require.NoError(t, s.SelectHour(10, view))
	err := s.SelectHour(13, view)

	assert.ErrorIs(t, err, ErrHourNotAdjacent)
	assert.Equal(t, []int{10}, s.Hours())
}

func TestSelection_RejectsReservedAndPassed(t *testing.T) {
	s := NewSelection(mustDate("2025-06-01"))
	view := dayView(14)

	assert.ErrorIs(t, s.SelectHour(14, view), ErrHourReserved)
	assert.ErrorIs(t, s.SelectHour(7, view), ErrHourPassed)
	assert.ErrorIs(t, s.SelectHour(8, view), ErrHourPassed, "current hour has already started")
	assert.ErrorIs(t, s.SelectHour(24, view), ErrHourOutOfRange)
	assert.Equal(t, SelectionEmpty, s.State())
}

func TestSelection_ToggleOff(t *testing.T) {
	s := NewSelection(mustDate("2025-06-01"))
	view := dayView()

	for _, h := range []int{10, 11, 12} {
		require.NoError(t, s.SelectHour(h, view))
	}

	require.NoError(t, s.SelectHour(12, view))
	assert.Equal(t, []int{10, 11}, s.Hours())

	// удаление из середины оставляет разрыв
	require.NoError(t, s.SelectHour(11, view))
	require.NoError(t, s.SelectHour(11, view))
	require.NoError(t, s.SelectHour(12, view))
	require.NoError(t, s.SelectHour(11, view))
	assert.Equal(t, []int{10, 12}, s.Hours())

	_, err := ValidateHours(s.Hours(), view)
	assert.ErrorIs(t, err, ErrNotContiguous)
}

func TestSelection_ChangeDateAndClear(t *testing.T) {
	s := NewSelection(mustDate("2025-06-01"))
	view := dayView()
	require.NoError(t, s.SelectHour(10, view))

	s.ChangeDate(mustDate("2025-06-02"))
	assert.Equal(t, SelectionEmpty, s.State())
	assert.Equal(t, mustDate("2025-06-02"), s.Date())

	require.NoError(t, s.SelectHour(10, view))
	s.Clear()
	assert.Empty(t, s.Hours())
}

func TestSelection_Validate(t *testing.T) {
	s := NewSelection(mustDate("2025-06-01"))
	require.NoError(t, s.SelectHour(15, dayView()))
	require.NoError(t, s.SelectHour(16, dayView()))

	assert.NoError(t, s.Validate(dayView()))
	assert.ErrorIs(t, s.Validate(dayView(16)), ErrHourReserved)

	later := dayView()
	later.Now = time.Date(2025, 6, 1, 15, 5, 0, 0, time.UTC)
	assert.ErrorIs(t, s.Validate(later), ErrHourPassed)
}

func TestValidateHours(t *testing.T) {
	tests := []struct {
		name    string
		hours   []int
		view    DayView
		want    []int
		wantErr error
	}{
		{name: "unsorted contiguous", hours: []int{21, 19, 20}, view: dayView(), want: []int{19, 20, 21}},
		{name: "empty", hours: nil, view: dayView(), wantErr: ErrEmptySelection},
		{name: "duplicate", hours: []int{10, 10}, view: dayView(), wantErr: ErrDuplicateHour},
		{name: "gap", hours: []int{10, 12}, view: dayView(), wantErr: ErrNotContiguous},
		{name: "out of range", hours: []int{23, 24}, view: dayView(), wantErr: ErrHourOutOfRange},
		{name: "reserved", hours: []int{10, 11}, view: dayView(11), wantErr: ErrHourReserved},
		{name: "passed", hours: []int{7, 8, 9}, view: dayView(), wantErr: ErrHourPassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateHours(tt.hours, tt.view)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsSelectionError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
