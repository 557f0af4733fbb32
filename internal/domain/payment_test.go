package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationSnapshot_RoundTrip(t *testing.T) {
	r := &Reservation{
		PitchID:       3,
		RequesterID:   42,
		Date:          mustDate("2025-06-01"),
		StartHour:     19,
		DurationHours: 3,
		TotalAmount:   45000,
		Status:        StatusPending,
	}

	snapshot := NewReservationSnapshot(r)
	assert.Equal(t, StatusPendingPayment, snapshot.Status)

	data, err := snapshot.Encode()
	require.NoError(t, err)

	decoded, err := DecodeReservationSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded)

	ref := "chrg_test_1"
	materialized, err := decoded.ToReservation(StatusValidated, &ref)
	require.NoError(t, err)
	assert.Equal(t, StatusValidated, materialized.Status)
	assert.Equal(t, r.Date, materialized.Date)
	assert.Equal(t, 22, materialized.EndHour())
	assert.Equal(t, &ref, materialized.PaymentReference)
}

func TestDecodeReservationSnapshot_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{"},
		{name: "bad date", data: `{"pitch_id":1,"requester_id":1,"date":"01/06/2025","start_hour":1,"duration_hours":1}`},
		{name: "overflows day", data: `{"pitch_id":1,"requester_id":1,"date":"2025-06-01","start_hour":23,"duration_hours":2}`},
		{name: "zero duration", data: `{"pitch_id":1,"requester_id":1,"date":"2025-06-01","start_hour":10,"duration_hours":0}`},
		{name: "missing pitch", data: `{"requester_id":1,"date":"2025-06-01","start_hour":10,"duration_hours":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeReservationSnapshot([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}
}
