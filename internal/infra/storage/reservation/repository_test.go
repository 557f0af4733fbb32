package reservation

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

type fakeRow struct {
	values []interface{}
	err    error
}

func (f fakeRow) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.values[i].(int64)
		case *int:
			*p = f.values[i].(int)
		case *time.Time:
			*p = f.values[i].(time.Time)
		case *domain.ReservationStatus:
			*p = f.values[i].(domain.ReservationStatus)
		case *sql.NullString:
			*p = f.values[i].(sql.NullString)
		}
	}
	return nil
}

func TestScanReservation(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	row := fakeRow{values: []interface{}{
		int64(1), int64(3), int64(42),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.FixedZone("MSK", 3*3600)),
		19, 3, int64(45000),
		domain.StatusValidated,
		sql.NullString{String: "chrg_1", Valid: true},
		created, created,
	}}

	res, err := scanReservation(row)
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.RequesterID)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), res.Date)
	assert.Equal(t, 22, res.EndHour())
	require.NotNil(t, res.PaymentReference)
	assert.Equal(t, "chrg_1", *res.PaymentReference)
}

func TestScanReservation_NullPaymentReference(t *testing.T) {
	row := fakeRow{values: []interface{}{
		int64(1), int64(3), int64(42), time.Now(), 10, 1, int64(100),
		domain.StatusPending, sql.NullString{}, time.Now(), time.Now(),
	}}

	res, err := scanReservation(row)
	require.NoError(t, err)
	assert.Nil(t, res.PaymentReference)
}

func TestScanReservation_Error(t *testing.T) {
	_, err := scanReservation(fakeRow{err: sql.ErrNoRows})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, []string{"pending", "validated"}, statusStrings(domain.ActiveStatuses))
}
