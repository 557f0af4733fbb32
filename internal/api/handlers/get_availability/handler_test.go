package get_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/m04kA/SMC-PitchBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-PitchBookingService/pkg/logger"
)

type fakeUseCase struct {
	req  *getAvailability.Request
	resp *getAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(uc GetAvailabilityUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/pitches/{pitchId}/availability", NewHandler(uc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailability.Response{
		PitchID:       3,
		Date:          date,
		PitchFound:    true,
		ReservedHours: []int{10},
		Hours: []getAvailability.HourSlot{
			{Hour: 9, Price: 100},
			{Hour: 10, Reserved: true, Price: 100},
		},
	}}

	rec := serve(uc, "/pitches/3/availability?date=2025-06-02")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), uc.req.PitchID)
	assert.True(t, uc.req.Date.Equal(date))

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-02", body.Date)
	assert.Equal(t, []int{10}, body.ReservedHours)
	assert.True(t, body.Hours[0].Selectable)
	assert.False(t, body.Hours[1].Selectable)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad pitch id", "/pitches/abc/availability?date=2025-06-02", nil, http.StatusBadRequest},
		{"missing date", "/pitches/3/availability", nil, http.StatusBadRequest},
		{"bad date", "/pitches/3/availability?date=02.06.2025", nil, http.StatusBadRequest},
		{"unavailable", "/pitches/3/availability?date=2025-06-02",
			fmt.Errorf("%w: list reservations", getAvailability.ErrUnavailableData), http.StatusServiceUnavailable},
		{"invalid input", "/pitches/0/availability?date=2025-06-02", getAvailability.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
