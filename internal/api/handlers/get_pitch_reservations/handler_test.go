package get_pitch_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-PitchBookingService/pkg/logger"
)

type fakeService struct {
	req  *models.GetPitchReservationsRequest
	resp *models.ReservationListResponse
	err  error
}

func (f *fakeService) GetPitchReservations(_ context.Context, req *models.GetPitchReservationsRequest) (*models.ReservationListResponse, error) {
	f.req = req
	return f.resp, f.err
}

func get(svc ReservationService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/pitches/{pitchId}/reservations", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 9, Role: domain.RoleOwner}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &fakeService{resp: &models.ReservationListResponse{Reservations: []models.ReservationResponse{{ID: 1}}}}

	rec := get(svc, "/api/v1/pitches/3/reservations?dateFrom=2025-06-01&dateTo=2025-06-07&status=pending")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, int64(3), svc.req.PitchID)
	assert.Equal(t, int64(9), svc.req.Actor.UserID)
	assert.Equal(t, time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), *svc.req.DateTo)
	assert.Equal(t, "pending", *svc.req.Status)
	assert.JSONEq(t, `[{"id":1,"pitchId":0,"requesterId":0,"bookingDate":"","startHour":0,"endHour":0,"durationHours":0,"totalAmount":0,"status":"","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}]`,
		rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/api/v1/pitches/3/reservations?dateFrom=june").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{}, "/api/v1/pitches/x/reservations").Code)
	assert.Equal(t, http.StatusForbidden, get(&fakeService{err: reservations.ErrAccessDenied}, "/api/v1/pitches/3/reservations").Code)
	assert.Equal(t, http.StatusNotFound, get(&fakeService{err: reservations.ErrPitchNotFound}, "/api/v1/pitches/3/reservations").Code)
	assert.Equal(t, http.StatusBadRequest, get(&fakeService{err: reservations.ErrInvalidInput}, "/api/v1/pitches/3/reservations").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&fakeService{err: reservations.ErrInternal}, "/api/v1/pitches/3/reservations").Code)
}
