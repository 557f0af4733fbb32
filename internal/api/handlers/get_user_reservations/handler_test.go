package get_user_reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-PitchBookingService/pkg/logger"
)

type fakeService struct {
	req *models.GetUserReservationsRequest
	err error
}

func (f *fakeService) GetUserReservations(_ context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{
		{ID: 1, RequesterID: req.UserID, Status: "pending"},
		{ID: 2, RequesterID: req.UserID, Status: "validated"},
	}}, nil
}

func request(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 42, Role: domain.RoleCustomer}))
}

func TestHandle_ListsOwnReservations(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request("/api/v1/users/me/reservations"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, int64(42), svc.req.UserID)
	assert.Nil(t, svc.req.Status)

	var body []models.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestHandle_StatusFilter(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request("/api/v1/users/me/reservations?status=validated"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req.Status)
	assert.Equal(t, "validated", *svc.req.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: fmt.Errorf("%w: unknown status", reservations.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.wantStatus), func(t *testing.T) {
			rec := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, request("/api/v1/users/me/reservations?status=bogus"))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MissingUserID(t *testing.T) {
	rec := httptest.NewRecorder()

	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/me/reservations", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
