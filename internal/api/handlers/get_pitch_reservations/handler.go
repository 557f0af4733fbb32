package get_pitch_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations"
)

const (
	msgInvalidPitchID = "некорректный ID поля"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgPitchNotFound  = "поле не найдено"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pitches/{pitchId}/reservations
// Query params: dateFrom, dateTo, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pitchID, err := strconv.ParseInt(vars["pitchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /pitches/{id}/reservations - Invalid pitch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPitchID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /pitches/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(actor, pitchID, query.Get("dateFrom"), query.Get("dateTo"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /pitches/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetPitchReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /pitches/{id}/reservations - Invalid parameters: pitch_id=%d, error=%v", pitchID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, reservations.ErrPitchNotFound):
			h.logger.Warn("GET /pitches/{id}/reservations - Pitch not found: pitch_id=%d", pitchID)
			handlers.RespondNotFound(w, msgPitchNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /pitches/{id}/reservations - Access denied: pitch_id=%d, user_id=%d",
				pitchID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /pitches/{id}/reservations - Failed to get reservations: pitch_id=%d, error=%v",
				pitchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pitches/{id}/reservations - Reservations retrieved: pitch_id=%d, count=%d",
		pitchID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
