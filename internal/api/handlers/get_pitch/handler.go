package get_pitch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/pitches"
)

const (
	msgInvalidPitchID = "некорректный ID поля"
	msgNotFound       = "поле не найдено"
)

type Handler struct {
	service PitchService
	logger  Logger
}

func NewHandler(service PitchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pitches/{pitchId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pitchID, err := strconv.ParseInt(mux.Vars(r)["pitchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /pitches/{id} - Invalid pitch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPitchID)
		return
	}

	pitch, err := h.service.GetByID(r.Context(), pitchID)
	if err != nil {
		switch {
		case errors.Is(err, pitches.ErrPitchNotFound):
			h.logger.Warn("GET /pitches/{id} - Pitch not found: pitch_id=%d", pitchID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /pitches/{id} - Failed to get pitch: pitch_id=%d, error=%v", pitchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pitch)
}
