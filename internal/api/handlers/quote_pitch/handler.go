package quote_pitch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/pitches"
)

const (
	msgInvalidPitchID     = "некорректный ID поля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHours       = "часы должны быть в диапазоне 0-23"
	msgNotFound           = "поле не найдено"
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

// Handle POST /api/v1/pitches/{pitchId}/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pitchID, err := strconv.ParseInt(mux.Vars(r)["pitchId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /pitches/{id}/quote - Invalid pitch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPitchID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pitches/{id}/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	quote, err := h.service.Quote(r.Context(), req.ToServiceRequest(pitchID))
	if err != nil {
		switch {
		case errors.Is(err, pitches.ErrInvalidInput):
			h.logger.Warn("POST /pitches/{id}/quote - Invalid hours: pitch_id=%d, hours=%v", pitchID, req.Hours)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, pitches.ErrPitchNotFound):
			h.logger.Warn("POST /pitches/{id}/quote - Pitch not found: pitch_id=%d", pitchID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /pitches/{id}/quote - Failed to quote: pitch_id=%d, error=%v", pitchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pitches/{id}/quote - Quote computed: pitch_id=%d, total=%d", pitchID, quote.Total)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
