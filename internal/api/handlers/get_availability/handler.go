package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-PitchBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidPitchID  = "некорректный ID поля"
	msgMissingDate     = "не указана дата"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDataUnavailable = "данные о занятости временно недоступны, повторите попытку позже"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pitches/{pitchId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	pitchID, err := strconv.ParseInt(vars["pitchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /pitches/{id}/availability - Invalid pitch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPitchID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /pitches/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(pitchID, dateStr)
	if err != nil {
		h.logger.Warn("GET /pitches/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /pitches/{id}/availability - Invalid input: pitch_id=%d, error=%v", pitchID, err)
			handlers.RespondBadRequest(w, msgInvalidPitchID)

		case errors.Is(err, getAvailability.ErrUnavailableData):
			h.logger.Error("GET /pitches/{id}/availability - Data unavailable: pitch_id=%d, error=%v", pitchID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDataUnavailable)

		default:
			h.logger.Error("GET /pitches/{id}/availability - Failed to get availability: pitch_id=%d, error=%v", pitchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pitches/{id}/availability - Availability retrieved: pitch_id=%d, date=%s, reserved=%d",
		pitchID, dateStr, len(result.ReservedHours))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
