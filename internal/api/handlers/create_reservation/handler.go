package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-PitchBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPitchNotFound      = "поле не найдено"
	msgHoursUnavailable   = "выбранные часы уже заняты"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrAvailabilityConflict):
			h.logger.Warn("POST /reservations - Hours unavailable: user_id=%d, pitch_id=%d, hours=%v",
				userID, req.PitchID, req.Hours)
			handlers.RespondConflict(w, msgHoursUnavailable)

		case errors.Is(err, createReservation.ErrPitchNotFound):
			h.logger.Warn("POST /reservations - Pitch not found: pitch_id=%d", req.PitchID)
			handlers.RespondNotFound(w, msgPitchNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid selection: user_id=%d, pitch_id=%d, error=%v",
				userID, req.PitchID, err)
			handlers.RespondBadRequest(w, handlers.SelectionMessage(err))

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, pitch_id=%d, error=%v",
				userID, req.PitchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, pitch_id=%d",
		result.ID, userID, req.PitchID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
