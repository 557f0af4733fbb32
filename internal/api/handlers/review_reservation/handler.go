package review_reservation

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgReservationNotFound  = "бронирование не найдено"
	msgPitchNotFound        = "поле не найдено"
	msgForbidden            = "доступ запрещен"
	msgAlreadySettled       = "бронирование уже рассмотрено"
)

// Action решение менеджера по заявке
type Action string

const (
	ActionValidate Action = "validate"
	ActionRefuse   Action = "refuse"
)

type Handler struct {
	service ReservationService
	action  Action
	logger  Logger
}

func NewHandler(service ReservationService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/validate
// Handle PATCH /api/v1/reservations/{reservationId}/refuse
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/%s - Invalid reservation ID: %v", h.action, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/%s - Missing user ID", h.action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.apply(r.Context(), reservationID, actor)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/%s - Reservation not found: reservation_id=%d",
				h.action, reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrPitchNotFound):
			h.logger.Warn("PATCH /reservations/{id}/%s - Pitch not found: reservation_id=%d",
				h.action, reservationID)
			handlers.RespondNotFound(w, msgPitchNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/%s - Access denied: reservation_id=%d, user_id=%d",
				h.action, reservationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/%s - Invalid transition: reservation_id=%d, error=%v",
				h.action, reservationID, err)
			handlers.RespondConflict(w, msgAlreadySettled)

		default:
			h.logger.Error("PATCH /reservations/{id}/%s - Failed: reservation_id=%d, error=%v",
				h.action, reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/%s - Done: reservation_id=%d, status=%s, user_id=%d",
		h.action, reservationID, result.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) apply(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	if h.action == ActionRefuse {
		return h.service.Refuse(ctx, id, actor)
	}
	return h.service.Validate(ctx, id, actor)
}
