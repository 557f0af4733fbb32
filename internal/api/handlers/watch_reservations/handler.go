package watch_reservations

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations"
)

const (
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidReservationID = "некорректный ID бронирования"
	msgReservationNotFound  = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgStreamingDisabled    = "уведомления в реальном времени отключены"
)

// DefaultHeartbeat интервал комментариев keep-alive в потоке
const DefaultHeartbeat = 15 * time.Second

// Scope на какие события подписывается поток
type Scope int

const (
	// ScopeRequester все бронирования текущего пользователя
	ScopeRequester Scope = iota
	// ScopeReservation одно бронирование: доступно заявителю и менеджерам поля
	ScopeReservation
)

type Handler struct {
	watcher      Watcher
	reservations ReservationService
	scope        Scope
	heartbeat    time.Duration
	logger       Logger
}

// NewHandler создает обработчик. watcher может быть nil, если Redis не настроен.
// reservations нужен только для ScopeReservation.
func NewHandler(watcher Watcher, reservations ReservationService, scope Scope, heartbeat time.Duration, logger Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Handler{
		watcher:      watcher,
		reservations: reservations,
		scope:        scope,
		heartbeat:    heartbeat,
		logger:       logger,
	}
}

// Handle GET /api/v1/reservations/watch и GET /api/v1/reservations/{reservationId}/watch
// Server-Sent Events с изменениями статусов бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := h.route()

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var reservationID int64
	if h.scope == ScopeReservation {
		id, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
		if err != nil {
			h.logger.Warn("%s - Invalid reservation ID: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)
			return
		}
		if !h.checkAccess(w, r, id, actor) {
			return
		}
		reservationID = id
	}

	if h.watcher == nil {
		handlers.RespondError(w, http.StatusServiceUnavailable, msgStreamingDisabled)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("%s - ResponseWriter does not support flushing", route)
		handlers.RespondInternalError(w)
		return
	}

	var (
		stream EventStream
		err    error
	)
	if h.scope == ScopeReservation {
		stream, err = h.watcher.WatchReservation(r.Context(), reservationID)
	} else {
		stream, err = h.watcher.WatchRequester(r.Context(), actor.UserID)
	}
	if err != nil {
		h.logger.Error("%s - Failed to subscribe: user_id=%d, error=%v", route, actor.UserID, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgStreamingDisabled)
		return
	}
	defer func() {
		if err := stream.Close(); err != nil {
			h.logger.Warn("%s - Failed to close subscription: user_id=%d, error=%v", route, actor.UserID, err)
		}
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	h.logger.Info("%s - Stream opened: user_id=%d", route, actor.UserID)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("%s - Stream closed by client: user_id=%d", route, actor.UserID)
			return

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case event, ok := <-stream.Events():
			if !ok {
				h.logger.Info("%s - Subscription ended: user_id=%d", route, actor.UserID)
				return
			}
			if err := writeEvent(w, event); err != nil {
				h.logger.Warn("%s - Failed to write event: user_id=%d, error=%v", route, actor.UserID, err)
				return
			}
			flusher.Flush()
		}
	}
}

// checkAccess пишет ответ с ошибкой и возвращает false, если бронирование недоступно
func (h *Handler) checkAccess(w http.ResponseWriter, r *http.Request, reservationID int64, actor domain.Actor) bool {
	route := h.route()

	if h.reservations == nil {
		h.logger.Error("%s - Reservation service is not configured", route)
		handlers.RespondInternalError(w)
		return false
	}

	_, err := h.reservations.GetByID(r.Context(), reservationID, actor)
	switch {
	case err == nil:
		return true

	case errors.Is(err, reservations.ErrReservationNotFound):
		h.logger.Warn("%s - Reservation not found: reservation_id=%d", route, reservationID)
		handlers.RespondNotFound(w, msgReservationNotFound)

	case errors.Is(err, reservations.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: reservation_id=%d, user_id=%d", route, reservationID, actor.UserID)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("%s - Failed to get reservation: reservation_id=%d, error=%v", route, reservationID, err)
		handlers.RespondInternalError(w)
	}
	return false
}

func (h *Handler) route() string {
	if h.scope == ScopeReservation {
		return "GET /reservations/{id}/watch"
	}
	return "GET /reservations/watch"
}

func writeEvent(w http.ResponseWriter, event domain.ReservationStatusChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d-%d\nevent: %s\ndata: %s\n\n",
		event.ReservationID, event.OccurredAt.UnixMilli(), event.Type, payload)
	return err
}
