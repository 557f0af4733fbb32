package watch_reservations

import (
	"context"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/infra/realtime"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations/models"
)

// EventStream подписка на события бронирований
type EventStream interface {
	Events() <-chan domain.ReservationStatusChanged
	Close() error
}

type Watcher interface {
	WatchRequester(ctx context.Context, requesterID int64) (EventStream, error)
	WatchReservation(ctx context.Context, reservationID int64) (EventStream, error)
}

// ReservationService проверка доступа к отдельному бронированию
type ReservationService interface {
	GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HubWatcher открывает подписки через realtime.Hub
type HubWatcher struct {
	Hub *realtime.Hub
}

func (w HubWatcher) WatchRequester(ctx context.Context, requesterID int64) (EventStream, error) {
	watch, err := w.Hub.WatchRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return watch, nil
}

func (w HubWatcher) WatchReservation(ctx context.Context, reservationID int64) (EventStream, error) {
	watch, err := w.Hub.WatchReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return watch, nil
}
