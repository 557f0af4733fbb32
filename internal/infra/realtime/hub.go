package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

// watchBuffer размер буфера событий одного watch
const watchBuffer = 16

// Hub доставляет события об изменении бронирований через Redis Pub/Sub.
// Каждое событие публикуется в канал заявителя и в канал бронирования.
type Hub struct {
	client *redis.Client
	prefix string
	log    Logger
}

// NewHub создает hub поверх клиента Redis
func NewHub(client *redis.Client, prefix string, log Logger) *Hub {
	return &Hub{client: client, prefix: prefix, log: log}
}

// RequesterChannel канал событий по всем бронированиям пользователя
func (h *Hub) RequesterChannel(requesterID int64) string {
	return fmt.Sprintf("%s:requester:%d", h.prefix, requesterID)
}

// ReservationChannel канал событий одного бронирования
func (h *Hub) ReservationChannel(reservationID int64) string {
	return fmt.Sprintf("%s:reservation:%d", h.prefix, reservationID)
}

// Publish рассылает событие подписчикам заявителя и бронирования
func (h *Hub) Publish(ctx context.Context, event domain.ReservationStatusChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	pipe := h.client.Pipeline()
	pipe.Publish(ctx, h.RequesterChannel(event.RequesterID), payload)
	pipe.Publish(ctx, h.ReservationChannel(event.ReservationID), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: reservation=%d: %v", ErrPublish, event.ReservationID, err)
	}

	return nil
}

// WatchRequester подписывается на события всех бронирований пользователя
func (h *Hub) WatchRequester(ctx context.Context, requesterID int64) (*Watch, error) {
	return h.watch(ctx, h.RequesterChannel(requesterID))
}

// WatchReservation подписывается на события одного бронирования
func (h *Hub) WatchReservation(ctx context.Context, reservationID int64) (*Watch, error) {
	return h.watch(ctx, h.ReservationChannel(reservationID))
}

func (h *Hub) watch(ctx context.Context, channel string) (*Watch, error) {
	pubsub := h.client.Subscribe(ctx, channel)

	// Дожидаемся подтверждения подписки, иначе первые события могут потеряться
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSubscribe, channel, err)
	}

	return newWatch(pubsub.Channel(), pubsub, h.log), nil
}

// Watch подписка с явным временем жизни: события читаются из Events()
// до вызова Close() или закрытия подписки.
type Watch struct {
	events chan domain.ReservationStatusChanged
	done   chan struct{}
	closer io.Closer
	once   sync.Once
	log    Logger
}

func newWatch(messages <-chan *redis.Message, closer io.Closer, log Logger) *Watch {
	w := &Watch{
		events: make(chan domain.ReservationStatusChanged, watchBuffer),
		done:   make(chan struct{}),
		closer: closer,
		log:    log,
	}
	go w.run(messages)
	return w
}

func (w *Watch) run(messages <-chan *redis.Message) {
	defer close(w.events)

	for {
		select {
		case <-w.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event domain.ReservationStatusChanged
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				w.log.Warn("Realtime: skip malformed event: %v", err)
				continue
			}

			select {
			case w.events <- event:
			case <-w.done:
				return
			}
		}
	}
}

// Events канал событий. Закрывается после Close()
func (w *Watch) Events() <-chan domain.ReservationStatusChanged {
	return w.events
}

// Close отменяет подписку. Повторные вызовы безопасны
func (w *Watch) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.closer.Close()
	})
	return err
}
