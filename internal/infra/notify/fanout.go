package notify

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

// defaultPublishTimeout ограничение на доставку события одному получателю
const defaultPublishTimeout = 3 * time.Second

// Publisher канал доставки событий (Redis, RabbitMQ)
type Publisher interface {
	Publish(ctx context.Context, event domain.ReservationStatusChanged) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Target именованный получатель событий
type Target struct {
	Name      string
	Publisher Publisher
}

// Fanout рассылает событие всем настроенным получателям.
// Ошибка доставки логируется и не влияет на остальных получателей
// и на уже выполненный переход статуса.
type Fanout struct {
	targets []Target
	timeout time.Duration
	log     Logger
}

// NewFanout создает рассылку. Получатели с nil Publisher пропускаются
func NewFanout(log Logger, targets ...Target) *Fanout {
	active := make([]Target, 0, len(targets))
	for _, t := range targets {
		if t.Publisher != nil {
			active = append(active, t)
		}
	}
	return &Fanout{targets: active, timeout: defaultPublishTimeout, log: log}
}

// Notify доставляет событие. Контекст запроса может быть уже отменен, поэтому
// доставка идет в собственном контексте с таймаутом.
func (f *Fanout) Notify(ctx context.Context, event domain.ReservationStatusChanged) {
	for _, t := range f.targets {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		err := t.Publisher.Publish(pubCtx, event)
		cancel()

		if err != nil {
			f.log.Error("Notify: %s delivery failed: reservation=%d, type=%s, error=%v",
				t.Name, event.ReservationID, event.Type, err)
			continue
		}
		f.log.Info("Notify: %s delivered: reservation=%d, type=%s", t.Name, event.ReservationID, event.Type)
	}
}

// Len количество активных получателей
func (f *Fanout) Len() int {
	return len(f.targets)
}
