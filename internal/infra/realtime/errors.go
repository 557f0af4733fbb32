package realtime

import "errors"

var (
	// ErrPublish ошибка публикации события в Redis
	ErrPublish = errors.New("realtime: failed to publish event")

	// ErrSubscribe ошибка подписки на канал Redis
	ErrSubscribe = errors.New("realtime: failed to subscribe")
)
