package broker

import "errors"

var (
	// ErrConnect ошибка подключения к RabbitMQ
	ErrConnect = errors.New("broker: failed to connect")

	// ErrPublish ошибка публикации сообщения
	ErrPublish = errors.New("broker: failed to publish")
)
