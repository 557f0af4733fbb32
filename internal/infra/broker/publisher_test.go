package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "reservations.exchange"}

	event := domain.ReservationStatusChanged{
		Type:          domain.EventReservationRefused,
		ReservationID: 11,
		RequesterID:   5,
		Status:        domain.StatusRefused,
	}

	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, "reservations.exchange", ch.exchange)
	assert.Equal(t, "reservation.refused", ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "reservation-11-refused", ch.msg.MessageId)

	var decoded domain.ReservationStatusChanged
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, event.ReservationID, decoded.ReservationID)
}

func TestPublisher_PublishError(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	err := p.Publish(context.Background(), domain.ReservationStatusChanged{Type: domain.EventReservationValidated})

	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch}

	assert.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
