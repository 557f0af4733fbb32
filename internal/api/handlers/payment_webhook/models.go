package payment_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxEventBytes = 1 << 20

var errMissingEventID = errors.New("event id is missing")

// WebhookEvent уведомление шлюза. Из тела берется только ID события,
// остальное запрашивается у шлюза повторно
type WebhookEvent struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// ConfirmationResponse HTTP response model
type ConfirmationResponse struct {
	OrderReference   string `json:"orderReference,omitempty"`
	Outcome          string `json:"outcome"`
	AlreadyProcessed bool   `json:"alreadyProcessed"`
	ReservationID    int64  `json:"reservationId,omitempty"`
}

// decodeEvent читает событие. В отличие от handlers.DecodeJSON неизвестные поля допустимы
func decodeEvent(r *http.Request) (*WebhookEvent, error) {
	if r.Body == nil {
		return nil, io.EOF
	}

	var event WebhookEvent
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEventBytes)).Decode(&event); err != nil {
		return nil, err
	}
	if event.ID == "" {
		return nil, errMissingEventID
	}
	return &event, nil
}
