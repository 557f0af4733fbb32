package paymentgateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
)

const eventChargeComplete = "charge.complete"

// api подмножество Omise API, используемое клиентом
type api interface {
	CreateCharge(op *operations.CreateCharge) (*omise.Charge, error)
	RetrieveCharge(chargeID string) (*omise.Charge, error)
	RetrieveEvent(eventID string) (*omise.Event, error)
}

type omiseAPI struct {
	client *omise.Client
}

func (a *omiseAPI) CreateCharge(op *operations.CreateCharge) (*omise.Charge, error) {
	ch := &omise.Charge{}
	if err := a.client.Do(ch, op); err != nil {
		return nil, err
	}
	return ch, nil
}

func (a *omiseAPI) RetrieveCharge(chargeID string) (*omise.Charge, error) {
	ch := &omise.Charge{}
	if err := a.client.Do(ch, &operations.RetrieveCharge{ChargeID: chargeID}); err != nil {
		return nil, err
	}
	return ch, nil
}

func (a *omiseAPI) RetrieveEvent(eventID string) (*omise.Event, error) {
	ev := &omise.Event{}
	if err := a.client.Do(ev, &operations.RetrieveEvent{EventID: eventID}); err != nil {
		return nil, err
	}
	return ev, nil
}

// Client клиент платежного шлюза Omise
type Client struct {
	api api
	log Logger
}

// NewClient создает клиент по публичному и секретному ключам
func NewClient(publicKey, secretKey string, log Logger) (*Client, error) {
	oc, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: create omise client: %v", ErrInvalidRequest, err)
	}
	return &Client{api: &omiseAPI{client: oc}, log: log}, nil
}

// InitiatePayment создает платеж с редиректом на страницу оплаты шлюза
func (c *Client) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentSession, error) {
	if req.Amount <= 0 || req.Currency == "" || req.OrderReference == "" {
		return nil, fmt.Errorf("%w: amount=%d currency=%q", ErrInvalidRequest, req.Amount, req.Currency)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	amount, err := toGatewayAmount(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	ch, err := c.api.CreateCharge(&operations.CreateCharge{
		Amount:      amount,
		Currency:    req.Currency,
		Description: req.Description,
		ReturnURI:   req.ReturnURL,
		Metadata:    map[string]interface{}{metadataOrderReference: req.OrderReference},
	})
	if err != nil {
		c.log.Warn("PaymentGateway: create charge failed: reference=%s, error=%v", req.OrderReference, err)
		return nil, mapError(err)
	}

	if outcomeOf(string(ch.Status)) == domain.OutcomeFailed {
		return nil, &RejectedError{Code: deref(ch.FailureCode), Message: deref(ch.FailureMessage)}
	}
	if ch.ID == "" || ch.AuthorizeURI == "" {
		return nil, fmt.Errorf("%w: charge without id or authorize uri", ErrInvalidResponse)
	}

	c.log.Info("PaymentGateway: charge created: reference=%s, charge=%s", req.OrderReference, ch.ID)
	return &PaymentSession{ExternalReference: ch.ID, RedirectURL: ch.AuthorizeURI}, nil
}

// GetCharge запрашивает актуальное состояние платежа у шлюза
func (c *Client) GetCharge(ctx context.Context, externalReference string) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ch, err := c.api.RetrieveCharge(externalReference)
	if err != nil {
		return nil, mapError(err)
	}
	return toChargeResult(ch)
}

// VerifyEvent перезапрашивает событие webhook у шлюза и возвращает платеж из него.
// Тело webhook'а не используется как источник истины.
func (c *Client) VerifyEvent(ctx context.Context, eventID string) (*ChargeResult, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: empty event id", ErrInvalidRequest)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ev, err := c.api.RetrieveEvent(eventID)
	if err != nil {
		return nil, mapError(err)
	}
	if ev.Key != eventChargeComplete {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEvent, ev.Key)
	}

	// ev.Data приходит как interface{}, поэтому перекодируем его в Charge
	raw, err := json.Marshal(ev.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal event data: %v", ErrInvalidResponse, err)
	}
	var ch omise.Charge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, fmt.Errorf("%w: unmarshal charge: %v", ErrInvalidResponse, err)
	}

	return toChargeResult(&ch)
}

func toChargeResult(ch *omise.Charge) (*ChargeResult, error) {
	orderReference, _ := ch.Metadata[metadataOrderReference].(string)

	amount, err := fromGatewayAmount(ch.Amount, ch.Currency)
	if err != nil {
		return nil, fmt.Errorf("charge=%s: %w", ch.ID, err)
	}

	return &ChargeResult{
		ExternalReference: ch.ID,
		OrderReference:    orderReference,
		Amount:            amount,
		Currency:          ch.Currency,
		Outcome:           outcomeOf(string(ch.Status)),
		FailureCode:       deref(ch.FailureCode),
		FailureMessage:    deref(ch.FailureMessage),
	}, nil
}

// outcomeOf статусы Omise: pending, successful, failed, expired, reversed
func outcomeOf(status string) domain.PaymentOutcome {
	switch status {
	case "successful":
		return domain.OutcomeSuccessful
	case "failed", "expired", "reversed":
		return domain.OutcomeFailed
	default:
		return domain.OutcomePending
	}
}

func mapError(err error) error {
	var omiseErr *omise.Error
	if errors.As(err, &omiseErr) {
		if omiseErr.StatusCode >= 500 {
			return fmt.Errorf("%w: %s", ErrUnavailable, omiseErr.Message)
		}
		return &RejectedError{Code: omiseErr.Code, Message: omiseErr.Message}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
