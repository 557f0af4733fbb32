package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-PitchBookingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidEvent       = "некорректное событие платежного шлюза"
	msgReferenceNotFound  = "платеж не найден"
	msgAvailabilityClosed = "оплаченные часы уже заняты"
	msgGatewayError       = "платежный шлюз недоступен"
	outcomeIgnored        = "ignored"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Ответ 2xx означает, что событие обработано и повторная доставка не нужна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	event, err := decodeEvent(r)
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid event: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEvent)
		return
	}

	result, err := h.useCase.ExecuteEvent(r.Context(), event.ID)
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrIgnoredEvent):
			h.logger.Info("POST /payments/webhook - Event ignored: event_id=%s, key=%s", event.ID, event.Key)
			handlers.RespondJSON(w, http.StatusOK, &ConfirmationResponse{Outcome: outcomeIgnored})

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Event rejected: event_id=%s, error=%v", event.ID, err)
			handlers.RespondBadRequest(w, msgInvalidEvent)

		case errors.Is(err, confirmPayment.ErrReferenceNotFound):
			h.logger.Warn("POST /payments/webhook - Unknown order reference: event_id=%s", event.ID)
			handlers.RespondNotFound(w, msgReferenceNotFound)

		case errors.Is(err, confirmPayment.ErrAvailabilityConflict):
			h.logger.Error("POST /payments/webhook - Paid hours taken, refund required: event_id=%s, error=%v",
				event.ID, err)
			handlers.RespondConflict(w, msgAvailabilityClosed)

		case errors.Is(err, confirmPayment.ErrGateway):
			h.logger.Error("POST /payments/webhook - Gateway error: event_id=%s, error=%v", event.ID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayError)

		default:
			h.logger.Error("POST /payments/webhook - Failed to confirm payment: event_id=%s, error=%v", event.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Processed: event_id=%s, ref=%s, outcome=%s, duplicate=%t",
		event.ID, result.OrderReference, result.Outcome, result.AlreadyProcessed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmationResponse {
	return &ConfirmationResponse{
		OrderReference:   resp.OrderReference,
		Outcome:          string(resp.Outcome),
		AlreadyProcessed: resp.AlreadyProcessed,
		ReservationID:    resp.ReservationID,
	}
}
