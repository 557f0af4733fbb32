package payment_return

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers/payment_webhook"
	confirmPayment "github.com/m04kA/SMC-PitchBookingService/internal/usecase/confirm_payment"
)

const (
	msgMissingReference   = "отсутствует параметр ref"
	msgReferenceNotFound  = "платеж не найден"
	msgAvailabilityClosed = "оплаченные часы уже заняты, средства будут возвращены"
	msgGatewayError       = "не удалось проверить статус платежа"
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

// Handle GET /api/v1/payments/return?ref=<order reference>
// Пользователь возвращается со страницы оплаты. Статус запрашивается у шлюза
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("ref")
	if ref == "" {
		h.logger.Warn("GET /payments/return - Missing order reference")
		handlers.RespondBadRequest(w, msgMissingReference)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{OrderReference: ref})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("GET /payments/return - Invalid reference: ref=%s, error=%v", ref, err)
			handlers.RespondBadRequest(w, msgMissingReference)

		case errors.Is(err, confirmPayment.ErrReferenceNotFound):
			h.logger.Warn("GET /payments/return - Unknown order reference: ref=%s", ref)
			handlers.RespondNotFound(w, msgReferenceNotFound)

		case errors.Is(err, confirmPayment.ErrAvailabilityConflict):
			h.logger.Error("GET /payments/return - Paid hours taken, refund required: ref=%s", ref)
			handlers.RespondConflict(w, msgAvailabilityClosed)

		case errors.Is(err, confirmPayment.ErrGateway):
			h.logger.Error("GET /payments/return - Gateway error: ref=%s, error=%v", ref, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayError)

		default:
			h.logger.Error("GET /payments/return - Failed to confirm payment: ref=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/return - Processed: ref=%s, outcome=%s, duplicate=%t",
		ref, result.Outcome, result.AlreadyProcessed)
	handlers.RespondJSON(w, http.StatusOK, payment_webhook.FromUseCaseResponse(result))
}
