package checkout_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PitchBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PitchBookingService/internal/api/middleware"
	initiatePayment "github.com/m04kA/SMC-PitchBookingService/internal/usecase/initiate_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPitchNotFound      = "поле не найдено"
	msgHoursUnavailable   = "выбранные часы уже заняты"
	msgGatewayError       = "не удалось начать оплату"
)

type Handler struct {
	useCase InitiatePaymentUseCase
	logger  Logger
}

func NewHandler(useCase InitiatePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations/checkout - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var gatewayErr *initiatePayment.GatewayError
		switch {
		case errors.As(err, &gatewayErr):
			h.logger.Error("POST /reservations/checkout - Gateway error: user_id=%d, pitch_id=%d, error=%v",
				userID, req.PitchID, err)
			message := msgGatewayError
			if gatewayErr.Message != "" {
				message = msgGatewayError + ": " + gatewayErr.Message
			}
			handlers.RespondError(w, http.StatusBadGateway, message)

		case errors.Is(err, initiatePayment.ErrAvailabilityConflict):
			h.logger.Warn("POST /reservations/checkout - Hours unavailable: user_id=%d, pitch_id=%d, hours=%v",
				userID, req.PitchID, req.Hours)
			handlers.RespondConflict(w, msgHoursUnavailable)

		case errors.Is(err, initiatePayment.ErrPitchNotFound):
			h.logger.Warn("POST /reservations/checkout - Pitch not found: pitch_id=%d", req.PitchID)
			handlers.RespondNotFound(w, msgPitchNotFound)

		case errors.Is(err, initiatePayment.ErrInvalidInput):
			h.logger.Warn("POST /reservations/checkout - Invalid selection: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, handlers.SelectionMessage(err))

		default:
			h.logger.Error("POST /reservations/checkout - Failed to initiate payment: user_id=%d, pitch_id=%d, error=%v",
				userID, req.PitchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/checkout - Payment initiated: ref=%s, user_id=%d, amount=%d",
		result.OrderReference, userID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
