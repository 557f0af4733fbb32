package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/integrations/paymentgateway"
	paymentRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-PitchBookingService/pkg/txmanager"
)

// UseCase use case обработки результата оплаты.
// Безопасен для повторных и параллельных вызовов: на один order reference
// создается не более одного бронирования.
type UseCase struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	gateway         PaymentGateway
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		gateway:         gateway,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// ExecuteEvent обрабатывает webhook шлюза: событие перезапрашивается у шлюза,
// затем платеж подтверждается по order reference из его metadata.
func (uc *UseCase) ExecuteEvent(ctx context.Context, eventID string) (*Response, error) {
	uc.logger.Info("ConfirmPayment: webhook event=%s", eventID)

	charge, err := uc.gateway.VerifyEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrUnsupportedEvent) {
			uc.logger.Info("ConfirmPayment: event=%s ignored: %v", eventID, err)
			return nil, ErrIgnoredEvent
		}
		if errors.Is(err, paymentgateway.ErrInvalidRequest) || errors.Is(err, paymentgateway.ErrRejected) {
			uc.logger.Warn("ConfirmPayment: event=%s rejected by gateway: %v", eventID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("ConfirmPayment: failed to verify event=%s: %v", eventID, err)
		return nil, fmt.Errorf("%w: verify event: %v", ErrGateway, err)
	}

	if charge.OrderReference == "" {
		uc.logger.Warn("ConfirmPayment: event=%s charge=%s has no order reference", eventID, charge.ExternalReference)
		return nil, ErrIgnoredEvent
	}

	return uc.Execute(ctx, &Request{OrderReference: charge.OrderReference})
}

// Execute подтверждает платеж по order reference
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: ref=%s", req.OrderReference)

	if req.OrderReference == "" {
		return nil, fmt.Errorf("%w: orderReference is required", ErrInvalidInput)
	}

	// 1. Ищем запись об ожидающем платеже
	record, err := uc.paymentRepo.GetByReference(ctx, req.OrderReference)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return uc.alreadyProcessed(ctx, req.OrderReference)
		}
		uc.logger.Error("ConfirmPayment: failed to get pending payment ref=%s: %v", req.OrderReference, err)
		return nil, fmt.Errorf("%w: failed to get pending payment: %v", ErrInternal, err)
	}

	response := &Response{OrderReference: record.OrderReference}

	switch {
	case record.Status == domain.PaymentConflict:
		uc.logger.Warn("ConfirmPayment: ref=%s already in conflict, awaiting manual refund", req.OrderReference)
		return nil, ErrAvailabilityConflict
	case record.Status == domain.PaymentFailed:
		// Отказ шлюза окончателен, повторно не запрашиваем
		response.Outcome = domain.OutcomeFailed
		uc.observe(resultFailed)
		return response, nil
	case record.ExternalReference == nil:
		// Платеж в шлюзе еще не создан
		response.Outcome = domain.OutcomePending
		uc.observe(resultPending)
		return response, nil
	}

	// 2. Состояние платежа берется только из шлюза
	charge, err := uc.gateway.GetCharge(ctx, *record.ExternalReference)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to get charge=%s for ref=%s: %v",
			*record.ExternalReference, req.OrderReference, err)
		return nil, fmt.Errorf("%w: get charge: %v", ErrGateway, err)
	}

	outcome := charge.Outcome
	if outcome == domain.OutcomeSuccessful && charge.Amount != record.Amount {
		uc.logger.Error("ConfirmPayment: ref=%s amount mismatch: charged=%d, expected=%d",
			req.OrderReference, charge.Amount, record.Amount)
		outcome = domain.OutcomeFailed
	}
	response.Outcome = outcome

	switch outcome {
	case domain.OutcomePending:
		uc.observe(resultPending)
		return response, nil

	case domain.OutcomeFailed:
		if err := uc.paymentRepo.MarkStatus(ctx, req.OrderReference, domain.PaymentFailed); err != nil &&
			!errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Error("ConfirmPayment: failed to mark ref=%s as failed: %v", req.OrderReference, err)
			return nil, fmt.Errorf("%w: failed to mark payment failed: %v", ErrInternal, err)
		}
		uc.logger.Info("ConfirmPayment: ref=%s failed: %s %s", req.OrderReference, charge.FailureCode, charge.FailureMessage)
		uc.observe(resultFailed)
		return response, nil
	}

	// 3. Успешная оплата: материализуем бронирование
	return uc.materialize(ctx, record, *record.ExternalReference, response)
}

// materialize создает бронирование из снимка, отметку об обработке и удаляет запись
// в одной сериализуемой транзакции
func (uc *UseCase) materialize(ctx context.Context, record *domain.PendingPayment, externalRef string, response *Response) (*Response, error) {
	ref := record.OrderReference
	var created *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторно читаем запись с блокировкой: параллельный callback мог ее уже обработать
		locked, err := uc.paymentRepo.GetByReference(txCtx, ref)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return errAlreadyConsumed
			}
			return fmt.Errorf("%w: failed to lock pending payment: %w", ErrInternal, err)
		}
		if locked.Status == domain.PaymentConflict {
			return ErrAvailabilityConflict
		}

		reservation, err := locked.Snapshot.ToReservation(domain.StatusValidated, &externalRef)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotConflict) {
				return fmt.Errorf("%w: %v", ErrAvailabilityConflict, err)
			}
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		if err := uc.paymentRepo.CreateTombstone(txCtx, ref, created.ID); err != nil {
			if errors.Is(err, paymentRepo.ErrDuplicateReference) {
				return errAlreadyConsumed
			}
			return fmt.Errorf("%w: failed to create tombstone: %w", ErrInternal, err)
		}

		if err := uc.paymentRepo.Delete(txCtx, ref); err != nil {
			return fmt.Errorf("%w: failed to delete pending payment: %w", ErrInternal, err)
		}

		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, errAlreadyConsumed):
		return uc.alreadyProcessed(ctx, ref)
	case errors.Is(err, ErrAvailabilityConflict):
		uc.logger.Error("ConfirmPayment: ref=%s paid but hours are taken, manual refund required: %v", ref, err)
		if markErr := uc.paymentRepo.MarkStatus(ctx, ref, domain.PaymentConflict); markErr != nil {
			uc.logger.Error("ConfirmPayment: failed to mark ref=%s as conflict: %v", ref, markErr)
		}
		uc.observe(resultConflict)
		return nil, ErrAvailabilityConflict
	case errors.Is(err, txmanager.ErrSerializationFailure):
		// Параллельный callback мог успеть первым
		if _, tombErr := uc.paymentRepo.GetTombstone(ctx, ref); tombErr == nil {
			return uc.alreadyProcessed(ctx, ref)
		}
		uc.logger.Warn("ConfirmPayment: ref=%s serialization failure, gateway will redeliver: %v", ref, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	default:
		uc.logger.Error("ConfirmPayment: failed to materialize ref=%s: %v", ref, err)
		return nil, err
	}

	uc.observe(resultSuccessful)
	if uc.metrics != nil {
		uc.metrics.IncReservationCreated(PathPayment)
	}

	uc.logger.Info("ConfirmPayment: ref=%s materialized as reservation id=%d", ref, created.ID)

	uc.notifier.Notify(ctx, domain.NewReservationStatusChanged(created, domain.StatusPendingPayment, uc.timeProvider.Now()))

	response.ReservationID = created.ID
	return response, nil
}

// alreadyProcessed отвечает на повторный callback по уже обработанному order reference
func (uc *UseCase) alreadyProcessed(ctx context.Context, ref string) (*Response, error) {
	tombstone, err := uc.paymentRepo.GetTombstone(ctx, ref)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotConsumed) {
			uc.logger.Error("ConfirmPayment: unknown order reference ref=%s", ref)
			uc.observe(resultNotFound)
			return nil, ErrReferenceNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get tombstone ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to get tombstone: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmPayment: ref=%s already processed as reservation id=%d", ref, tombstone.ReservationID)
	uc.observe(resultDuplicate)

	return &Response{
		OrderReference:   ref,
		Outcome:          domain.OutcomeSuccessful,
		AlreadyProcessed: true,
		ReservationID:    tombstone.ReservationID,
	}, nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.IncPaymentCallback(result)
	}
}
