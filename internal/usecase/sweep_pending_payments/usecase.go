package sweep_pending_payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	confirmPayment "github.com/m04kA/SMC-PitchBookingService/internal/usecase/confirm_payment"
)

var (
	// ErrInvalidTTL возвращается при неположительном времени жизни записи
	ErrInvalidTTL = errors.New("sweep_pending_payments: ttl must be positive")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sweep_pending_payments: internal error")
)

// reconcileBatch сколько записей с платежом сверяется за один проход
const reconcileBatch = 100

// UseCase очищает брошенные записи об ожидающих платежах.
// Запись, по которой в шлюзе уже создан платеж, не удаляется вслепую: сначала
// она сверяется со шлюзом, оплаченная становится бронированием, отклоненная
// помечается failed и удаляется в том же проходе.
type UseCase struct {
	paymentRepo  PaymentRepository
	confirmer    PaymentConfirmer
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(paymentRepo PaymentRepository, confirmer PaymentConfirmer, ttl time.Duration, logger Logger) (*UseCase, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &UseCase{
		paymentRepo:  paymentRepo,
		confirmer:    confirmer,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// Execute сверяет устаревшие записи с платежом и удаляет брошенные записи старше ttl
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	before := uc.timeProvider.Now().Add(-uc.ttl)
	result := &Result{}

	// 1. Записи с платежом в шлюзе
	stale, err := uc.paymentRepo.ListStaleCharged(ctx, before, reconcileBatch)
	if err != nil {
		uc.logger.Error("SweepPendingPayments: failed to list charged records before %s: %v", before.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, record := range stale {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, ctx.Err())
		}
		uc.reconcile(ctx, record, result)
	}

	// 2. Записи, по которым деньги точно не списаны
	deleted, err := uc.paymentRepo.DeleteAbandoned(ctx, before)
	if err != nil {
		uc.logger.Error("SweepPendingPayments: failed to delete records before %s: %v", before.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	result.Deleted = deleted

	if deleted > 0 || result.Reconciled > 0 {
		uc.logger.Info("SweepPendingPayments: reconciled=%d, materialized=%d, unresolved=%d, deleted=%d (created before %s)",
			result.Reconciled, result.Materialized, result.Unresolved, deleted, before.Format(time.RFC3339))
	}

	return result, nil
}

func (uc *UseCase) reconcile(ctx context.Context, record *domain.PendingPayment, result *Result) {
	result.Reconciled++

	resp, err := uc.confirmer.Execute(ctx, &confirmPayment.Request{OrderReference: record.OrderReference})
	if err != nil {
		// Запись остается до следующего прохода
		uc.logger.Warn("SweepPendingPayments: failed to reconcile ref=%s: %v", record.OrderReference, err)
		result.Unresolved++
		return
	}

	switch resp.Outcome {
	case domain.OutcomeSuccessful:
		uc.logger.Info("SweepPendingPayments: late payment ref=%s materialized as reservation id=%d",
			record.OrderReference, resp.ReservationID)
		result.Materialized++
	case domain.OutcomePending:
		result.Unresolved++
	}
}

// Run запускает очистку по таймеру до отмены ctx
func (uc *UseCase) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("SweepPendingPayments: stopped")
			return
		case <-ticker.C:
			_, _ = uc.Execute(ctx)
		}
	}
}
