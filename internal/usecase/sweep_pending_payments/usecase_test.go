package sweep_pending_payments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/integrations/paymentgateway"
	paymentRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/payment"
	confirmPayment "github.com/m04kA/SMC-PitchBookingService/internal/usecase/confirm_payment"
	"github.com/m04kA/SMC-PitchBookingService/pkg/logger"
	"github.com/m04kA/SMC-PitchBookingService/pkg/ptr"
)

// fakeStore повторяет выборки репозитория платежей поверх map
type fakeStore struct {
	mu           sync.Mutex
	payments     map[string]*domain.PendingPayment
	tombstones   map[string]*domain.ConsumedPayment
	reservations []*domain.Reservation
	listErr      error
	deleteErr    error
	listLimit    int
	deleteBefore time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		payments:   map[string]*domain.PendingPayment{},
		tombstones: map[string]*domain.ConsumedPayment{},
	}
}

func (s *fakeStore) ListStaleCharged(_ context.Context, before time.Time, limit int) ([]*domain.PendingPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listLimit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*domain.PendingPayment
	for _, p := range s.payments {
		if p.Status == domain.PaymentPending && p.ExternalReference != nil && p.CreatedAt.Before(before) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteAbandoned(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteBefore = before
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	var deleted int64
	for ref, p := range s.payments {
		if !p.CreatedAt.Before(before) {
			continue
		}
		if p.Status == domain.PaymentFailed || (p.Status == domain.PaymentPending && p.ExternalReference == nil) {
			delete(s.payments, ref)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakeStore) GetByReference(_ context.Context, ref string) (*domain.PendingPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[ref]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) MarkStatus(_ context.Context, ref string, status domain.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[ref]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	p.Status = status
	return nil
}

func (s *fakeStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[ref]; !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	delete(s.payments, ref)
	return nil
}

func (s *fakeStore) CreateTombstone(_ context.Context, ref string, reservationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tombstones[ref]; ok {
		return paymentRepo.ErrDuplicateReference
	}
	s.tombstones[ref] = &domain.ConsumedPayment{OrderReference: ref, ReservationID: reservationID}
	return nil
}

func (s *fakeStore) GetTombstone(_ context.Context, ref string) (*domain.ConsumedPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tombstones[ref]
	if !ok {
		return nil, paymentRepo.ErrNotConsumed
	}
	return t, nil
}

func (s *fakeStore) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *r
	stored.ID = int64(len(s.reservations) + 100)
	s.reservations = append(s.reservations, &stored)
	return &stored, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeGateway struct {
	outcome domain.PaymentOutcome
	err     error
	calls   int
}

func (g *fakeGateway) GetCharge(_ context.Context, externalRef string) (*paymentgateway.ChargeResult, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &paymentgateway.ChargeResult{
		ExternalReference: externalRef,
		Amount:            20000,
		Currency:          "thb",
		Outcome:           g.outcome,
	}, nil
}

func (g *fakeGateway) VerifyEvent(context.Context, string) (*paymentgateway.ChargeResult, error) {
	return nil, paymentgateway.ErrUnsupportedEvent
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.ReservationStatusChanged) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedPayment(store *fakeStore, ref string, externalRef *string, status domain.PaymentStatus, age time.Duration) {
	store.payments[ref] = &domain.PendingPayment{
		OrderReference: ref,
		Snapshot: domain.NewReservationSnapshot(&domain.Reservation{
			PitchID:       1,
			RequesterID:   42,
			Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			StartHour:     18,
			DurationHours: 2,
			TotalAmount:   20000,
		}),
		Amount:            20000,
		Currency:          "thb",
		Status:            status,
		ExternalReference: externalRef,
		CreatedAt:         now.Add(-age),
	}
}

type fixture struct {
	store   *fakeStore
	gateway *fakeGateway
	confirm *confirmPayment.UseCase
	uc      *UseCase
}

func newFixture(t *testing.T, outcome domain.PaymentOutcome) *fixture {
	t.Helper()
	f := &fixture{store: newFakeStore(), gateway: &fakeGateway{outcome: outcome}}
	f.confirm = confirmPayment.NewUseCase(f.store, f.store, f.gateway, passthroughTx{}, nopNotifier{}, nil, logger.NewNop())

	uc, err := NewUseCase(f.store, f.confirm, 30*time.Minute, logger.NewNop())
	require.NoError(t, err)
	uc.timeProvider = fixedTime{now: now}
	f.uc = uc
	return f
}

func TestExecute_LateSuccessfulPaymentIsMaterializedNotDeleted(t *testing.T) {
	f := newFixture(t, domain.OutcomeSuccessful)
	seedPayment(f.store, "ref-paid", ptr.Ptr("chrg_test_1"), domain.PaymentPending, 31*time.Minute)

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Reconciled)
	assert.Equal(t, 1, result.Materialized)
	assert.Equal(t, int64(0), result.Deleted)
	require.Len(t, f.store.reservations, 1)
	assert.Equal(t, domain.StatusValidated, f.store.reservations[0].Status)
	assert.Equal(t, "chrg_test_1", *f.store.reservations[0].PaymentReference)

	// callback шлюза, пришедший после очистки, видит уже созданное бронирование
	resp, err := f.confirm.Execute(context.Background(), &confirmPayment.Request{OrderReference: "ref-paid"})
	require.NoError(t, err)
	assert.True(t, resp.AlreadyProcessed)
	assert.Equal(t, domain.OutcomeSuccessful, resp.Outcome)
	assert.Equal(t, f.store.reservations[0].ID, resp.ReservationID)
	assert.Len(t, f.store.reservations, 1)
}

func TestExecute_DeletesOnlyRecordsWithoutCharge(t *testing.T) {
	f := newFixture(t, domain.OutcomePending)
	seedPayment(f.store, "ref-no-charge", nil, domain.PaymentPending, 45*time.Minute)
	seedPayment(f.store, "ref-declined", ptr.Ptr("chrg_2"), domain.PaymentFailed, 45*time.Minute)
	seedPayment(f.store, "ref-charged", ptr.Ptr("chrg_3"), domain.PaymentPending, 45*time.Minute)
	seedPayment(f.store, "ref-conflict", ptr.Ptr("chrg_4"), domain.PaymentConflict, 45*time.Minute)
	seedPayment(f.store, "ref-fresh", nil, domain.PaymentPending, 5*time.Minute)

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Deleted)
	assert.Equal(t, 1, result.Unresolved)
	assert.NotContains(t, f.store.payments, "ref-no-charge")
	assert.NotContains(t, f.store.payments, "ref-declined")
	assert.Contains(t, f.store.payments, "ref-charged")
	assert.Contains(t, f.store.payments, "ref-conflict")
	assert.Contains(t, f.store.payments, "ref-fresh")
	assert.Equal(t, now.Add(-30*time.Minute), f.store.deleteBefore)
	assert.Equal(t, reconcileBatch, f.store.listLimit)
}

func TestExecute_DeclinedChargeIsDeletedInSameRun(t *testing.T) {
	f := newFixture(t, domain.OutcomeFailed)
	seedPayment(f.store, "ref-1", ptr.Ptr("chrg_1"), domain.PaymentPending, 40*time.Minute)

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Reconciled)
	assert.Equal(t, int64(1), result.Deleted)
	assert.Empty(t, f.store.payments)
	assert.Empty(t, f.store.reservations)
}

func TestExecute_GatewayErrorKeepsRecord(t *testing.T) {
	f := newFixture(t, domain.OutcomeSuccessful)
	f.gateway.err = errors.New("gateway timeout")
	seedPayment(f.store, "ref-1", ptr.Ptr("chrg_1"), domain.PaymentPending, 40*time.Minute)

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Unresolved)
	assert.Equal(t, int64(0), result.Deleted)
	assert.Contains(t, f.store.payments, "ref-1")
}

func TestExecute_ListError(t *testing.T) {
	f := newFixture(t, domain.OutcomeSuccessful)
	f.store.listErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_DeleteError(t *testing.T) {
	f := newFixture(t, domain.OutcomeSuccessful)
	f.store.deleteErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestNewUseCase_InvalidTTL(t *testing.T) {
	_, err := NewUseCase(newFakeStore(), nil, 0, logger.NewNop())

	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestRun_StopsOnCancel(t *testing.T) {
	f := newFixture(t, domain.OutcomeSuccessful)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.uc.Run(ctx, time.Hour)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.Equal(t, 0, f.gateway.calls)
}
