package confirm_payment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/integrations/paymentgateway"
	paymentRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-PitchBookingService/pkg/logger"
	"github.com/m04kA/SMC-PitchBookingService/pkg/ptr"
)

// fakeStore хранит ожидающие платежи, отметки об обработке и бронирования
type fakeStore struct {
	mu           sync.Mutex
	payments     map[string]*domain.PendingPayment
	tombstones   map[string]*domain.ConsumedPayment
	reservations []*domain.Reservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		payments:   map[string]*domain.PendingPayment{},
		tombstones: map[string]*domain.ConsumedPayment{},
	}
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
	for _, existing := range s.reservations {
		if existing.PitchID == r.PitchID && existing.Date.Equal(r.Date) && existing.IsActive() &&
			existing.Overlaps(r.StartHour, r.EndHour()) {
			return nil, reservationRepo.ErrSlotConflict
		}
	}
	stored := *r
	stored.ID = int64(len(s.reservations) + 100)
	s.reservations = append(s.reservations, &stored)
	return &stored, nil
}

// serialTxManager выполняет транзакции по одной, как блокировка FOR UPDATE на записи
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeGateway struct {
	mu     sync.Mutex
	charge *paymentgateway.ChargeResult
	event  *paymentgateway.ChargeResult
	err    error
	calls  int
}

func (g *fakeGateway) GetCharge(context.Context, string) (*paymentgateway.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.charge, g.err
}

func (g *fakeGateway) VerifyEvent(context.Context, string) (*paymentgateway.ChargeResult, error) {
	return g.event, g.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []domain.ReservationStatusChanged
}

func (n *fakeNotifier) Notify(_ context.Context, event domain.ReservationStatusChanged) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type fakeMetrics struct {
	mu        sync.Mutex
	callbacks map[string]int
	created   map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{callbacks: map[string]int{}, created: map[string]int{}}
}

func (m *fakeMetrics) IncPaymentCallback(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks[result]++
}

func (m *fakeMetrics) IncReservationCreated(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created[path]++
}

var bookingDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func seedPayment(store *fakeStore, ref string, startHour int) {
	store.payments[ref] = &domain.PendingPayment{
		ID:             1,
		OrderReference: ref,
		Snapshot: domain.NewReservationSnapshot(&domain.Reservation{
			PitchID:       1,
			RequesterID:   42,
			Date:          bookingDate,
			StartHour:     startHour,
			DurationHours: 2,
			TotalAmount:   20000,
		}),
		Amount:            20000,
		Currency:          "thb",
		Status:            domain.PaymentPending,
		ExternalReference: ptr.Ptr("chrg_test_1"),
	}
}

func successfulCharge() *paymentgateway.ChargeResult {
	return &paymentgateway.ChargeResult{
		ExternalReference: "chrg_test_1",
		OrderReference:    "ref-1",
		Amount:            20000,
		Currency:          "thb",
		Outcome:           domain.OutcomeSuccessful,
	}
}

type fixture struct {
	store    *fakeStore
	gateway  *fakeGateway
	notifier *fakeNotifier
	metrics  *fakeMetrics
	uc       *UseCase
}

func newFixture(charge *paymentgateway.ChargeResult) *fixture {
	f := &fixture{
		store:    newFakeStore(),
		gateway:  &fakeGateway{charge: charge, event: charge},
		notifier: &fakeNotifier{},
		metrics:  newFakeMetrics(),
	}
	f.uc = NewUseCase(f.store, f.store, f.gateway, &serialTxManager{}, f.notifier, f.metrics, logger.NewNop())
	return f
}

func TestExecute_SuccessfulPaymentMaterializesReservation(t *testing.T) {
	f := newFixture(successfulCharge())
	seedPayment(f.store, "ref-1", 18)

	resp, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeSuccessful, resp.Outcome)
	assert.False(t, resp.AlreadyProcessed)

	require.Len(t, f.store.reservations, 1)
	created := f.store.reservations[0]
	assert.Equal(t, resp.ReservationID, created.ID)
	assert.Equal(t, domain.StatusValidated, created.Status)
	assert.Equal(t, 18, created.StartHour)
	assert.Equal(t, "chrg_test_1", *created.PaymentReference)

	assert.Empty(t, f.store.payments)
	assert.Contains(t, f.store.tombstones, "ref-1")

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventReservationValidated, f.notifier.events[0].Type)
	assert.Equal(t, domain.StatusPendingPayment, f.notifier.events[0].PreviousStatus)
	assert.Equal(t, 1, f.metrics.created[PathPayment])
}

func TestExecute_DuplicateCallbackIsNoOp(t *testing.T) {
	f := newFixture(successfulCharge())
	seedPayment(f.store, "ref-1", 18)

	first, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	require.NoError(t, err)

	second, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	require.NoError(t, err)

	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.ReservationID, second.ReservationID)
	assert.Len(t, f.store.reservations, 1)
	assert.Len(t, f.notifier.events, 1)
	assert.Equal(t, 1, f.gateway.calls)
	assert.Equal(t, 1, f.metrics.callbacks[resultDuplicate])
}

func TestExecute_ConcurrentCallbacksCreateOneReservation(t *testing.T) {
	f := newFixture(successfulCharge())
	seedPayment(f.store, "ref-1", 18)

	const callbacks = 6
	var wg sync.WaitGroup
	errs := make([]error, callbacks)
	for i := 0; i < callbacks; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, f.store.reservations, 1)
	assert.Len(t, f.notifier.events, 1)
}

func TestExecute_UnknownReference(t *testing.T) {
	f := newFixture(successfulCharge())

	_, err := f.uc.Execute(context.Background(), &Request{OrderReference: "missing"})

	assert.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Equal(t, 1, f.metrics.callbacks[resultNotFound])
}

func TestExecute_FailedPaymentMarksRecord(t *testing.T) {
	charge := successfulCharge()
	charge.Outcome = domain.OutcomeFailed
	charge.FailureCode = "insufficient_fund"
	f := newFixture(charge)
	seedPayment(f.store, "ref-1", 18)

	resp, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFailed, resp.Outcome)
	assert.Equal(t, domain.PaymentFailed, f.store.payments["ref-1"].Status)
	assert.Empty(t, f.store.reservations)
	assert.Empty(t, f.notifier.events)
}

func TestExecute_AmountMismatchIsFailure(t *testing.T) {
	charge := successfulCharge()
	charge.Amount = 100
	f := newFixture(charge)
	seedPayment(f.store, "ref-1", 18)

	resp, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFailed, resp.Outcome)
	assert.Empty(t, f.store.reservations)
}

func TestExecute_FailedRecordWithoutChargeReportsFailed(t *testing.T) {
	f := newFixture(successfulCharge())
	seedPayment(f.store, "ref-1", 18)
	f.store.payments["ref-1"].Status = domain.PaymentFailed
	f.store.payments["ref-1"].ExternalReference = nil

	resp, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFailed, resp.Outcome)
	assert.Equal(t, 0, f.gateway.calls)
	assert.Equal(t, 1, f.metrics.callbacks[resultFailed])
	assert.Empty(t, f.store.reservations)
}

func TestExecute_FailedRecordIsNotRequeried(t *testing.T) {
	f := newFixture(successfulCharge())
	seedPayment(f.store, "ref-1", 18)
	f.store.payments["ref-1"].Status = domain.PaymentFailed

	resp, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFailed, resp.Outcome)
	assert.Equal(t, 0, f.gateway.calls)
	assert.Empty(t, f.store.reservations)
}

func TestExecute_PendingPaymentLeavesRecord(t *testing.T) {
	charge := successfulCharge()
	charge.Outcome = domain.OutcomePending
	f := newFixture(charge)
	seedPayment(f.store, "ref-1", 18)

	resp, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomePending, resp.Outcome)
	assert.Equal(t, domain.PaymentPending, f.store.payments["ref-1"].Status)
}

func TestExecute_PaidHoursTakenMarksConflict(t *testing.T) {
	f := newFixture(successfulCharge())
	seedPayment(f.store, "ref-1", 18)
	f.store.reservations = append(f.store.reservations, &domain.Reservation{
		ID: 1, PitchID: 1, Date: bookingDate, StartHour: 19, DurationHours: 1, Status: domain.StatusPending,
	})

	_, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})

	assert.ErrorIs(t, err, ErrAvailabilityConflict)
	require.Contains(t, f.store.payments, "ref-1")
	assert.Equal(t, domain.PaymentConflict, f.store.payments["ref-1"].Status)
	assert.Empty(t, f.store.tombstones)
	assert.Len(t, f.store.reservations, 1)
	assert.Empty(t, f.notifier.events)

	// Повторный callback не пытается создать бронирование снова
	_, err = f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})
	assert.ErrorIs(t, err, ErrAvailabilityConflict)
	assert.Equal(t, 1, f.gateway.calls)
}

func TestExecute_GatewayUnavailable(t *testing.T) {
	f := newFixture(nil)
	f.gateway.err = paymentgateway.ErrUnavailable
	seedPayment(f.store, "ref-1", 18)

	_, err := f.uc.Execute(context.Background(), &Request{OrderReference: "ref-1"})

	assert.ErrorIs(t, err, ErrGateway)
	assert.Equal(t, domain.PaymentPending, f.store.payments["ref-1"].Status)
}

func TestExecuteEvent(t *testing.T) {
	t.Run("confirms by metadata reference", func(t *testing.T) {
		f := newFixture(successfulCharge())
		seedPayment(f.store, "ref-1", 18)

		resp, err := f.uc.ExecuteEvent(context.Background(), "evnt_test_1")
		require.NoError(t, err)
		assert.Equal(t, "ref-1", resp.OrderReference)
		assert.Len(t, f.store.reservations, 1)
	})

	t.Run("unsupported event is ignored", func(t *testing.T) {
		f := newFixture(nil)
		f.gateway.err = paymentgateway.ErrUnsupportedEvent

		_, err := f.uc.ExecuteEvent(context.Background(), "evnt_test_2")
		assert.ErrorIs(t, err, ErrIgnoredEvent)
	})

	t.Run("charge without reference is ignored", func(t *testing.T) {
		charge := successfulCharge()
		charge.OrderReference = ""
		f := newFixture(charge)

		_, err := f.uc.ExecuteEvent(context.Background(), "evnt_test_3")
		assert.ErrorIs(t, err, ErrIgnoredEvent)
	})
}
