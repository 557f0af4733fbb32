package initiate_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	"github.com/m04kA/SMC-PitchBookingService/internal/integrations/paymentgateway"
	pitchRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/pitch"
)

// UseCase use case оплаты бронирования через платежный шлюз.
// Бронирование не создается: сохраняется запись об ожидающем платеже со снимком,
// который материализуется после подтверждения оплаты.
type UseCase struct {
	pitchRepo       PitchRepository
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	gateway         PaymentGateway
	settings        Settings
	newReference    func() string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	pitchRepo PitchRepository,
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGateway,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Currency == "" {
		settings.Currency = domain.DefaultCurrency
	}
	return &UseCase{
		pitchRepo:       pitchRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		gateway:         gateway,
		settings:        settings,
		newReference:    uuid.NewString,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("InitiatePayment: requester=%d, pitch=%d, date=%s, hours=%v",
		req.RequesterID, req.PitchID, req.Date.Format(domain.DateFormat), req.Hours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("InitiatePayment: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Получаем поле
	pitch, err := uc.pitchRepo.GetByID(ctx, req.PitchID)
	if err != nil {
		if errors.Is(err, pitchRepo.ErrPitchNotFound) {
			uc.logger.Warn("InitiatePayment: pitch id=%d not found", req.PitchID)
			return nil, ErrPitchNotFound
		}
		uc.logger.Error("InitiatePayment: failed to get pitch id=%d: %v", req.PitchID, err)
		return nil, fmt.Errorf("%w: failed to get pitch: %v", ErrInternal, err)
	}

	// 3. Проверяем часы. Окончательная проверка выполняется при подтверждении оплаты
	reservations, err := uc.reservationRepo.ListActiveByPitchAndDate(ctx, req.PitchID, date)
	if err != nil {
		uc.logger.Error("InitiatePayment: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	view := domain.DayView{Date: date, Reserved: domain.ReservedHours(reservations), Now: uc.timeProvider.Now()}
	hours, err := checkHours(req.Hours, view)
	if err != nil {
		uc.logger.Warn("InitiatePayment: hours %v rejected: %v", req.Hours, err)
		return nil, err
	}

	band, err := pitch.RateBand()
	if err != nil {
		uc.logger.Error("InitiatePayment: pitch id=%d has invalid rates: %v", pitch.ID, err)
		return nil, fmt.Errorf("%w: invalid pitch rates: %v", ErrInternal, err)
	}

	reservation := &domain.Reservation{
		PitchID:       req.PitchID,
		RequesterID:   req.RequesterID,
		Date:          date,
		StartHour:     hours[0],
		DurationHours: len(hours),
		TotalAmount:   domain.ComputeTotal(hours, band),
		Status:        domain.StatusPendingPayment,
	}

	orderReference := uc.newReference()
	back, err := returnURL(uc.settings.ReturnURL, orderReference)
	if err != nil {
		uc.logger.Error("InitiatePayment: invalid return url %q: %v", uc.settings.ReturnURL, err)
		return nil, fmt.Errorf("%w: invalid return url: %v", ErrInternal, err)
	}

	// 4. Сохраняем запись об ожидающем платеже
	pending := &domain.PendingPayment{
		OrderReference: orderReference,
		Snapshot:       domain.NewReservationSnapshot(reservation),
		Amount:         reservation.TotalAmount,
		Currency:       uc.settings.Currency,
		Status:         domain.PaymentPending,
	}
	if _, err := uc.paymentRepo.Create(ctx, pending); err != nil {
		uc.logger.Error("InitiatePayment: failed to store pending payment ref=%s: %v", orderReference, err)
		return nil, fmt.Errorf("%w: failed to store pending payment: %v", ErrInternal, err)
	}

	// 5. Создаем платеж в шлюзе
	session, err := uc.gateway.InitiatePayment(ctx, paymentgateway.PaymentRequest{
		OrderReference: orderReference,
		Description:    description(pitch, reservation),
		Amount:         reservation.TotalAmount,
		Currency:       uc.settings.Currency,
		ReturnURL:      back,
	})
	if err != nil {
		uc.logger.Error("InitiatePayment: gateway failed for ref=%s: %v", orderReference, err)
		if markErr := uc.paymentRepo.MarkStatus(ctx, orderReference, domain.PaymentFailed); markErr != nil {
			uc.logger.Error("InitiatePayment: failed to mark ref=%s as failed: %v", orderReference, markErr)
		}
		return nil, &GatewayError{Message: paymentgateway.GatewayMessage(err), Err: err}
	}

	// 6. Запоминаем ссылку на платеж шлюза
	if err := uc.paymentRepo.UpdateGatewayData(ctx, orderReference, session.ExternalReference, session.RedirectURL); err != nil {
		uc.logger.Error("InitiatePayment: failed to store gateway data for ref=%s: %v", orderReference, err)
		return nil, fmt.Errorf("%w: failed to store gateway data: %v", ErrInternal, err)
	}

	uc.logger.Info("InitiatePayment: ref=%s, charge=%s, amount=%d %s",
		orderReference, session.ExternalReference, reservation.TotalAmount, uc.settings.Currency)

	return &Response{
		OrderReference: orderReference,
		RedirectURL:    session.RedirectURL,
		Amount:         reservation.TotalAmount,
		Currency:       uc.settings.Currency,
		StartHour:      reservation.StartHour,
		DurationHours:  reservation.DurationHours,
	}, nil
}
