package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	pitchRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/pitch"
	reservationRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-PitchBookingService/pkg/txmanager"
)

// UseCase use case прямой отправки заявки на бронирование (статус pending)
type UseCase struct {
	pitchRepo       PitchRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	pitchRepo PitchRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		pitchRepo:       pitchRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции,
// повторов при конфликте нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: requester=%d, pitch=%d, date=%s, hours=%v",
		req.RequesterID, req.PitchID, req.Date.Format(domain.DateFormat), req.Hours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	var result *domain.Reservation

	// 2. Проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем поле
		pitch, err := uc.pitchRepo.GetByID(txCtx, req.PitchID)
		if err != nil {
			if errors.Is(err, pitchRepo.ErrPitchNotFound) {
				uc.logger.Warn("CreateReservation: pitch id=%d not found", req.PitchID)
				return ErrPitchNotFound
			}
			uc.logger.Error("CreateReservation: failed to get pitch id=%d: %v", req.PitchID, err)
			return fmt.Errorf("%w: failed to get pitch: %v", ErrInternal, err)
		}

		// 2.2. Блокируем бронирования поля на дату (FOR UPDATE)
		reservations, err := uc.reservationRepo.ListActiveByPitchAndDate(txCtx, req.PitchID, date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %w", ErrInternal, err)
		}

		// 2.3. Повторная проверка выбранных часов
		view := domain.DayView{Date: date, Reserved: domain.ReservedHours(reservations), Now: now}
		hours, err := checkHours(req.Hours, view)
		if err != nil {
			uc.logger.Warn("CreateReservation: hours %v rejected: %v", req.Hours, err)
			return err
		}

		// 2.4. Считаем стоимость
		band, err := pitch.RateBand()
		if err != nil {
			uc.logger.Error("CreateReservation: pitch id=%d has invalid rates: %v", pitch.ID, err)
			return fmt.Errorf("%w: invalid pitch rates: %v", ErrInternal, err)
		}

		reservation := &domain.Reservation{
			PitchID:       req.PitchID,
			RequesterID:   req.RequesterID,
			Date:          date,
			StartHour:     hours[0],
			DurationHours: len(hours),
			TotalAmount:   domain.ComputeTotal(hours, band),
			Status:        domain.StatusPending,
		}

		// 2.5. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateReservation: overlap detected on insert: %v", err)
				return fmt.Errorf("%w: %v", ErrAvailabilityConflict, err)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateReservation: concurrent submission for pitch=%d date=%s: %v",
				req.PitchID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrAvailabilityConflict, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncReservationCreated(PathDirect)
	}

	uc.logger.Info("CreateReservation: created reservation id=%d, hours=[%d,%d), total=%d",
		result.ID, result.StartHour, result.EndHour(), result.TotalAmount)

	return fromDomain(result), nil
}
