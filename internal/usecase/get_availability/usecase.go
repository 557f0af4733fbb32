package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	pitchRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/pitch"
)

// UseCase use case определения занятых часов поля на дату
type UseCase struct {
	pitchRepo       PitchRepository
	reservationRepo ReservationRepository
	retry           RetryPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	pitchRepo PitchRepository,
	reservationRepo ReservationRepository,
	retry RetryPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		pitchRepo:       pitchRepo,
		reservationRepo: reservationRepo,
		retry:           retry,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case. Только чтение: ошибки хранилища повторяются
// по RetryPolicy, после исчерпания попыток возвращается ErrUnavailableData.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: pitch=%d, date=%s", req.PitchID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	response := &Response{
		PitchID:       req.PitchID,
		Date:          date,
		ReservedHours: []int{},
		Hours:         []HourSlot{},
	}

	// 2. Получаем поле. Несуществующее поле дает пустой результат, а не ошибку
	var pitch *domain.Pitch
	err := uc.withRetry(ctx, "get pitch", func() error {
		p, err := uc.pitchRepo.GetByID(ctx, req.PitchID)
		if err != nil {
			return err
		}
		pitch = p
		return nil
	})
	if errors.Is(err, pitchRepo.ErrPitchNotFound) {
		uc.logger.Warn("GetAvailability: pitch id=%d not found, returning empty result", req.PitchID)
		return response, nil
	}
	if err != nil {
		return nil, err
	}

	// 3. Получаем активные бронирования на дату
	var reservations []*domain.Reservation
	err = uc.withRetry(ctx, "list reservations", func() error {
		list, err := uc.reservationRepo.ListActiveByPitchAndDate(ctx, req.PitchID, date)
		if err != nil {
			return err
		}
		reservations = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Считаем занятые часы и состояние каждого часа
	band, err := pitch.RateBand()
	if err != nil {
		uc.logger.Error("GetAvailability: pitch id=%d has invalid rates: %v", req.PitchID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailableData, err)
	}

	view := domain.DayView{
		Date:     date,
		Reserved: domain.ReservedHours(reservations),
		Now:      uc.timeProvider.Now(),
	}

	response.PitchFound = true
	response.ReservedHours = view.Reserved.Hours()
	response.Hours = buildHourSlots(view, band)

	uc.logger.Info("GetAvailability: pitch=%d, date=%s, reserved=%v",
		req.PitchID, date.Format(domain.DateFormat), response.ReservedHours)

	return response, nil
}

// withRetry выполняет чтение с повторами. ErrPitchNotFound не повторяется
func (uc *UseCase) withRetry(ctx context.Context, step string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= uc.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %s: %v", ErrUnavailableData, step, ctx.Err())
			case <-time.After(uc.retry.Delay):
			}
		}

		lastErr = fn()
		if lastErr == nil || errors.Is(lastErr, pitchRepo.ErrPitchNotFound) {
			return lastErr
		}

		uc.logger.Warn("GetAvailability: %s failed (attempt %d/%d): %v",
			step, attempt+1, uc.retry.MaxRetries+1, lastErr)
	}

	uc.logger.Error("GetAvailability: %s failed after %d attempts: %v", step, uc.retry.MaxRetries+1, lastErr)
	return fmt.Errorf("%w: %s: %v", ErrUnavailableData, step, lastErr)
}

func buildHourSlots(view domain.DayView, band domain.RateBand) []HourSlot {
	slots := make([]HourSlot, 0, domain.HoursPerDay)
	for h := domain.MinHour; h <= domain.MaxHour; h++ {
		slots = append(slots, HourSlot{
			Hour:     h,
			Reserved: view.IsReserved(h),
			Passed:   view.IsPassed(h),
			Night:    band.IsNight(h),
			Price:    band.RateFor(h),
		})
	}
	return slots
}
