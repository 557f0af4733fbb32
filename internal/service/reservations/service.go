package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	pitchRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/pitch"
	reservationRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	pitchRepo       PitchRepository
	notifier        Notifier
	metrics         Metrics
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований. metrics может быть nil
func NewService(
	reservationRepo ReservationRepository,
	pitchRepo PitchRepository,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		pitchRepo:       pitchRepo,
		notifier:        notifier,
		metrics:         metrics,
		now:             time.Now,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно автору заявки и тем, кто управляет полем.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actor.UserID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if reservation.RequesterID != actor.UserID {
		if err := s.checkManagerAccess(ctx, "GetByID", reservation.PitchID, actor); err != nil {
			return nil, err
		}
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает бронирования пользователя, опционально по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var status *domain.ReservationStatus
	if req.Status != nil {
		st, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	reservations, err := s.reservationRepo.ListByRequester(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetPitchReservations получает бронирования поля с фильтрацией по периоду и статусу.
// Доступно только тем, кто управляет полем.
func (s *Service) GetPitchReservations(ctx context.Context, req *models.GetPitchReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetPitchReservations: fetching reservations for pitch=%d, user=%d", req.PitchID, req.Actor.UserID)

	if err := s.checkManagerAccess(ctx, "GetPitchReservations", req.PitchID, req.Actor); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPitchReservations: invalid filter for pitch=%d: %v", req.PitchID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.ListByPitch(ctx, filter)
	if err != nil {
		s.logger.Error("GetPitchReservations: repository error for pitch=%d: %v", req.PitchID, err)
		return nil, fmt.Errorf("%w: GetPitchReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPitchReservations: fetched %d reservations for pitch=%d", len(reservations), req.PitchID)
	return models.FromDomainReservationList(reservations), nil
}

// Validate подтверждает заявку. Повторное подтверждение ничего не меняет
func (s *Service) Validate(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	return s.transition(ctx, "Validate", id, actor, domain.StatusValidated)
}

// Refuse отклоняет заявку и освобождает ее часы. Повторный отказ ничего не меняет
func (s *Service) Refuse(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	return s.transition(ctx, "Refuse", id, actor, domain.StatusRefused)
}

// transition переводит заявку из pending в target условным обновлением.
// Уведомление отправляется только при фактической смене статуса.
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	actor domain.Actor,
	target domain.ReservationStatus,
) (*models.ReservationResponse, error) {
	s.logger.Info("%s: reservation id=%d by user=%d", op, id, actor.UserID)

	reservation, err := s.getReservation(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, op, reservation.PitchID, actor); err != nil {
		return nil, err
	}

	// pending_payment подтверждается только оплатой, решение менеджера к нему не применяется
	if reservation.Status == domain.StatusPendingPayment || !reservation.Status.CanTransitionTo(target) {
		return s.settled(op, reservation, target)
	}

	changed, err := s.reservationRepo.UpdateStatusIfCurrent(ctx, id, reservation.Status, target)
	if err != nil {
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !changed {
		// Статус сменился параллельно: перечитываем
		reservation, err = s.getReservation(ctx, op, id)
		if err != nil {
			return nil, err
		}
		return s.settled(op, reservation, target)
	}

	previous := reservation.Status
	reservation.Status = target
	reservation.UpdatedAt = s.now()

	if s.metrics != nil {
		s.metrics.IncTransition(string(target))
	}
	s.notifier.Notify(ctx, domain.NewReservationStatusChanged(reservation, previous, reservation.UpdatedAt))

	s.logger.Info("%s: reservation id=%d moved %s -> %s", op, id, previous, target)
	return models.FromDomainReservation(reservation), nil
}

// settled обрабатывает заявку, которую менеджер уже не может перевести в target
func (s *Service) settled(op string, reservation *domain.Reservation, target domain.ReservationStatus) (*models.ReservationResponse, error) {
	if reservation.Status == target {
		s.logger.Info("%s: reservation id=%d already %s, nothing to do", op, reservation.ID, target)
		return models.FromDomainReservation(reservation), nil
	}

	if reservation.Status.IsTerminal() {
		s.logger.Warn("%s: reservation id=%d is already %s, cannot move to %s", op, reservation.ID, reservation.Status, target)
	} else {
		s.logger.Warn("%s: reservation id=%d is %s and awaits payment, cannot move to %s", op, reservation.ID, reservation.Status, target)
	}
	return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, target)
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// checkManagerAccess проверяет, что пользователь управляет полем
func (s *Service) checkManagerAccess(ctx context.Context, op string, pitchID int64, actor domain.Actor) error {
	pitch, err := s.pitchRepo.GetByID(ctx, pitchID)
	if err != nil {
		if errors.Is(err, pitchRepo.ErrPitchNotFound) {
			s.logger.Warn("%s: pitch id=%d not found", op, pitchID)
			return ErrPitchNotFound
		}
		s.logger.Error("%s: failed to get pitch id=%d: %v", op, pitchID, err)
		return fmt.Errorf("%w: %s - failed to get pitch: %v", ErrInternal, op, err)
	}

	if !actor.CanManage(pitch) {
		s.logger.Warn("%s: access denied for user=%d (role=%s) to pitch id=%d", op, actor.UserID, actor.Role, pitchID)
		return ErrAccessDenied
	}

	return nil
}
