package pitches

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	pitchRepo "github.com/m04kA/SMC-PitchBookingService/internal/infra/storage/pitch"
	"github.com/m04kA/SMC-PitchBookingService/internal/service/pitches/models"
)

// Service сервис для чтения полей и расчета стоимости
type Service struct {
	pitchRepo PitchRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса полей
func NewService(pitchRepo PitchRepository, logger Logger) *Service {
	return &Service{
		pitchRepo: pitchRepo,
		logger:    logger,
	}
}

// GetByID получает поле по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PitchResponse, error) {
	pitch, err := s.getPitch(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPitch(pitch), nil
}

// Quote считает стоимость часов по дневному и ночному тарифам поля.
// Часы не обязаны быть непрерывными, порядок не важен.
func (s *Service) Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	s.logger.Info("Quote: pitch=%d, hours=%v", req.PitchID, req.Hours)

	for _, h := range req.Hours {
		if !domain.IsValidHour(h) {
			return nil, fmt.Errorf("%w: hour %d out of range", ErrInvalidInput, h)
		}
	}

	pitch, err := s.getPitch(ctx, "Quote", req.PitchID)
	if err != nil {
		return nil, err
	}

	band, err := pitch.RateBand()
	if err != nil {
		s.logger.Error("Quote: pitch id=%d has invalid rates: %v", req.PitchID, err)
		return nil, fmt.Errorf("%w: Quote - invalid rates: %v", ErrInternal, err)
	}

	hours := make([]int, len(req.Hours))
	copy(hours, req.Hours)
	sort.Ints(hours)

	lines := make([]models.QuoteLine, 0, len(hours))
	for _, h := range hours {
		lines = append(lines, models.QuoteLine{Hour: h, Night: band.IsNight(h), Price: band.RateFor(h)})
	}

	return &models.QuoteResponse{
		PitchID: req.PitchID,
		Lines:   lines,
		Total:   domain.ComputeTotal(hours, band),
	}, nil
}

func (s *Service) getPitch(ctx context.Context, op string, id int64) (*domain.Pitch, error) {
	pitch, err := s.pitchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pitchRepo.ErrPitchNotFound) {
			s.logger.Warn("%s: pitch id=%d not found", op, id)
			return nil, ErrPitchNotFound
		}
		s.logger.Error("%s: repository error for pitch id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return pitch, nil
}
