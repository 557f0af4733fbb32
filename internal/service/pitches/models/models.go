package models

import "github.com/m04kA/SMC-PitchBookingService/internal/domain"

// PitchResponse данные поля с тарифами
type PitchResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	SizeCategory string `json:"sizeCategory"`
	DayRate      int64  `json:"dayRate"`
	NightRate    int64  `json:"nightRate"`
	NightStart   string `json:"nightStart"` // "18:00"
	NightEnd     string `json:"nightEnd"`   // "06:00"
}

// QuoteRequest запрос расчета стоимости
type QuoteRequest struct {
	PitchID int64 `json:"pitchId"`
	Hours   []int `json:"hours"`
}

// QuoteLine стоимость одного часа
type QuoteLine struct {
	Hour  int   `json:"hour"`
	Night bool  `json:"night"`
	Price int64 `json:"price"`
}

// QuoteResponse итоговая стоимость выбранных часов
type QuoteResponse struct {
	PitchID int64       `json:"pitchId"`
	Lines   []QuoteLine `json:"lines"`
	Total   int64       `json:"total"`
}

// FromDomainPitch конвертирует domain модель в DTO
func FromDomainPitch(p *domain.Pitch) *PitchResponse {
	if p == nil {
		return nil
	}

	return &PitchResponse{
		ID:           p.ID,
		Name:         p.Name,
		Location:     p.Location,
		SizeCategory: p.SizeCategory,
		DayRate:      p.DayRate,
		NightRate:    p.NightRate,
		NightStart:   p.NightStart.String(),
		NightEnd:     p.NightEnd.String(),
	}
}
