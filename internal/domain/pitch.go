package domain

import (
	"time"

	"github.com/m04kA/SMC-PitchBookingService/pkg/types"
)

// Pitch represents a football pitch that can be reserved by the hour
type Pitch struct {
	ID           int64
	OwnerID      int64
	Name         string
	Location     string
	SizeCategory string

	// Тарифы в минимальных единицах валюты за час
	DayRate    int64
	NightRate  int64
	NightStart types.TimeString // начало ночного тарифа, например "18:00"
	NightEnd   types.TimeString // конец ночного тарифа, например "06:00"

	ManagerIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanManage returns true for the owner and for assigned managers
func (p *Pitch) CanManage(userID int64) bool {
	if p.OwnerID == userID {
		return true
	}
	for _, id := range p.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// RateBand builds the pricing band of the pitch
func (p *Pitch) RateBand() (RateBand, error) {
	return NewRateBand(p.DayRate, p.NightRate, p.NightStart, p.NightEnd)
}
