package quote_pitch

import "github.com/m04kA/SMC-PitchBookingService/internal/service/pitches/models"

// QuoteRequest HTTP request model
type QuoteRequest struct {
	Hours []int `json:"hours"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *QuoteRequest) ToServiceRequest(pitchID int64) *models.QuoteRequest {
	return &models.QuoteRequest{
		PitchID: pitchID,
		Hours:   r.Hours,
	}
}
