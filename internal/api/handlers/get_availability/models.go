package get_availability

import (
	"time"

	"github.com/m04kA/SMC-PitchBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-PitchBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PitchID       int64      `json:"pitchId"`
	Date          string     `json:"date"`
	PitchFound    bool       `json:"pitchFound"`
	ReservedHours []int      `json:"reservedHours"`
	Hours         []HourSlot `json:"hours"`
}

// HourSlot состояние часа для выбора слотов на клиенте
type HourSlot struct {
	Hour       int   `json:"hour"`
	Reserved   bool  `json:"reserved"`
	Passed     bool  `json:"passed"`
	Selectable bool  `json:"selectable"`
	Night      bool  `json:"night"`
	Price      int64 `json:"price"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(pitchID int64, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		PitchID: pitchID,
		Date:    date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	hours := make([]HourSlot, len(resp.Hours))
	for i, slot := range resp.Hours {
		hours[i] = HourSlot{
			Hour:       slot.Hour,
			Reserved:   slot.Reserved,
			Passed:     slot.Passed,
			Selectable: !slot.Reserved && !slot.Passed,
			Night:      slot.Night,
			Price:      slot.Price,
		}
	}

	return &AvailabilityResponse{
		PitchID:       resp.PitchID,
		Date:          resp.Date.Format(domain.DateFormat),
		PitchFound:    resp.PitchFound,
		ReservedHours: resp.ReservedHours,
		Hours:         hours,
	}
}
