package get_available_periods

import (
	getAvailablePeriods "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_periods"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date    string               `json:"date"`
	IsPast  bool                 `json:"isPast"`
	Periods []PeriodAvailability `json:"periods"`
}

// PeriodAvailability доступность урока; bookedBy заполнен, если урок закрыт бронированием
type PeriodAvailability struct {
	Period    int      `json:"period"`
	Time      string   `json:"time"`
	Available bool     `json:"available"`
	BookedBy  *Blocker `json:"bookedBy,omitempty"`
}

// Blocker кто закрыл урок. Телефон не раскрывается.
type Blocker struct {
	Teacher string `json:"teacher"`
	Class   string `json:"className"`
	Period  int    `json:"period"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailablePeriods.Response) *AvailabilityResponse {
	periods := make([]PeriodAvailability, len(resp.Periods))
	for i, p := range resp.Periods {
		periods[i] = PeriodAvailability{
			Period:    p.Period,
			Time:      p.TimeRange.String(),
			Available: p.Available,
		}
		if p.BlockedBy != nil {
			periods[i].BookedBy = &Blocker{
				Teacher: p.BlockedBy.TeacherName,
				Class:   p.BlockedBy.ClassName,
				Period:  p.BlockedBy.Period,
			}
		}
	}

	return &AvailabilityResponse{
		Date:    resp.Date.String(),
		IsPast:  resp.IsPast,
		Periods: periods,
	}
}

// ToUseCaseRequest создает запрос use case из query параметра date
func ToUseCaseRequest(dateStr string) (*getAvailablePeriods.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailablePeriods.Request{Date: date}, nil
}
