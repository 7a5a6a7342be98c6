package get_periods

import "github.com/m04kA/SMC-SlotBookingService/internal/domain"

// PeriodResponse урок расписания
type PeriodResponse struct {
	Period int    `json:"period"`
	Time   string `json:"time"` // "08:20 - 09:00"
	Start  string `json:"start"`
	End    string `json:"end"`
	Blocks []int  `json:"blocks"`
}

// PeriodsResponse HTTP response model
type PeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// FromDomain конвертирует расписание в HTTP response
func FromDomain(periods []domain.Period) *PeriodsResponse {
	resp := &PeriodsResponse{Periods: make([]PeriodResponse, 0, len(periods))}
	for _, p := range periods {
		resp.Periods = append(resp.Periods, PeriodResponse{
			Period: p.Number,
			Time:   p.Time.String(),
			Start:  p.Time.Start.String(),
			End:    p.Time.End.String(),
			Blocks: p.Blocks,
		})
	}
	return resp
}
