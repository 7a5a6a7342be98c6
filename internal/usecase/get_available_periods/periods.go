package get_available_periods

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// calculateAvailability отмечает для каждого урока, свободен ли он на дату.
// Урок занят, если его закрывает набор блокировок хотя бы одного бронирования -
// та же проверка, что выполняется при подаче заявки.
func calculateAvailability(tt Timetable, bookings []*domain.Booking) ([]PeriodAvailability, error) {
	periods := tt.Periods()
	result := make([]PeriodAvailability, len(periods))

	for i, p := range periods {
		result[i] = PeriodAvailability{
			Period:    p.Number,
			TimeRange: p.Time,
			Available: true,
		}

		for _, b := range bookings {
			blocked, err := tt.Conflicts(b.Period, p.Number)
			if err != nil {
				return nil, fmt.Errorf("booking id=%s period=%d: %w", b.ID, b.Period, err)
			}
			if blocked {
				result[i].Available = false
				result[i].BlockedBy = b
				break
			}
		}
	}

	return result, nil
}

// closeAll все уроки недоступны (прошедшая дата)
func closeAll(periods []PeriodAvailability) {
	for i := range periods {
		periods[i].Available = false
	}
}

// isDateInPast проверяет, что дата раньше сегодняшней в часовом поясе loc
func isDateInPast(date types.Date, now time.Time, loc *time.Location) bool {
	return date.Before(types.NewDate(now.In(loc)))
}
