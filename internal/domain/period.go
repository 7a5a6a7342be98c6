package domain

import (
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// TimeRange время урока по часам
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// String формат отображения "08:20 - 09:00"
func (r TimeRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start, r.End)
}

// Period урок расписания: номер, время и периоды, которые он блокирует
type Period struct {
	Number int
	Time   TimeRange
	Blocks []int // Всегда содержит сам Number
}
