package timetable

import "github.com/m04kA/SMC-SlotBookingService/internal/domain"

// defaultPeriods школьное расписание по умолчанию.
// Соседние уроки внутри блока (до большой перемены) блокируют друг друга.
var defaultPeriods = []domain.Period{
	{Number: 1, Time: domain.TimeRange{Start: "08:20", End: "09:00"}, Blocks: []int{1, 2}},
	{Number: 2, Time: domain.TimeRange{Start: "09:00", End: "09:40"}, Blocks: []int{1, 2, 3}},
	{Number: 3, Time: domain.TimeRange{Start: "09:40", End: "10:20"}, Blocks: []int{2, 3}},
	{Number: 4, Time: domain.TimeRange{Start: "10:30", End: "11:10"}, Blocks: []int{4, 5}},
	{Number: 5, Time: domain.TimeRange{Start: "11:10", End: "11:50"}, Blocks: []int{4, 5, 6}},
	{Number: 6, Time: domain.TimeRange{Start: "11:50", End: "12:30"}, Blocks: []int{5, 6}},
	{Number: 7, Time: domain.TimeRange{Start: "13:00", End: "13:40"}, Blocks: []int{7, 8}},
	{Number: 8, Time: domain.TimeRange{Start: "13:40", End: "14:15"}, Blocks: []int{7, 8, 9}},
	{Number: 9, Time: domain.TimeRange{Start: "14:15", End: "14:50"}, Blocks: []int{8, 9}},
}

// DefaultPeriods копия расписания по умолчанию
func DefaultPeriods() []domain.Period {
	out := make([]domain.Period, len(defaultPeriods))
	for i, p := range defaultPeriods {
		out[i] = clonePeriod(p)
	}
	return out
}

// Default расписание по умолчанию. Таблица заведомо корректна.
func Default() *Timetable {
	tt, err := New(DefaultPeriods())
	if err != nil {
		panic(err)
	}
	return tt
}
