package timetable

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// Timetable каталог периодов и таблица блокировок.
// Неизменяем после создания, безопасен для конкурентного чтения.
type Timetable struct {
	periods map[int]domain.Period
	blocks  map[int]map[int]struct{}
	order   []int
}

// New проверяет описание расписания и строит Timetable.
// Требования: уникальные положительные номера, корректное время (start < end),
// все блокируемые периоды существуют, каждый период блокирует себя,
// отношение блокировки симметрично.
func New(periods []domain.Period) (*Timetable, error) {
	if len(periods) == 0 {
		return nil, ErrEmpty
	}

	tt := &Timetable{
		periods: make(map[int]domain.Period, len(periods)),
		blocks:  make(map[int]map[int]struct{}, len(periods)),
		order:   make([]int, 0, len(periods)),
	}

	for _, p := range periods {
		if p.Number <= 0 {
			return nil, fmt.Errorf("%w: period number must be positive, got %d", ErrInvalidPeriod, p.Number)
		}
		if _, exists := tt.periods[p.Number]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePeriod, p.Number)
		}
		if err := validateTime(p); err != nil {
			return nil, err
		}

		set := make(map[int]struct{}, len(p.Blocks))
		for _, b := range p.Blocks {
			set[b] = struct{}{}
		}

		tt.periods[p.Number] = clonePeriod(p)
		tt.blocks[p.Number] = set
		tt.order = append(tt.order, p.Number)
	}
	sort.Ints(tt.order)

	for _, n := range tt.order {
		if _, ok := tt.blocks[n][n]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrNotReflexive, n)
		}
		for b := range tt.blocks[n] {
			if _, ok := tt.periods[b]; !ok {
				return nil, fmt.Errorf("%w: period %d blocks %d", ErrUnknownPeriod, n, b)
			}
			if _, ok := tt.blocks[b][n]; !ok {
				return nil, fmt.Errorf("%w: %d blocks %d, but %d does not block %d", ErrAsymmetric, n, b, b, n)
			}
		}
	}

	return tt, nil
}

func validateTime(p domain.Period) error {
	if err := p.Time.Start.Validate(); err != nil {
		return fmt.Errorf("%w: period %d start: %v", ErrInvalidPeriod, p.Number, err)
	}
	if err := p.Time.End.Validate(); err != nil {
		return fmt.Errorf("%w: period %d end: %v", ErrInvalidPeriod, p.Number, err)
	}
	if !p.Time.Start.IsBefore(p.Time.End) {
		return fmt.Errorf("%w: period %d starts at %s after end %s", ErrInvalidPeriod, p.Number, p.Time.Start, p.Time.End)
	}
	return nil
}

// ResolveTime возвращает время периода
func (t *Timetable) ResolveTime(period int) (domain.TimeRange, error) {
	p, ok := t.periods[period]
	if !ok {
		return domain.TimeRange{}, fmt.Errorf("%w: %d", ErrUnknownPeriod, period)
	}
	return p.Time, nil
}

// Conflicts true, если b входит в BlockSet(a).
// Проверка направленная: вызывающий передает период существующего бронирования первым.
func (t *Timetable) Conflicts(a, b int) (bool, error) {
	set, ok := t.blocks[a]
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownPeriod, a)
	}
	if _, ok := t.periods[b]; !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownPeriod, b)
	}
	_, blocked := set[b]
	return blocked, nil
}

// BlockSet периоды, которые становятся недоступны после бронирования period (по возрастанию)
func (t *Timetable) BlockSet(period int) ([]int, error) {
	set, ok := t.blocks[period]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPeriod, period)
	}
	out := make([]int, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sort.Ints(out)
	return out, nil
}

// Periods все периоды по возрастанию номера
func (t *Timetable) Periods() []domain.Period {
	out := make([]domain.Period, 0, len(t.order))
	for _, n := range t.order {
		p := clonePeriod(t.periods[n])
		p.Blocks, _ = t.BlockSet(n)
		out = append(out, p)
	}
	return out
}

func clonePeriod(p domain.Period) domain.Period {
	blocks := make([]int, len(p.Blocks))
	copy(blocks, p.Blocks)
	p.Blocks = blocks
	return p
}
