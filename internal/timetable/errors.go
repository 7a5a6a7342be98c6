package timetable

import "errors"

var (
	// ErrUnknownPeriod возвращается для номера периода вне расписания
	ErrUnknownPeriod = errors.New("timetable: unknown period")

	// ErrInvalidPeriod возвращается при некорректном описании периода
	ErrInvalidPeriod = errors.New("timetable: invalid period definition")

	// ErrDuplicatePeriod возвращается, если номер периода встречается дважды
	ErrDuplicatePeriod = errors.New("timetable: duplicate period")

	// ErrNotReflexive возвращается, если период не блокирует сам себя
	ErrNotReflexive = errors.New("timetable: period does not block itself")

	// ErrAsymmetric возвращается, если A блокирует B, но B не блокирует A
	ErrAsymmetric = errors.New("timetable: blocking rules are not symmetric")

	// ErrEmpty возвращается для пустого расписания
	ErrEmpty = errors.New("timetable: no periods defined")
)
