package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeStringLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString время суток в формате "HH:MM" (без даты и часового пояса)
type TimeString string

// NewTimeString формирует TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString парсит и нормализует строку формата "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", ErrInvalidTimeString
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero true, если время не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет формат
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeStringLayout, string(ts)); err != nil {
		return ErrInvalidTimeString
	}
	return nil
}

// Minutes возвращает количество минут от начала суток
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return 0, ErrInvalidTimeString
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	total := current + minutes
	if total < 0 || total >= 24*60 {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore сравнивает два времени; некорректные значения считаются равными
func (ts TimeString) IsBefore(other TimeString) bool {
	a, errA := ts.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter сравнивает два времени; некорректные значения считаются равными
func (ts TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(ts)
}

// Scan реализует sql.Scanner. PostgreSQL отдаёт TIME как "HH:MM:SS"
func (ts *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}

	if len(raw) >= 5 {
		raw = raw[:5]
	}
	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Value реализует driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return string(ts), nil
}
