package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout формат календарной даты ISO 8601
const DateLayout = "2006-01-02"

// ErrInvalidDate возвращается, когда строка не является датой формата YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// Date календарная дата без времени суток.
// Хранится как полночь UTC, в БД пишется строкой YYYY-MM-DD,
// поэтому одинаково работает с DATE в PostgreSQL и TEXT в SQLite.
type Date struct {
	time.Time
}

// NewDate обрезает время суток, сохраняя календарный день в часовом поясе t
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate парсит строку формата YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// MustParseDate как ParseDate, но паникует при ошибке (для тестов и констант)
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Before true, если d строго раньше other (сравниваются только даты)
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After true, если d строго позже other
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal true, если даты совпадают
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// MarshalJSON сериализует дату как "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON разбирает "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(data []byte) error {
	parsed, err := ParseDate(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}
