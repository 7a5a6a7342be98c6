package submit_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// validateDate дата обязательна; проверяется до всех остальных полей
func validateDate(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// validateFields валидирует текстовые поля заявки.
// Номер урока здесь не проверяется: его знает только расписание.
func validateFields(req *Request) error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"teacher", req.TeacherName, domain.MaxTeacherNameLength},
		{"className", req.ClassName, domain.MaxClassNameLength},
		{"mobile", req.Contact, domain.MaxContactLength},
		{"subject", req.Subject, domain.MaxSubjectLength},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, f.name, f.max)
		}
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшней в часовом поясе loc.
// Сравниваются только даты: на сегодня бронировать можно в любое время суток.
func isDateInPast(date types.Date, now time.Time, loc *time.Location) bool {
	today := types.NewDate(now.In(loc))
	return date.Before(today)
}

// findConflict ищет первое бронирование, которое блокирует урок period.
// Проверка односторонняя: урок кандидата против набора блокировок существующего бронирования.
func findConflict(tt Timetable, existing []*domain.Booking, period int) (*domain.Booking, error) {
	for _, b := range existing {
		blocked, err := tt.Conflicts(b.Period, period)
		if err != nil {
			return nil, fmt.Errorf("booking id=%s period=%d: %w", b.ID, b.Period, err)
		}
		if blocked {
			return b, nil
		}
	}
	return nil, nil
}
