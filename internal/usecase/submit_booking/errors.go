package submit_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrPastDate возвращается, когда дата бронирования раньше сегодняшней
	ErrPastDate = errors.New("submit_booking: previous dates are not allowed for booking")

	// ErrUnknownPeriod возвращается, когда номера урока нет в расписании
	ErrUnknownPeriod = errors.New("submit_booking: unknown period")

	// ErrSlotConflict возвращается, когда урок заблокирован существующим бронированием
	ErrSlotConflict = errors.New("submit_booking: slot already booked")

	// ErrStorageUnavailable возвращается при недоступности хранилища (в том числе по таймауту)
	ErrStorageUnavailable = errors.New("submit_booking: storage unavailable")

	// ErrDuplicateID возвращается при совпадении сгенерированного ID с существующим
	ErrDuplicateID = errors.New("submit_booking: duplicate booking id")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// SlotConflictError отказ из-за конфликта с конкретным бронированием.
// Holder - бронирование, которое блокирует запрошенный урок.
type SlotConflictError struct {
	Holder domain.Booking
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("Slot already booked by:\nTeacher: %s\nClass: %s\nMobile: %s\nPeriod: %d (%s)\nSubject: %s",
		e.Holder.TeacherName,
		e.Holder.ClassName,
		e.Holder.Contact,
		e.Holder.Period,
		e.Holder.TimeRange,
		e.Holder.Subject,
	)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}
