package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Booking выданный учителю период в конкретный день.
// Создается один раз при успешной проверке конфликтов, не изменяется и не удаляется.
type Booking struct {
	ID          string     // UUID, назначается при создании
	BookingDate types.Date // Дата урока - ключ разбиения при проверке конфликтов
	TeacherName string
	ClassName   string
	Contact     string // Телефон или другой контакт учителя
	Period      int
	TimeRange   TimeRange // Время периода на момент бронирования
	Subject     string
	CreatedAt   time.Time // Момент допуска бронирования (UTC)
}

// BookingFilter фильтр отчета. Все поля опциональны и объединяются через AND.
// Пустой фильтр возвращает все бронирования.
type BookingFilter struct {
	Date    *types.Date   // Точная дата
	Weekday *time.Weekday // День недели даты (0 = воскресенье), вычисляется из даты
	From    *types.Date   // Начало диапазона (включительно)
	To      *types.Date   // Конец диапазона (включительно)
}

// IsEmpty true, если не задано ни одного условия
func (f BookingFilter) IsEmpty() bool {
	return f.Date == nil && f.Weekday == nil && f.From == nil && f.To == nil
}
