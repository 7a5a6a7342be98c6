package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модель заявки на бронирование урока
type Request struct {
	Date        types.Date // Дата урока (без времени)
	TeacherName string     // Кто бронирует
	ClassName   string     // Класс
	Contact     string     // Телефон или другой контакт
	Period      int        // Номер урока
	Subject     string     // Предмет
}

// Response модель ответа с сохраненным бронированием
type Response struct {
	ID          string
	BookingDate types.Date
	TeacherName string
	ClassName   string
	Contact     string
	Period      int
	TimeRange   domain.TimeRange // Время урока из расписания
	Subject     string
	CreatedAt   time.Time
}
