package query_report

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request фильтр отчета, все поля необязательны и объединяются через AND
type Request struct {
	Date *types.Date
	Day  string // Sunday..Saturday, регистр важен
	From *types.Date
	To   *types.Date
}

// Response бронирования в порядке хранения
type Response struct {
	Bookings []*domain.Booking
}
