package get_available_periods

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Request модель запроса свободных уроков на дату
type Request struct {
	Date types.Date
}

// Response модель ответа: все уроки расписания с отметкой доступности
type Response struct {
	Date    types.Date
	IsPast  bool // На прошедшую дату бронировать нельзя, все уроки недоступны
	Periods []PeriodAvailability
}

// PeriodAvailability доступность одного урока
type PeriodAvailability struct {
	Period    int
	TimeRange domain.TimeRange
	Available bool
	BlockedBy *domain.Booking // Первое в порядке вставки бронирование, которое закрывает урок
}
