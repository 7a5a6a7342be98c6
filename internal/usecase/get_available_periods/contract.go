package get_available_periods

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDate(ctx context.Context, date types.Date) ([]*domain.Booking, error)
}

// Timetable расписание уроков и правила блокировки
type Timetable interface {
	Periods() []domain.Period
	Conflicts(a, b int) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
