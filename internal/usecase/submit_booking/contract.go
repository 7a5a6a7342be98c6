package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDate(ctx context.Context, date types.Date) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
}

// Timetable расписание уроков и правила блокировки
type Timetable interface {
	ResolveTime(period int) (domain.TimeRange, error)
	Conflicts(a, b int) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// DateLocker взаимное исключение заявок на одну дату между процессами
type DateLocker interface {
	Lock(ctx context.Context, date types.Date) (func(), error)
}

// OutcomeRecorder счетчик исходов обработки заявок
type OutcomeRecorder interface {
	IncBookingOutcome(outcome string)
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
