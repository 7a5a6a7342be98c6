package query_report

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
