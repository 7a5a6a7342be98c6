package export_report

import (
	"io"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

type WorkbookWriter interface {
	Write(w io.Writer, bookings []*domain.Booking) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
