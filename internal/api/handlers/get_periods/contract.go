package get_periods

import "github.com/m04kA/SMC-SlotBookingService/internal/domain"

type PeriodCatalog interface {
	Periods() []domain.Period
}

type Logger interface {
	Info(format string, v ...interface{})
}
