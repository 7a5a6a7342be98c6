package get_available_periods

import (
	"context"

	getAvailablePeriods "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_periods"
)

type GetAvailablePeriodsUseCase interface {
	Execute(ctx context.Context, req *getAvailablePeriods.Request) (*getAvailablePeriods.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
