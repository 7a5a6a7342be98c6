package query_report

import (
	"context"

	queryReport "github.com/m04kA/SMC-SlotBookingService/internal/usecase/query_report"
)

type QueryReportUseCase interface {
	Execute(ctx context.Context, req *queryReport.Request) (*queryReport.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
