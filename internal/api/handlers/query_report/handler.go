package query_report

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	queryReport "github.com/m04kA/SMC-SlotBookingService/internal/usecase/query_report"
)

const (
	msgInvalidDate        = "invalid date parameter, expected YYYY-MM-DD"
	msgUnknownWeekday     = "unknown day, expected one of Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday"
	msgInvalidRange       = "'from' must not be after 'to'"
	msgStorageUnavailable = "booking storage is temporarily unavailable, please retry"
)

type Handler struct {
	useCase QueryReportUseCase
	logger  Logger
}

func NewHandler(useCase QueryReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/report
// Query params: date, day, from, to (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, ok := Query(w, r, h.useCase, h.logger)
	if !ok {
		return
	}

	h.logger.Info("GET /report - Returning %d bookings", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// Query разбирает параметры отчета и выполняет запрос.
// При ошибке ответ уже записан в w и возвращается false.
func Query(w http.ResponseWriter, r *http.Request, useCase QueryReportUseCase, logger Logger) (*queryReport.Response, bool) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		logger.Warn("%s %s - Invalid parameters: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return nil, false
	}

	result, err := useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, queryReport.ErrUnknownWeekday):
			logger.Warn("%s %s - Unknown weekday: %q", r.Method, r.URL.Path, useCaseReq.Day)
			handlers.RespondBadRequest(w, msgUnknownWeekday)

		case errors.Is(err, queryReport.ErrInvalidRange):
			logger.Warn("%s %s - Invalid range: %v", r.Method, r.URL.Path, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, queryReport.ErrStorageUnavailable):
			logger.Error("%s %s - Storage unavailable: %v", r.Method, r.URL.Path, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			logger.Error("%s %s - Failed to query report: %v", r.Method, r.URL.Path, err)
			handlers.RespondInternalError(w)
		}
		return nil, false
	}

	return result, true
}
