package get_available_periods

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	getAvailablePeriods "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_available_periods"
)

const (
	msgMissingDate        = "date is required"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgStorageUnavailable = "booking storage is temporarily unavailable, please retry"
)

type Handler struct {
	useCase GetAvailablePeriodsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailablePeriodsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /bookings/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /bookings/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailablePeriods.ErrInvalidInput):
			h.logger.Warn("GET /bookings/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailablePeriods.ErrStorageUnavailable):
			h.logger.Error("GET /bookings/availability - Storage unavailable: date=%s, error=%v", dateStr, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("GET /bookings/availability - Failed to get availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/availability - date=%s, periods=%d", dateStr, len(result.Periods))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
