package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	submitBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date, expected YYYY-MM-DD"
	msgInvalidInput       = "teacher, className, mobile and subject are required"
	msgPastDate           = "Previous dates are not allowed for booking."
	msgUnknownPeriod      = "unknown period"
	msgSlotConflict       = "slot already booked"
	msgStorageUnavailable = "booking storage is temporarily unavailable, please retry"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *submitBooking.SlotConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /bookings - Slot conflict: date=%s, period=%d, holder_id=%s",
				req.Date, req.Period, conflict.Holder.ID)
			handlers.RespondJSON(w, http.StatusConflict, FromConflict(conflict))

		case errors.Is(err, submitBooking.ErrPastDate):
			h.logger.Warn("POST /bookings - Past date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, submitBooking.ErrUnknownPeriod):
			h.logger.Warn("POST /bookings - Unknown period: period=%d", req.Period)
			handlers.RespondBadRequest(w, msgUnknownPeriod)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitBooking.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: date=%s, error=%v", req.Date, err)
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: date=%s, period=%d, error=%v",
				req.Date, req.Period, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, date=%s, period=%d",
		result.ID, req.Date, req.Period)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
