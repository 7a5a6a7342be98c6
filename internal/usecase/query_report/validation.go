package query_report

import (
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
)

// buildFilter переводит запрос отчета в фильтр хранилища
func buildFilter(req *Request) (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		Date: req.Date,
		From: req.From,
		To:   req.To,
	}

	if req.Day != "" {
		weekday, ok := domain.Weekdays[req.Day]
		if !ok {
			return domain.BookingFilter{}, fmt.Errorf("%w: %q", ErrUnknownWeekday, req.Day)
		}
		filter.Weekday = ptr.Ptr(weekday)
	}

	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		return domain.BookingFilter{}, fmt.Errorf("%w: from=%s is after to=%s", ErrInvalidRange, req.From, req.To)
	}

	return filter, nil
}
