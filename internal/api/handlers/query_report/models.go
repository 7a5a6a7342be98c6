package query_report

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	queryReport "github.com/m04kA/SMC-SlotBookingService/internal/usecase/query_report"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// BookingResponse строка отчета
type BookingResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Teacher   string `json:"teacher"`
	ClassName string `json:"className"`
	Mobile    string `json:"mobile"`
	Period    int    `json:"period"`
	Time      string `json:"time"`
	Subject   string `json:"subject"`
	CreatedAt string `json:"createdAt"`
}

// ReportResponse HTTP response model
type ReportResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

// ToUseCaseRequest разбирает query параметры date, day, from, to.
// Пустые параметры не участвуют в фильтре.
func ToUseCaseRequest(q url.Values) (*queryReport.Request, error) {
	req := &queryReport.Request{
		Day: strings.TrimSpace(q.Get("day")),
	}

	var err error
	if req.Date, err = parseOptionalDate(q, "date"); err != nil {
		return nil, err
	}
	if req.From, err = parseOptionalDate(q, "from"); err != nil {
		return nil, err
	}
	if req.To, err = parseOptionalDate(q, "to"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseOptionalDate(q url.Values, key string) (*types.Date, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &d, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *queryReport.Response) *ReportResponse {
	out := &ReportResponse{
		Bookings: make([]BookingResponse, 0, len(resp.Bookings)),
		Count:    len(resp.Bookings),
	}
	for _, b := range resp.Bookings {
		out.Bookings = append(out.Bookings, fromDomain(b))
	}
	return out
}

func fromDomain(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Date:      b.BookingDate.String(),
		Teacher:   b.TeacherName,
		ClassName: b.ClassName,
		Mobile:    b.Contact,
		Period:    b.Period,
		Time:      b.TimeRange.String(),
		Subject:   b.Subject,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
