package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	submitBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// SubmitBookingRequest HTTP request model.
// Текстовые поля проверяет use case: прошедшая дата должна отклоняться раньше них.
type SubmitBookingRequest struct {
	Date      string `json:"date" validate:"required"` // "2025-06-10"
	Teacher   string `json:"teacher"`
	ClassName string `json:"className"`
	Mobile    string `json:"mobile"`
	Period    int    `json:"period"`
	Subject   string `json:"subject"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Teacher   string `json:"teacher"`
	ClassName string `json:"className"`
	Mobile    string `json:"mobile"`
	Period    int    `json:"period"`
	Time      string `json:"time"` // "08:20 - 09:00"
	Subject   string `json:"subject"`
	CreatedAt string `json:"createdAt"`
}

// HolderResponse кто занимает слот
type HolderResponse struct {
	Teacher   string `json:"teacher"`
	ClassName string `json:"className"`
	Mobile    string `json:"mobile"`
	Period    int    `json:"period"`
	Time      string `json:"time"`
	Subject   string `json:"subject"`
}

// ConflictResponse ответ 409
type ConflictResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Holder  HolderResponse `json:"holder"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest() (*submitBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &submitBooking.Request{
		Date:        date,
		TeacherName: r.Teacher,
		ClassName:   r.ClassName,
		Contact:     r.Mobile,
		Period:      r.Period,
		Subject:     r.Subject,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		Date:      resp.BookingDate.String(),
		Teacher:   resp.TeacherName,
		ClassName: resp.ClassName,
		Mobile:    resp.Contact,
		Period:    resp.Period,
		Time:      resp.TimeRange.String(),
		Subject:   resp.Subject,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}

// FromConflict конвертирует отказ по конфликту в HTTP response
func FromConflict(conflict *submitBooking.SlotConflictError) *ConflictResponse {
	return &ConflictResponse{
		Error:   msgSlotConflict,
		Message: conflict.Error(),
		Holder:  fromHolder(conflict.Holder),
	}
}

func fromHolder(b domain.Booking) HolderResponse {
	return HolderResponse{
		Teacher:   b.TeacherName,
		ClassName: b.ClassName,
		Mobile:    b.Contact,
		Period:    b.Period,
		Time:      b.TimeRange.String(),
		Subject:   b.Subject,
	}
}
