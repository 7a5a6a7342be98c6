package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBookingService/internal/timetable"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// UseCase use case приема заявки на урок
type UseCase struct {
	bookingRepo  BookingRepository
	timetable    Timetable
	txManager    TransactionManager
	locker       DateLocker
	recorder     OutcomeRecorder
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс, в котором определяется "сегодня" (nil = UTC).
// locker и recorder могут быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	tt Timetable,
	txManager TransactionManager,
	locker DateLocker,
	recorder OutcomeRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if locker == nil {
		locker = noLocker{}
	}
	if recorder == nil {
		recorder = noRecorder{}
	}
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		timetable:    tt,
		txManager:    txManager,
		locker:       locker,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case приема заявки.
// Проверка конфликтов и вставка идут в одной сериализуемой транзакции,
// поэтому две конфликтующие заявки на одну дату не могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: date=%s, period=%d, teacher=%q, class=%q",
		req.Date, req.Period, req.TeacherName, req.ClassName)

	// 1. Дата не в прошлом. Проверяется первой: прошедшая дата отклоняется
	// независимо от остальных полей заявки.
	if err := validateDate(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, uc.reject(domain.OutcomeInvalidInput, err)
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now, uc.location) {
		uc.logger.Warn("SubmitBooking: date=%s is in the past", req.Date)
		return nil, uc.reject(domain.OutcomePastDate, ErrPastDate)
	}

	// 2. Валидация полей заявки
	if err := validateFields(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, uc.reject(domain.OutcomeInvalidInput, err)
	}

	// 3. Время урока по расписанию
	timeRange, err := uc.timetable.ResolveTime(req.Period)
	if err != nil {
		if errors.Is(err, timetable.ErrUnknownPeriod) {
			uc.logger.Warn("SubmitBooking: unknown period=%d", req.Period)
			return nil, uc.reject(domain.OutcomeUnknownPeriod, fmt.Errorf("%w: %d", ErrUnknownPeriod, req.Period))
		}
		uc.logger.Error("SubmitBooking: failed to resolve period=%d: %v", req.Period, err)
		return nil, uc.reject(domain.OutcomeInternalError, fmt.Errorf("%w: resolve period: %v", ErrInternal, err))
	}

	// 4. Блокировка даты между процессами (если включена)
	unlock, err := uc.locker.Lock(ctx, req.Date)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to lock date=%s: %v", req.Date, err)
		return nil, uc.reject(domain.OutcomeStorageUnavailable, fmt.Errorf("%w: lock date: %v", ErrStorageUnavailable, err))
	}
	defer unlock()

	var result *domain.Booking

	// 5. Проверка конфликтов и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Все бронирования на дату (на PostgreSQL с блокировкой FOR UPDATE)
		existing, err := uc.bookingRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to get bookings for date=%s: %v", req.Date, err)
			// %w для исходной ошибки: serialization failure должен дойти до менеджера транзакций
			return fmt.Errorf("%w: get bookings: %w", ErrStorageUnavailable, err)
		}

		// 5.2. Первое бронирование, которое блокирует урок кандидата
		holder, err := findConflict(uc.timetable, existing, req.Period)
		if err != nil {
			uc.logger.Error("SubmitBooking: stored booking has unknown period: %v", err)
			return fmt.Errorf("%w: check conflicts: %v", ErrInternal, err)
		}
		if holder != nil {
			uc.logger.Warn("SubmitBooking: period=%d on date=%s blocked by booking id=%s (period=%d)",
				req.Period, req.Date, holder.ID, holder.Period)
			return &SlotConflictError{Holder: *holder}
		}

		// 5.3. Сохраняем бронирование
		booking := &domain.Booking{
			ID:          uuid.NewString(),
			BookingDate: req.Date,
			TeacherName: req.TeacherName,
			ClassName:   req.ClassName,
			Contact:     req.Contact,
			Period:      req.Period,
			TimeRange:   timeRange,
			Subject:     req.Subject,
			// PostgreSQL хранит микросекунды
			CreatedAt: now.UTC().Truncate(time.Microsecond),
		}

		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateID) {
				uc.logger.Error("SubmitBooking: generated id=%s already exists", booking.ID)
				return fmt.Errorf("%w: %v", ErrDuplicateID, err)
			}
			uc.logger.Error("SubmitBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: create booking: %w", ErrStorageUnavailable, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		return nil, uc.fail(err)
	}

	uc.recorder.IncBookingOutcome(domain.OutcomeAdmitted)
	uc.logger.Info("SubmitBooking: successfully created booking id=%s (date=%s, period=%d)",
		result.ID, result.BookingDate, result.Period)

	return &Response{
		ID:          result.ID,
		BookingDate: result.BookingDate,
		TeacherName: result.TeacherName,
		ClassName:   result.ClassName,
		Contact:     result.Contact,
		Period:      result.Period,
		TimeRange:   result.TimeRange,
		Subject:     result.Subject,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// fail приводит ошибку транзакции к таксономии use case и считает исход.
// Ошибки начала/фиксации транзакции и исчерпанные повторы - недоступность хранилища.
func (uc *UseCase) fail(err error) error {
	switch {
	case errors.Is(err, ErrSlotConflict):
		return uc.reject(domain.OutcomeSlotConflict, err)
	case errors.Is(err, ErrDuplicateID):
		return uc.reject(domain.OutcomeDuplicateID, err)
	case errors.Is(err, ErrStorageUnavailable):
		return uc.reject(domain.OutcomeStorageUnavailable, err)
	case errors.Is(err, ErrInternal):
		return uc.reject(domain.OutcomeInternalError, err)
	default:
		uc.logger.Error("SubmitBooking: transaction failed: %v", err)
		return uc.reject(domain.OutcomeStorageUnavailable, fmt.Errorf("%w: %v", ErrStorageUnavailable, err))
	}
}

func (uc *UseCase) reject(outcome string, err error) error {
	uc.recorder.IncBookingOutcome(outcome)
	return err
}

type noLocker struct{}

func (noLocker) Lock(context.Context, types.Date) (func(), error) {
	return func() {}, nil
}

type noRecorder struct{}

func (noRecorder) IncBookingOutcome(string) {}
