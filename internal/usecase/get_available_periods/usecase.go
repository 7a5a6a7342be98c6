package get_available_periods

import (
	"context"
	"fmt"
	"time"
)

// UseCase use case для получения свободных уроков на дату
type UseCase struct {
	bookingRepo  BookingRepository
	timetable    Timetable
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс, в котором определяется "сегодня" (nil = UTC).
func NewUseCase(bookingRepo BookingRepository, tt Timetable, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		timetable:    tt,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных уроков.
// Результат справочный: между ответом и подачей заявки урок могут занять.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailablePeriods: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем бронирования на дату (без транзакции и блокировок)
	bookings, err := uc.bookingRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailablePeriods: failed to get bookings for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// 3. Вычисляем доступность для каждого урока
	periods, err := calculateAvailability(uc.timetable, bookings)
	if err != nil {
		uc.logger.Error("GetAvailablePeriods: stored booking references unknown period: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. На прошедшую дату бронировать нельзя
	isPast := isDateInPast(req.Date, uc.timeProvider.Now(), uc.location)
	if isPast {
		closeAll(periods)
	}

	free := 0
	for _, p := range periods {
		if p.Available {
			free++
		}
	}
	uc.logger.Info("GetAvailablePeriods: date=%s bookings=%d free=%d/%d", req.Date, len(bookings), free, len(periods))

	return &Response{
		Date:    req.Date,
		IsPast:  isPast,
		Periods: periods,
	}, nil
}
