package query_report

import (
	"context"
	"fmt"
)

// UseCase use case отчета по бронированиям
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute возвращает бронирования, подходящие под все заданные условия.
// Без блокировок; порядок - порядок хранения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	filter, err := buildFilter(req)
	if err != nil {
		uc.logger.Warn("QueryReport: invalid filter: %v", err)
		return nil, err
	}

	if filter.IsEmpty() {
		uc.logger.Info("QueryReport: no filter, returning all bookings")
	}

	bookings, err := uc.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("QueryReport: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	uc.logger.Info("QueryReport: found %d bookings", len(bookings))

	return &Response{Bookings: bookings}, nil
}
