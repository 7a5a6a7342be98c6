package get_available_periods

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/timetable"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) GetByDate(ctx context.Context, date types.Date) ([]*domain.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

func newUseCase(repo BookingRepository, now time.Time) *UseCase {
	uc := NewUseCase(repo, timetable.Default(), nil, logger.NewNop())
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func availability(resp *Response) map[int]bool {
	out := make(map[int]bool, len(resp.Periods))
	for _, p := range resp.Periods {
		out[p.Period] = p.Available
	}
	return out
}

func TestExecute(t *testing.T) {
	date := types.MustParseDate("2025-06-10")
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("no bookings leaves every period free", func(t *testing.T) {
		repo := &mockBookingRepository{}
		repo.On("GetByDate", mock.Anything, date).Return([]*domain.Booking{}, nil)

		resp, err := newUseCase(repo, now).Execute(context.Background(), &Request{Date: date})
		require.NoError(t, err)
		require.Len(t, resp.Periods, 9)
		assert.False(t, resp.IsPast)
		for _, p := range resp.Periods {
			assert.True(t, p.Available, "period %d", p.Period)
			assert.Nil(t, p.BlockedBy)
		}
		assert.Equal(t, "08:20 - 09:00", resp.Periods[0].TimeRange.String())
	})

	t.Run("booking closes its block set", func(t *testing.T) {
		holder := &domain.Booking{ID: "b-2", BookingDate: date, Period: 2, TeacherName: "Teacher X"}
		repo := &mockBookingRepository{}
		repo.On("GetByDate", mock.Anything, date).Return([]*domain.Booking{holder}, nil)

		resp, err := newUseCase(repo, now).Execute(context.Background(), &Request{Date: date})
		require.NoError(t, err)

		got := availability(resp)
		assert.False(t, got[1])
		assert.False(t, got[2])
		assert.False(t, got[3])
		assert.True(t, got[4])
		assert.True(t, got[9])
		assert.Equal(t, holder, resp.Periods[0].BlockedBy)
	})

	t.Run("first blocking booking in store order is reported", func(t *testing.T) {
		first := &domain.Booking{ID: "b-1", BookingDate: date, Period: 4}
		second := &domain.Booking{ID: "b-6", BookingDate: date, Period: 6}
		repo := &mockBookingRepository{}
		repo.On("GetByDate", mock.Anything, date).Return([]*domain.Booking{first, second}, nil)

		resp, err := newUseCase(repo, now).Execute(context.Background(), &Request{Date: date})
		require.NoError(t, err)
		// Урок 5 закрывают оба бронирования
		assert.Equal(t, "b-1", resp.Periods[4].BlockedBy.ID)
		assert.Equal(t, "b-6", resp.Periods[5].BlockedBy.ID)
	})

	t.Run("past date closes everything", func(t *testing.T) {
		repo := &mockBookingRepository{}
		repo.On("GetByDate", mock.Anything, date).Return([]*domain.Booking{}, nil)

		resp, err := newUseCase(repo, time.Date(2025, 6, 11, 0, 5, 0, 0, time.UTC)).
			Execute(context.Background(), &Request{Date: date})
		require.NoError(t, err)
		assert.True(t, resp.IsPast)
		for _, p := range resp.Periods {
			assert.False(t, p.Available)
		}
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := newUseCase(&mockBookingRepository{}, now).Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := &mockBookingRepository{}
		repo.On("GetByDate", mock.Anything, date).Return(nil, errors.New("connection refused"))

		_, err := newUseCase(repo, now).Execute(context.Background(), &Request{Date: date})
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("stored booking with unknown period", func(t *testing.T) {
		repo := &mockBookingRepository{}
		repo.On("GetByDate", mock.Anything, date).Return([]*domain.Booking{{ID: "b-x", Period: 42}}, nil)

		_, err := newUseCase(repo, now).Execute(context.Background(), &Request{Date: date})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
