package submit_booking

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SlotBookingService/internal/timetable"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SlotBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// newSQLiteUseCase собирает use case на реальном SQLite с менеджером транзакций
func newSQLiteUseCase(t *testing.T) (*UseCase, *bookingRepo.Repository) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookings.db")
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := bookingRepo.NewRepository(wrapped, "sqlite3", 5*time.Second)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	uc := NewUseCase(repo, timetable.Default(), txmanager.NewTransactionManager(wrapped, 3), nil, nil, time.UTC, logger.NewNop())
	uc.timeProvider = &fixedTime{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}

	return uc, repo
}

func TestSQLite_ScenariosAB(t *testing.T) {
	uc, repo := newSQLiteUseCase(t)
	ctx := context.Background()

	// A: период 1 для Teacher X проходит
	reqX := validRequest("2025-06-10", 1)
	reqX.TeacherName = "Teacher X"
	first, err := uc.Execute(ctx, reqX)
	require.NoError(t, err)

	// A: период 2 для Teacher Y отклонен, свидетель - Teacher X, период 1
	_, err = uc.Execute(ctx, validRequest("2025-06-10", 2))
	var conflict *SlotConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Teacher X", conflict.Holder.TeacherName)
	assert.Equal(t, 1, conflict.Holder.Period)
	assert.Equal(t, "08:20 - 09:00", conflict.Holder.TimeRange.String())

	// B: период 4 не пересекается с периодом 1
	reqZ := validRequest("2025-06-10", 4)
	reqZ.TeacherName = "Teacher Z"
	second, err := uc.Execute(ctx, reqZ)
	require.NoError(t, err)

	// Тот же период на другую дату свободен
	_, err = uc.Execute(ctx, validRequest("2025-06-11", 2))
	require.NoError(t, err)

	got, err := repo.GetByFilter(ctx, domain.BookingFilter{Date: ptr.Ptr(types.MustParseDate("2025-06-10"))})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	// Все поля совпадают с заявкой
	assert.Equal(t, reqX.TeacherName, got[0].TeacherName)
	assert.Equal(t, reqX.ClassName, got[0].ClassName)
	assert.Equal(t, reqX.Contact, got[0].Contact)
	assert.Equal(t, reqX.Subject, got[0].Subject)
	assert.Equal(t, first.TimeRange, got[0].TimeRange)
	assert.True(t, first.CreatedAt.Equal(got[0].CreatedAt))
}

func TestSQLite_ConcurrentSubmissionsKeepInvariant(t *testing.T) {
	uc, repo := newSQLiteUseCase(t)
	ctx := context.Background()
	date := types.MustParseDate("2025-06-10")

	const rounds = 3
	var wg sync.WaitGroup
	errs := make(chan error, rounds*9)

	for r := 0; r < rounds; r++ {
		for period := 1; period <= 9; period++ {
			wg.Add(1)
			go func(period int) {
				defer wg.Done()
				_, err := uc.Execute(ctx, validRequest(date.String(), period))
				errs <- err
			}(period)
		}
	}
	wg.Wait()
	close(errs)

	admitted := 0
	for err := range errs {
		if err == nil {
			admitted++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotConflict)
	}

	bookings, err := repo.GetByDate(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, admitted, len(bookings))
	assert.NotEmpty(t, bookings)

	// Никакие два бронирования на дату не блокируют друг друга
	tt := timetable.Default()
	for i, a := range bookings {
		for j, b := range bookings {
			if i == j {
				continue
			}
			blocked, err := tt.Conflicts(a.Period, b.Period)
			require.NoError(t, err)
			assert.False(t, blocked, "booking %s (period %d) conflicts with %s (period %d)", a.ID, a.Period, b.ID, b.Period)
		}
	}
}
