package booking

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookings.db")
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepository(db, "sqlite3", time.Second)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func newBooking(id, date string, period int, teacher string) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		BookingDate: types.MustParseDate(date),
		TeacherName: teacher,
		ClassName:   "7B",
		Contact:     "+919800000000",
		Period:      period,
		TimeRange:   domain.TimeRange{Start: "08:20", End: "09:00"},
		Subject:     "Physics",
		CreatedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRepository_CreateAndGetByDate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := newBooking("0b7e9c1a-0000-4000-8000-000000000001", "2025-06-10", 1, "Teacher X")
	second := newBooking("0b7e9c1a-0000-4000-8000-000000000002", "2025-06-10", 4, "Teacher Z")
	other := newBooking("0b7e9c1a-0000-4000-8000-000000000003", "2025-06-11", 1, "Teacher Y")

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.GetByDate(ctx, types.MustParseDate("2025-06-10"))
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Порядок вставки сохраняется
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	// Все поля переживают запись и чтение
	assert.Equal(t, "2025-06-10", got[0].BookingDate.String())
	assert.Equal(t, first.TeacherName, got[0].TeacherName)
	assert.Equal(t, first.ClassName, got[0].ClassName)
	assert.Equal(t, first.Contact, got[0].Contact)
	assert.Equal(t, first.Period, got[0].Period)
	assert.Equal(t, first.TimeRange, got[0].TimeRange)
	assert.Equal(t, first.Subject, got[0].Subject)
	assert.True(t, first.CreatedAt.Equal(got[0].CreatedAt), "created_at %s != %s", first.CreatedAt, got[0].CreatedAt)

	empty, err := repo.GetByDate(ctx, types.MustParseDate("2025-06-12"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_CreateDuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	b := newBooking("0b7e9c1a-0000-4000-8000-00000000000a", "2025-06-10", 1, "Teacher X")
	require.NoError(t, repo.Create(ctx, b))

	err := repo.Create(ctx, b)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestRepository_GetByFilter(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// 2025-06-09 понедельник, 2025-06-10 вторник, 2025-06-17 вторник
	seed := []*domain.Booking{
		newBooking("0b7e9c1a-0000-4000-8000-000000000101", "2025-06-09", 1, "Monday teacher"),
		newBooking("0b7e9c1a-0000-4000-8000-000000000102", "2025-06-10", 1, "Teacher X"),
		newBooking("0b7e9c1a-0000-4000-8000-000000000103", "2025-06-10", 4, "Teacher Z"),
		newBooking("0b7e9c1a-0000-4000-8000-000000000104", "2025-06-17", 7, "Next Tuesday"),
	}
	for _, b := range seed {
		require.NoError(t, repo.Create(ctx, b))
	}

	ids := func(bookings []*domain.Booking) []string {
		out := make([]string, 0, len(bookings))
		for _, b := range bookings {
			out = append(out, b.ID)
		}
		return out
	}

	tests := []struct {
		name     string
		filter   domain.BookingFilter
		expected []string
	}{
		{
			name:     "empty filter returns all in store order",
			filter:   domain.BookingFilter{},
			expected: ids(seed),
		},
		{
			name:     "exact date",
			filter:   domain.BookingFilter{Date: ptr.Ptr(types.MustParseDate("2025-06-10"))},
			expected: []string{seed[1].ID, seed[2].ID},
		},
		{
			name:     "weekday tuesday",
			filter:   domain.BookingFilter{Weekday: ptr.Ptr(time.Tuesday)},
			expected: []string{seed[1].ID, seed[2].ID, seed[3].ID},
		},
		{
			name:     "weekday monday",
			filter:   domain.BookingFilter{Weekday: ptr.Ptr(time.Monday)},
			expected: []string{seed[0].ID},
		},
		{
			name:     "weekday with no bookings",
			filter:   domain.BookingFilter{Weekday: ptr.Ptr(time.Sunday)},
			expected: []string{},
		},
		{
			name: "range before bookings",
			filter: domain.BookingFilter{
				From: ptr.Ptr(types.MustParseDate("2025-06-01")),
				To:   ptr.Ptr(types.MustParseDate("2025-06-08")),
			},
			expected: []string{},
		},
		{
			name: "single-day range is inclusive",
			filter: domain.BookingFilter{
				From: ptr.Ptr(types.MustParseDate("2025-06-10")),
				To:   ptr.Ptr(types.MustParseDate("2025-06-10")),
			},
			expected: []string{seed[1].ID, seed[2].ID},
		},
		{
			name:     "open-ended from",
			filter:   domain.BookingFilter{From: ptr.Ptr(types.MustParseDate("2025-06-11"))},
			expected: []string{seed[3].ID},
		},
		{
			name: "weekday and range combined",
			filter: domain.BookingFilter{
				Weekday: ptr.Ptr(time.Tuesday),
				From:    ptr.Ptr(types.MustParseDate("2025-06-01")),
				To:      ptr.Ptr(types.MustParseDate("2025-06-15")),
			},
			expected: []string{seed[1].ID, seed[2].ID},
		},
		{
			name: "date and mismatching weekday",
			filter: domain.BookingFilter{
				Date:    ptr.Ptr(types.MustParseDate("2025-06-10")),
				Weekday: ptr.Ptr(time.Monday),
			},
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.GetByFilter(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ids(got))
		})
	}
}

func TestRepository_ClosedDatabase(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.db.(*sql.DB).Close())

	_, err := repo.GetByDate(context.Background(), types.MustParseDate("2025-06-10"))
	assert.ErrorIs(t, err, ErrExecQuery)

	err = repo.Create(context.Background(), newBooking("0b7e9c1a-0000-4000-8000-0000000000ff", "2025-06-10", 1, "X"))
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestDialect(t *testing.T) {
	pg := newDialect("postgres")
	assert.True(t, pg.forUpdate)
	assert.Contains(t, pg.weekdayExpr, "DOW")

	query, args, err := pg.builder.Select("id").From("bookings").
		Where("booking_date = ?", "2025-06-10").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE booking_date = $1", query)
	assert.Equal(t, []interface{}{"2025-06-10"}, args)

	lite := newDialect("sqlite3")
	assert.False(t, lite.forUpdate)
	assert.Contains(t, lite.weekdayExpr, "strftime")
}
