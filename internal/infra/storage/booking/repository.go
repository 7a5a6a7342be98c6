package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// DefaultQueryTimeout ограничение на один запрос, если не задано в конфигурации
const DefaultQueryTimeout = 5 * time.Second

var bookingColumns = []string{
	"id",
	"booking_date",
	"teacher_name",
	"class_name",
	"contact",
	"period",
	"period_start",
	"period_end",
	"subject",
	"created_at",
}

// Repository репозиторий для работы с бронированиями.
// Бронирования только добавляются; порядок выдачи - порядок вставки (seq).
type Repository struct {
	db      DBExecutor
	dialect dialect
	timeout time.Duration
}

// NewRepository создает новый экземпляр репозитория бронирований.
// driver: "postgres" или "sqlite3"; timeout <= 0 заменяется на DefaultQueryTimeout
func NewRepository(db DBExecutor, driver string, timeout time.Duration) *Repository {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Repository{
		db:      db,
		dialect: newDialect(driver),
		timeout: timeout,
	}
}

// EnsureSchema создает таблицу bookings, если её нет
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for _, stmt := range r.dialect.schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %w", ErrSchema, err)
		}
	}
	return nil
}

// Create сохраняет бронирование.
// Если в контексте передана активная транзакция, использует её -
// так проверка конфликтов и вставка выполняются атомарно.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.dialect.builder.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			booking.ID,
			booking.BookingDate,
			booking.TeacherName,
			booking.ClassName,
			booking.Contact,
			booking.Period,
			booking.TimeRange.Start,
			booking.TimeRange.End,
			booking.Subject,
			booking.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: id=%s", ErrDuplicateID, booking.ID)
		}
		// %w для исходной ошибки: менеджер транзакций должен видеть SQLSTATE 40001
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByDate получает все бронирования на дату в порядке вставки.
// Внутри транзакции на PostgreSQL строки блокируются (FOR UPDATE).
func (r *Repository) GetByDate(ctx context.Context, date types.Date) ([]*domain.Booking, error) {
	selectBuilder := r.dialect.builder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("seq ASC")

	if r.dialect.forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "GetByDate", selectBuilder)
}

// GetByFilter получает бронирования по фильтру отчета.
// Условия объединяются через AND, пустой фильтр возвращает все бронирования.
//
// Примеры:
//
// 1. Все бронирования на дату:
//    filter := domain.BookingFilter{Date: ptr.Ptr(types.MustParseDate("2025-06-10"))}
//
// 2. Все вторники:
//    filter := domain.BookingFilter{Weekday: ptr.Ptr(time.Tuesday)}
//
// 3. Диапазон дат (включительно):
//    filter := domain.BookingFilter{From: &from, To: &to}
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	selectBuilder := r.dialect.builder.Select(bookingColumns...).
		From("bookings")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	// День недели вычисляется из даты, отдельной колонки нет
	if filter.Weekday != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(r.dialect.weekdayExpr+" = ?", int(*filter.Weekday)))
	}

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.To})
	}

	selectBuilder = selectBuilder.OrderBy("seq ASC")

	return r.query(ctx, "GetByFilter", selectBuilder)
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.BookingDate,
			&booking.TeacherName,
			&booking.ClassName,
			&booking.Contact,
			&booking.Period,
			&booking.TimeRange.Start,
			&booking.TimeRange.End,
			&booking.Subject,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time.UTC()
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
