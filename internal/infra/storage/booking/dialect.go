package booking

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

// dialect различия PostgreSQL и SQLite, которые видит репозиторий
type dialect struct {
	builder psqlbuilder.Builder

	// weekdayExpr выражение дня недели даты бронирования (0 = воскресенье)
	weekdayExpr string

	// forUpdate поддерживает ли СУБД SELECT ... FOR UPDATE.
	// SQLite не поддерживает, но там транзакция записи берется на BEGIN (_txlock=immediate)
	forUpdate bool

	schema []string
}

func newDialect(driver string) dialect {
	builder := psqlbuilder.New(driver)

	if builder.Driver() == psqlbuilder.DriverSQLite {
		return dialect{
			builder:     builder,
			weekdayExpr: "CAST(strftime('%w', booking_date) AS INTEGER)",
			forUpdate:   false,
			schema: []string{
				`CREATE TABLE IF NOT EXISTS bookings (
					seq INTEGER PRIMARY KEY AUTOINCREMENT,
					id TEXT NOT NULL UNIQUE,
					booking_date DATE NOT NULL,
					teacher_name TEXT NOT NULL,
					class_name TEXT NOT NULL,
					contact TEXT NOT NULL,
					period INTEGER NOT NULL,
					period_start TEXT NOT NULL,
					period_end TEXT NOT NULL,
					subject TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_bookings_booking_date ON bookings (booking_date)`,
			},
		}
	}

	return dialect{
		builder:     builder,
		weekdayExpr: "EXTRACT(DOW FROM booking_date)",
		forUpdate:   true,
		schema: []string{
			`CREATE TABLE IF NOT EXISTS bookings (
				seq BIGSERIAL PRIMARY KEY,
				id UUID NOT NULL UNIQUE,
				booking_date DATE NOT NULL,
				teacher_name VARCHAR(100) NOT NULL,
				class_name VARCHAR(50) NOT NULL,
				contact VARCHAR(30) NOT NULL,
				period SMALLINT NOT NULL CHECK (period > 0),
				period_start TIME NOT NULL,
				period_end TIME NOT NULL,
				subject VARCHAR(100) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_bookings_booking_date ON bookings (booking_date)`,
		},
	}
}

// isUniqueViolation распознает нарушение уникальности в обоих драйверах
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
