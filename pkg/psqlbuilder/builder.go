package psqlbuilder

import (
	"github.com/Masterminds/squirrel"
)

// Поддерживаемые драйверы database/sql
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Builder squirrel-билдер с плейсхолдерами под конкретный драйвер:
// $1, $2 для PostgreSQL и ? для SQLite
type Builder struct {
	sb     squirrel.StatementBuilderType
	driver string
}

// New создает билдер для драйвера. Неизвестный драйвер трактуется как PostgreSQL.
func New(driver string) Builder {
	if driver == DriverSQLite {
		return Builder{
			sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
			driver: DriverSQLite,
		}
	}
	return Builder{
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		driver: DriverPostgres,
	}
}

// Driver имя драйвера, под который собираются запросы
func (b Builder) Driver() string {
	return b.driver
}

// Select начинает SELECT
func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

// Insert начинает INSERT INTO table
func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}
