package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики connection pool
const DefaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, снимающая метрики с каждого запроса.
// Если metrics == nil, работает как прозрачный прокси.
type DB struct {
	db          *sql.DB
	metrics     *metrics.Metrics
	serviceName string
}

// Wrap оборачивает *sql.DB без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string) *DB {
	return &DB{db: db, metrics: m, serviceName: serviceName}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула
// с интервалом DefaultStatsInterval до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, serviceName)
	if m != nil {
		go wrapped.collectStats(DefaultStatsInterval, stopCh)
	}
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx начинает транзакцию, запросы которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		d.observe("BEGIN", time.Now(), err)
		return nil, err
	}
	return &Tx{tx: tx, parent: d}, nil
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	op := operationOf(query)
	d.metrics.DBQueryDuration.WithLabelValues(d.serviceName, op).Observe(time.Since(start).Seconds())
	if err != nil && err != sql.ErrNoRows {
		d.metrics.DBQueryErrors.WithLabelValues(d.serviceName, op).Inc()
	}
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.WithLabelValues(d.serviceName).Set(float64(stats.OpenConnections))
			d.metrics.DBInUse.WithLabelValues(d.serviceName).Set(float64(stats.InUse))
			d.metrics.DBIdle.WithLabelValues(d.serviceName).Set(float64(stats.Idle))
			d.metrics.DBWaitCount.WithLabelValues(d.serviceName).Set(float64(stats.WaitCount))
		}
	}
}

// operationOf первое слово запроса в нижнем регистре (select, insert, ...)
func operationOf(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

// Tx транзакция с метриками
type Tx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe(query, start, row.Err())
	return row
}

func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.parent.observe("COMMIT", start, err)
	return err
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}
