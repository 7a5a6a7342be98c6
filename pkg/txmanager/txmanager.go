package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
)

// DefaultMaxRetries сколько раз повторять транзакцию при serialization failure
const DefaultMaxRetries = 3

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization транзакция так и не прошла после всех повторов
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции.
// Транзакция передается в fn через контекст (dbmetrics.WithTx),
// репозитории забирают её через dbmetrics.GetExecutor.
type TransactionManager struct {
	db         TxBeginner
	maxRetries int
}

// NewTransactionManager создает менеджер транзакций.
// maxRetries <= 0 заменяется на DefaultMaxRetries
func NewTransactionManager(db TxBeginner, maxRetries int) *TransactionManager {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &TransactionManager{db: db, maxRetries: maxRetries}
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При конфликте сериализации (SQLSTATE 40001/40P01) транзакция повторяется целиком.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !IsSerializationFailure(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w: after %d attempts: %v", ErrSerialization, m.maxRetries, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов - переиспользуем внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsSerializationFailure true для ошибок PostgreSQL, после которых транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
