package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	begins    int
	beginErr  error
	commitErr error
	opts      []*sql.TxOptions
	txs       []*fakeTx
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	b.opts = append(b.opts, opts)
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{commitErr: b.commitErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func TestDoSerializable_Commit(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, 3)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, 1, db.begins)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
}

func TestDoSerializable_RollbackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, 3)
	fnErr := errors.New("conflict found")

	err := m.DoSerializable(context.Background(), func(context.Context) error { return fnErr })
	assert.ErrorIs(t, err, fnErr)
	assert.Equal(t, 1, db.begins)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, 3)

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("insert: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, db.begins)
	assert.True(t, db.txs[2].committed)
}

func TestDoSerializable_GivesUp(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, 2)

	err := m.DoSerializable(context.Background(), func(context.Context) error {
		return &pq.Error{Code: "40P01"}
	})
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, 2, db.begins)
}

func TestDoSerializable_BeginAndCommitErrors(t *testing.T) {
	noop := func(context.Context) error { return nil }

	err := NewTransactionManager(&fakeBeginner{beginErr: errors.New("database is closed")}, 1).
		DoSerializable(context.Background(), noop)
	assert.ErrorIs(t, err, ErrBeginTx)

	err = NewTransactionManager(&fakeBeginner{commitErr: errors.New("disk I/O error")}, 1).
		DoSerializable(context.Background(), noop)
	assert.ErrorIs(t, err, ErrCommitTx)
}

func TestDoSerializable_NestedReusesOuterTx(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, 3)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(context.Context) error { return nil })
	})
	require.NoError(t, err)
	assert.Equal(t, 1, db.begins)
}

func TestNewTransactionManager_DefaultRetries(t *testing.T) {
	assert.Equal(t, DefaultMaxRetries, NewTransactionManager(&fakeBeginner{}, 0).maxRetries)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(fmt.Errorf("wrap: %w", &pq.Error{Code: "40001"})))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("plain")))
}
