package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jjimmyk/planningp/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPeriodUoW(t *testing.T) (*db.SQLiteUnitOfWork, func(id string) bool) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	exists := func(id string) bool {
		var n int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM operational_periods WHERE id = ?`, id).Scan(&n))
		return n == 1
	}
	return db.NewSQLiteUnitOfWork(database), exists
}

func insertPeriod(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO operational_periods (id, name, created_at, updated_at) VALUES (?, ?, 'now', 'now')`, id, "Period "+id)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, exists := newPeriodUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertPeriod(ctx, tx, "p1")
	})
	require.NoError(t, err)
	assert.True(t, exists("p1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, exists := newPeriodUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertPeriod(ctx, tx, "p2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, exists("p2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, exists := newPeriodUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertPeriod(ctx, tx, "p3")
			panic("boom")
		})
	})
	assert.False(t, exists("p3"), "row should not exist after panic rollback")
}
