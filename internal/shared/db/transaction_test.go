package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type entry struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(&entry{}))
	return gdb
}

func count(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&entry{}).Count(&n).Error)
	return n
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)
	boom := errors.New("boom")

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		assert.True(t, InTransaction(ctx))
		require.NoError(t, GetTxFromContext(ctx, gdb).Create(&entry{Name: "a"}).Error)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, count(t, gdb))
}

func TestRunInTransaction_NestedCallJoinsOuter(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)
	boom := errors.New("outer fails")

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		outer := tm.GetTx(ctx)
		inner := tm.RunInTransaction(ctx, func(innerCtx context.Context) error {
			assert.Same(t, outer, tm.GetTx(innerCtx))
			return GetTxFromContext(innerCtx, gdb).Create(&entry{Name: "inner"}).Error
		})
		require.NoError(t, inner)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, count(t, gdb), "inner write rolled back with the outer transaction")
	assert.False(t, InTransaction(context.Background()))
}

func TestAfterCommit_RunsImmediatelyOutsideTransaction(t *testing.T) {
	ran := false
	AfterCommit(context.Background(), func(ctx context.Context) {
		ran = true
		assert.False(t, InTransaction(ctx))
	})
	assert.True(t, ran)
}

func TestAfterCommit_WaitsForOutermostCommit(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)
	var order []string

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		require.NoError(t, tm.RunInTransaction(ctx, func(innerCtx context.Context) error {
			AfterCommit(innerCtx, func(hookCtx context.Context) {
				assert.False(t, InTransaction(hookCtx))
				assert.Equal(t, int64(1), count(t, gdb), "hook sees the committed row")
				order = append(order, "inner")
			})
			return GetTxFromContext(innerCtx, gdb).Create(&entry{Name: "lot"}).Error
		}))
		AfterCommit(ctx, func(context.Context) { order = append(order, "outer") })

		assert.Empty(t, order, "nothing runs before the outer commit")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"inner", "outer"}, order)
}

func TestAfterCommit_DroppedOnRollback(t *testing.T) {
	gdb := setupDB(t)
	tm := NewTransactionManager(gdb)
	ran := false

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func(context.Context) { ran = true })
		return errors.New("rank check failed")
	})

	assert.Error(t, err)
	assert.False(t, ran)
}
