// Package db carries the active gorm transaction through context.Context so
// repositories and use cases share one unit of work.
package db

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type txKey struct{}

// txState is the transaction in flight and the work waiting for it to
// commit.
type txState struct {
	tx *gorm.DB

	mu    sync.Mutex
	hooks []func(context.Context)
}

func (s *txState) addHook(fn func(context.Context)) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

func (s *txState) drain() []func(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hooks := s.hooks
	s.hooks = nil
	return hooks
}

// Transactor runs fn inside one database transaction. Repositories called
// with the ctx handed to fn join that transaction.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionManager struct {
	db *gorm.DB
}

var _ Transactor = (*TransactionManager)(nil)

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction commits when fn returns nil and rolls back otherwise.
// Called with a ctx that already carries a transaction, it joins it: only
// the outermost call commits, and only then do AfterCommit callbacks run,
// in registration order. A rollback discards them.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}

	state := &txState{}
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state.tx = tx
		return fn(context.WithValue(ctx, txKey{}, state))
	})
	if err != nil {
		return err
	}

	for _, hook := range state.drain() {
		hook(ctx)
	}
	return nil
}

func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	return GetTxFromContext(ctx, tm.db)
}

// GetTxFromContext returns the transaction carried by ctx, or defaultDB
// bound to ctx when there is none.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state.tx
	}
	return defaultDB.WithContext(ctx)
}

// InTransaction reports whether ctx carries an open transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*txState)
	return ok
}

// AfterCommit runs fn once the transaction carried by ctx has committed, or
// immediately when ctx carries none. fn receives a ctx outside the
// transaction.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		fn(ctx)
		return
	}
	state.addHook(fn)
}
