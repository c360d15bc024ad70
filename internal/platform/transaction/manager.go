// Package transaction runs use cases inside a single database transaction carried by the context.
package transaction

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// Manager executes fn atomically. Repositories participating in the unit of work
// resolve the active handle from the context passed to fn.
type Manager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// ExtractTx returns the transaction bound to ctx, or nil outside a unit of work.
func ExtractTx(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return nil
	}
	return tx
}

// DB returns the active transaction when present, otherwise db scoped to ctx.
func DB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := ExtractTx(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// InTx reports whether ctx carries a transaction.
func InTx(ctx context.Context) bool {
	return ExtractTx(ctx) != nil
}

type gormManager struct {
	db *gorm.DB
}

// NewGormManager returns a Manager backed by gorm transactions.
// Nested calls join the outer transaction.
func NewGormManager(db *gorm.DB) Manager {
	return &gormManager{db: db}
}

func (m *gormManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

type localKey struct{}

// LocalManager serializes units of work in-process. It backs the in-memory adapters,
// which offer no rollback, so fn must perform its single write last.
type LocalManager struct {
	mu sync.Mutex
}

func NewLocalManager() *LocalManager {
	return &LocalManager{}
}

func (m *LocalManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(localKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, localKey{}, struct{}{}))
}
