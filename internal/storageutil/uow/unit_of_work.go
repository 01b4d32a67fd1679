package uow

import (
	"context"
	"fmt"
)

// Transactional begins a transaction
type Transactional interface {
	Begin() (Tx, error)
}

// Tx represents an all-or-nothing transaction, by committing or rolling back
// a set of read/write operations
type Tx interface {
	Commit() error
	Rollback() error
}

// ContextProvider returns the key the transaction of a repository is bound to
// in the context. Repositories with the same key share the same transaction.
type ContextProvider interface {
	ContextKey() interface{}
}

// UnitOfWork allows to run multiple transactions as one
type UnitOfWork struct {
	repositories []Transactional
}

// NewUnitOfWork returns a new UnitOfWork with the given Transaction interfaces
func NewUnitOfWork(repositories ...Transactional) *UnitOfWork {
	return &UnitOfWork{repositories}
}

// ContextKey returns the key the transaction of the given repository is bound
// to in the context passed by Run.
func ContextKey(repository interface{}) interface{} {
	if cp, ok := repository.(ContextProvider); ok {
		return cp.ContextKey()
	}
	return repository
}

// TxFromContext returns the transaction bound to key, if any.
func TxFromContext(ctx context.Context, key interface{}) (Tx, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(key).(Tx)
	return tx, ok
}

// Run executes the given function over the current UnitOfWork. The given
// function is likely making read/write operations to different repositories in
// a transactional way. Run makes sure that all the transactions within the
// given function are either all committed to the relative storage or rolled
// back if any error occur.
// A repository whose transaction is already bound to ctx joins it: the
// transaction is then committed or rolled back by the outer Run.
func (u *UnitOfWork) Run(
	ctx context.Context, fn func(ctx context.Context) error,
) (err error) {
	txs := make([]Tx, 0, len(u.repositories))

	defer func() {
		if err == nil {
			return
		}
		for _, tx := range txs {
			if _err := tx.Rollback(); _err != nil {
				err = fmt.Errorf("%s, rollback failed: %w", err, _err)
			}
		}
	}()

	defer func() {
		if err != nil {
			return
		}
		for _, tx := range txs {
			if _err := tx.Commit(); _err != nil {
				err = _err
				return
			}
		}
	}()

	defer func() {
		// panicking returns an error that causes txs rollback
		if rec := recover(); rec != nil {
			err = fmt.Errorf("recovered: %v", rec)
		}
	}()

	for _, r := range u.repositories {
		key := ContextKey(r)
		if _, ok := TxFromContext(ctx, key); ok {
			continue
		}

		tx, err := r.Begin()
		if err != nil {
			return err
		}
		ctx = context.WithValue(ctx, key, tx)
		txs = append(txs, tx)
	}

	return fn(ctx)
}
