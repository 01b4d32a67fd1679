package inmemory

import "errors"

var (
	// ErrTxDone is returned when committing a transaction twice or after a
	// rollback.
	ErrTxDone = errors.New("transaction has already been committed or rolled back")
	// ErrReceiptExists is returned when adding a receipt twice.
	ErrReceiptExists = errors.New("receipt already exists")
)
