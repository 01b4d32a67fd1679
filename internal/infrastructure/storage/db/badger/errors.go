package dbbadger

import "errors"

var (
	// ErrReceiptExists is returned when adding a receipt twice.
	ErrReceiptExists = errors.New("receipt already exists")
)
