package domain

import (
	"context"
	"errors"
)

// ErrReceiptNotFound is returned by repositories for unknown transaction ids.
var ErrReceiptNotFound = errors.New("receipt not found")

// ReceiptStatus tells whether the transaction a receipt refers to has been
// committed.
type ReceiptStatus int

const (
	ReceiptStatusCommitted ReceiptStatus = iota
	ReceiptStatusFailed
)

func (s ReceiptStatus) String() string {
	if s == ReceiptStatusCommitted {
		return "committed"
	}
	return "failed"
}

// Receipt holds the outcome of a submitted transaction.
type Receipt struct {
	ID         string
	Signatures []string
	Programs   []string
	Status     ReceiptStatus
	Error      string
	ErrorCode  *uint32
	Timestamp  int64
}

// IsCommitted returns whether the account changes of the transaction were
// persisted.
func (r Receipt) IsCommitted() bool {
	return r.Status == ReceiptStatusCommitted
}

// ReceiptRepository is the abstraction for any kind of database intended to
// persist transaction receipts.
type ReceiptRepository interface {
	// AddReceipt stores a receipt. Receipts are never updated.
	AddReceipt(ctx context.Context, receipt Receipt) error
	// GetReceipt returns the receipt with the given transaction id.
	GetReceipt(ctx context.Context, id string) (*Receipt, error)
	// ListReceipts returns receipts sorted by timestamp, newest first.
	ListReceipts(ctx context.Context, page Page) ([]Receipt, error)
}
