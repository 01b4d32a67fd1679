package ports

import (
	"context"

	"github.com/tdex-network/xbooth/internal/core/domain"
)

// RepoManager interface defines the methods for the ledger accounts and
// transaction receipts.
type RepoManager interface {
	AccountRepository() domain.AccountRepository
	ReceiptRepository() domain.ReceiptRepository

	Close()

	// RunTransaction runs handler so that every write made through the
	// repositories with the given context is either committed or discarded
	// as a whole.
	RunTransaction(
		ctx context.Context,
		handler func(ctx context.Context) error,
	) error
}
