package domain

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrAccountNotFound is returned by repositories for addresses that never
// held lamports.
var ErrAccountNotFound = errors.New("account not found")

// Account is the ledger state stored at an address.
type Account struct {
	Address    solana.PublicKey
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
}

// IsEmpty returns whether the account is unallocated: no lamports, no data
// and owned by the system program.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 &&
		(a.Owner.IsZero() || a.Owner.Equals(solana.SystemProgramID))
}

// Copy returns a deep copy of the account.
func (a Account) Copy() Account {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	a.Data = data
	return a
}

// AccountRepository is the abstraction for any kind of database intended to
// persist ledger accounts.
type AccountRepository interface {
	// GetAccount returns the account at the given address or
	// ErrAccountNotFound.
	GetAccount(ctx context.Context, address solana.PublicKey) (*Account, error)
	// GetAccountsByOwner returns all accounts owned by the given program.
	GetAccountsByOwner(ctx context.Context, owner solana.PublicKey) ([]Account, error)
	// UpsertAccounts writes the given accounts, replacing any previous state.
	UpsertAccounts(ctx context.Context, accounts []Account) error
}
