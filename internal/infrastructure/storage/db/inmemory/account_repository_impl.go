package inmemory

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/storageutil/uow"
)

type accountRepositoryImpl struct {
	store *ledgerStore
}

// NewAccountRepositoryImpl returns a new inmemory AccountRepository
// implementation.
func NewAccountRepositoryImpl() domain.AccountRepository {
	return &accountRepositoryImpl{newLedgerStore()}
}

func (r *accountRepositoryImpl) GetAccount(
	ctx context.Context, address solana.PublicKey,
) (*domain.Account, error) {
	if tx := txFromContext(ctx, r.store); tx != nil {
		if account, ok := tx.accounts[address]; ok {
			account = account.Copy()
			return &account, nil
		}
	}

	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	account, ok := r.store.accounts[address]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account = account.Copy()
	return &account, nil
}

func (r *accountRepositoryImpl) GetAccountsByOwner(
	ctx context.Context, owner solana.PublicKey,
) ([]domain.Account, error) {
	found := make(map[solana.PublicKey]domain.Account)

	r.store.locker.RLock()
	for addr, account := range r.store.accounts {
		if account.Owner.Equals(owner) {
			found[addr] = account.Copy()
		}
	}
	r.store.locker.RUnlock()

	if tx := txFromContext(ctx, r.store); tx != nil {
		for addr, account := range tx.accounts {
			if account.Owner.Equals(owner) {
				found[addr] = account.Copy()
			} else {
				delete(found, addr)
			}
		}
	}

	accounts := make([]domain.Account, 0, len(found))
	for _, account := range found {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *accountRepositoryImpl) UpsertAccounts(
	ctx context.Context, accounts []domain.Account,
) error {
	if tx := txFromContext(ctx, r.store); tx != nil {
		for _, account := range accounts {
			tx.accounts[account.Address] = account.Copy()
		}
		return nil
	}

	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	for _, account := range accounts {
		r.store.accounts[account.Address] = account.Copy()
	}
	return nil
}

func (r *accountRepositoryImpl) Begin() (uow.Tx, error) {
	return r.store.Begin()
}

func (r *accountRepositoryImpl) ContextKey() interface{} {
	return r.store
}
