package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/storageutil/uow"
	"github.com/timshannon/badgerhold/v4"
)

type accountRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAccountRepositoryImpl returns a new badger AccountRepository
// implementation.
func NewAccountRepositoryImpl(store *badgerhold.Store) domain.AccountRepository {
	return &accountRepositoryImpl{store}
}

func (r *accountRepositoryImpl) GetAccount(
	ctx context.Context, address solana.PublicKey,
) (*domain.Account, error) {
	var account Account
	var err error
	if tx := txFromContext(ctx, r.store); tx != nil {
		err = r.store.TxGet(tx, address.String(), &account)
	} else {
		err = r.store.Get(address.String(), &account)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return mapInfraAccountToDomainAccount(account)
}

func (r *accountRepositoryImpl) GetAccountsByOwner(
	ctx context.Context, owner solana.PublicKey,
) ([]domain.Account, error) {
	query := badgerhold.Where("Owner").Eq(owner.String())

	var accounts []Account
	var err error
	if tx := txFromContext(ctx, r.store); tx != nil {
		err = r.store.TxFind(tx, &accounts, query)
	} else {
		err = r.store.Find(&accounts, query)
	}
	if err != nil {
		return nil, err
	}

	result := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		account, err := mapInfraAccountToDomainAccount(a)
		if err != nil {
			return nil, err
		}
		result = append(result, *account)
	}
	return result, nil
}

func (r *accountRepositoryImpl) UpsertAccounts(
	ctx context.Context, accounts []domain.Account,
) error {
	if tx := txFromContext(ctx, r.store); tx != nil {
		return r.upsertAccounts(tx, accounts)
	}

	return r.store.Badger().Update(func(tx *badger.Txn) error {
		return r.upsertAccounts(tx, accounts)
	})
}

func (r *accountRepositoryImpl) Begin() (uow.Tx, error) {
	return newTx(r.store), nil
}

func (r *accountRepositoryImpl) ContextKey() interface{} {
	return r.store
}

func (r *accountRepositoryImpl) upsertAccounts(
	tx *badger.Txn, accounts []domain.Account,
) error {
	for _, a := range accounts {
		account := mapDomainAccountToInfraAccount(a)
		if err := r.store.TxUpsert(tx, account.Address, account); err != nil {
			return err
		}
	}
	return nil
}
