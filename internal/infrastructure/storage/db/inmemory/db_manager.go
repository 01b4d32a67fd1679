package inmemory

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
	"github.com/tdex-network/xbooth/internal/storageutil/uow"
)

type RepoManager struct {
	accountRepository *accountRepositoryImpl
	receiptRepository *receiptRepositoryImpl
}

func NewRepoManager() ports.RepoManager {
	store := newLedgerStore()

	return &RepoManager{
		accountRepository: &accountRepositoryImpl{store},
		receiptRepository: &receiptRepositoryImpl{store},
	}
}

func (d *RepoManager) AccountRepository() domain.AccountRepository {
	return d.accountRepository
}

func (d *RepoManager) ReceiptRepository() domain.ReceiptRepository {
	return d.receiptRepository
}

func (d *RepoManager) RunTransaction(
	ctx context.Context, handler func(ctx context.Context) error,
) error {
	return uow.NewUnitOfWork(
		d.accountRepository, d.receiptRepository,
	).Run(ctx, handler)
}

func (d *RepoManager) Close() {}

// ledgerStore is shared by the account and receipt repositories so that they
// join the same transaction.
type ledgerStore struct {
	locker   sync.RWMutex
	accounts map[solana.PublicKey]domain.Account
	receipts map[string]domain.Receipt
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{
		accounts: make(map[solana.PublicKey]domain.Account),
		receipts: make(map[string]domain.Receipt),
	}
}

func (s *ledgerStore) Begin() (uow.Tx, error) {
	return &ledgerTx{
		store:    s,
		accounts: make(map[solana.PublicKey]domain.Account),
		receipts: make(map[string]domain.Receipt),
	}, nil
}

// ledgerTx buffers writes until committed.
type ledgerTx struct {
	store    *ledgerStore
	accounts map[solana.PublicKey]domain.Account
	receipts map[string]domain.Receipt
	done     bool
}

func (t *ledgerTx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	t.store.locker.Lock()
	defer t.store.locker.Unlock()

	for id := range t.receipts {
		if _, ok := t.store.receipts[id]; ok {
			return ErrReceiptExists
		}
	}
	for addr, account := range t.accounts {
		t.store.accounts[addr] = account
	}
	for id, receipt := range t.receipts {
		t.store.receipts[id] = receipt
	}
	return nil
}

func (t *ledgerTx) Rollback() error {
	t.done = true
	return nil
}

func txFromContext(ctx context.Context, store *ledgerStore) *ledgerTx {
	tx, ok := uow.TxFromContext(ctx, store)
	if !ok {
		return nil
	}
	ledgerTx, _ := tx.(*ledgerTx)
	return ledgerTx
}
