package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
	"github.com/tdex-network/xbooth/internal/storageutil/uow"
	"github.com/timshannon/badgerhold/v4"
)

const ledgerDir = "ledger"

type repoManager struct {
	store             *badgerhold.Store
	accountRepository *accountRepositoryImpl
	receiptRepository *receiptRepositoryImpl
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger. An empty data dir opens
// an in-memory store.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var dbDir string
	if baseDbDir != "" {
		dbDir = filepath.Join(baseDbDir, ledgerDir)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	return &repoManager{
		store:             store,
		accountRepository: &accountRepositoryImpl{store},
		receiptRepository: &receiptRepositoryImpl{store},
	}, nil
}

func (d *repoManager) AccountRepository() domain.AccountRepository {
	return d.accountRepository
}

func (d *repoManager) ReceiptRepository() domain.ReceiptRepository {
	return d.receiptRepository
}

func (d *repoManager) RunTransaction(
	ctx context.Context, handler func(ctx context.Context) error,
) error {
	return uow.NewUnitOfWork(
		d.accountRepository, d.receiptRepository,
	).Run(ctx, handler)
}

func (d *repoManager) Close() {
	d.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	var opts badger.Options
	if dbDir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dbDir)
		opts.Compression = options.ZSTD
	}
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

type badgerTx struct {
	txn *badger.Txn
}

func newTx(store *badgerhold.Store) *badgerTx {
	return &badgerTx{store.Badger().NewTransaction(true)}
}

func (t *badgerTx) Commit() error {
	return t.txn.Commit()
}

func (t *badgerTx) Rollback() error {
	t.txn.Discard()
	return nil
}

func txFromContext(ctx context.Context, store *badgerhold.Store) *badger.Txn {
	tx, ok := uow.TxFromContext(ctx, store)
	if !ok {
		return nil
	}
	if btx, ok := tx.(*badgerTx); ok {
		return btx.txn
	}
	return nil
}
