package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

const (
	statusCommitted = "committed"
	statusFailed    = "failed"
	statusRejected  = "rejected"
)

// Config holds the dependencies and parameters of a Ledger.
type Config struct {
	Repositories ports.RepoManager
	// Programs are registered next to the built-in system and token programs.
	Programs []ports.Program
	// Rent defaults to DefaultRent if not set.
	Rent Rent
	// Registerer defaults to a fresh prometheus registry if not set.
	Registerer prometheus.Registerer
}

func (c Config) validate() error {
	if c.Repositories == nil {
		return fmt.Errorf("missing repositories")
	}
	if !c.Rent.isZero() &&
		(c.Rent.LamportsPerByteYear == 0 || c.Rent.ExemptionThreshold == 0) {
		return fmt.Errorf("rent params must be both zero or both positive")
	}
	return nil
}

// Ledger is a local ledger that executes transactions against persisted
// accounts with all-or-nothing semantics.
// Transactions sharing a writable account are serialized, all others are
// processed concurrently.
type Ledger struct {
	repos    ports.RepoManager
	programs map[solana.PublicKey]ports.Program
	rent     Rent
	locks    *lockManager
	metrics  *metrics
}

// NewLedger returns a new Ledger with the system and token programs
// registered along with the given ones.
func NewLedger(cfg Config) (*Ledger, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rent := cfg.Rent
	if rent.isZero() {
		rent = DefaultRent
	}

	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m, err := newMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	programs := map[solana.PublicKey]ports.Program{
		solana.SystemProgramID: systemProgram{},
		solana.TokenProgramID:  tokenProgram{rent},
	}
	for _, p := range cfg.Programs {
		if _, ok := programs[p.ID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProgram, p.ID())
		}
		programs[p.ID()] = p
	}

	return &Ledger{
		repos:    cfg.Repositories,
		programs: programs,
		rent:     rent,
		locks:    newLockManager(),
		metrics:  m,
	}, nil
}

// Rent returns the rent params of the ledger.
func (l *Ledger) Rent() Rent {
	return l.rent
}

// Submit verifies and executes the given transaction. Either all the account
// changes of the transaction are persisted or none. In both cases a receipt
// is stored and returned; the returned error is the one that made the
// transaction fail, if any. Transactions with missing or invalid signatures
// are rejected without receipt.
func (l *Ledger) Submit(
	ctx context.Context, tx *Transaction,
) (*domain.Receipt, error) {
	start := time.Now()

	if err := tx.Verify(); err != nil {
		l.metrics.transactionProcessed(statusRejected, start)
		return nil, err
	}

	keys, writable := tx.accountKeys()
	unlock := l.locks.acquire(writable)
	defer unlock()

	set, err := l.load(ctx, keys, writable)
	if err != nil {
		return nil, err
	}

	txErr := set.execute(tx)
	receipt := newReceipt(tx, txErr)

	if err := l.repos.RunTransaction(ctx, func(ctx context.Context) error {
		if txErr == nil {
			if err := l.repos.AccountRepository().UpsertAccounts(
				ctx, set.modifiedAccounts(),
			); err != nil {
				return err
			}
		}
		return l.repos.ReceiptRepository().AddReceipt(ctx, receipt)
	}); err != nil {
		return nil, fmt.Errorf("failed to persist transaction %s: %w", tx.ID, err)
	}

	logger := log.WithField("tx", receipt.ID)
	if txErr != nil {
		logger.WithError(txErr).Debug("transaction failed")
		l.metrics.transactionProcessed(statusFailed, start)
		return &receipt, txErr
	}

	logger.Debug("transaction committed")
	l.metrics.transactionProcessed(statusCommitted, start)
	return &receipt, nil
}

// SubmitBatch submits the given transactions concurrently and returns their
// receipts in the same order. Execution failures are reported by the
// receipts, while any other error interrupts the batch.
func (l *Ledger) SubmitBatch(
	ctx context.Context, txs []*Transaction,
) ([]*domain.Receipt, error) {
	receipts := make([]*domain.Receipt, len(txs))

	g, gctx := errgroup.WithContext(ctx)
	for i, tx := range txs {
		i, tx := i, tx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			receipt, err := l.Submit(gctx, tx)
			if receipt == nil {
				return err
			}
			receipts[i] = receipt
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return receipts, nil
}

// Airdrop credits the given account with lamports out of thin air.
func (l *Ledger) Airdrop(
	ctx context.Context, to solana.PublicKey, lamports uint64,
) error {
	unlock := l.locks.acquire(map[solana.PublicKey]bool{to: true})
	defer unlock()

	account, err := l.GetAccount(ctx, to)
	if err != nil {
		return err
	}
	if account.Lamports+lamports < account.Lamports {
		return ErrLamportsOverflow
	}
	account.Lamports += lamports

	if err := l.repos.AccountRepository().UpsertAccounts(
		ctx, []domain.Account{*account},
	); err != nil {
		return err
	}

	log.WithField("account", to).Debugf("airdropped %d lamports", lamports)
	return nil
}

// GetAccount returns the account at the given address. Addresses that were
// never funded are returned as empty system accounts.
func (l *Ledger) GetAccount(
	ctx context.Context, address solana.PublicKey,
) (*domain.Account, error) {
	account, err := l.repos.AccountRepository().GetAccount(ctx, address)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		account = &domain.Account{
			Address: address,
			Owner:   solana.SystemProgramID,
		}
	}
	return account, nil
}

// GetAccountsByOwner returns the accounts owned by the given program.
func (l *Ledger) GetAccountsByOwner(
	ctx context.Context, owner solana.PublicKey,
) ([]domain.Account, error) {
	return l.repos.AccountRepository().GetAccountsByOwner(ctx, owner)
}

// GetReceipt returns the receipt of the transaction with the given id.
func (l *Ledger) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	return l.repos.ReceiptRepository().GetReceipt(ctx, id)
}

// ListReceipts returns the receipts of the given page, newest first.
func (l *Ledger) ListReceipts(
	ctx context.Context, page domain.Page,
) ([]domain.Receipt, error) {
	return l.repos.ReceiptRepository().ListReceipts(ctx, page)
}

func (l *Ledger) load(
	ctx context.Context, keys []solana.PublicKey,
	writable map[solana.PublicKey]bool,
) (*workingSet, error) {
	set := &workingSet{
		ledger:   l,
		keys:     keys,
		accounts: make(map[solana.PublicKey]*workingAccount, len(keys)),
	}

	for _, key := range keys {
		account, err := l.GetAccount(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load account %s: %w", key, err)
		}
		loaded := account.Copy()
		set.accounts[key] = &workingAccount{
			state: &ports.AccountState{
				Lamports:   account.Lamports,
				Owner:      account.Owner,
				Data:       account.Data,
				Executable: account.Executable,
			},
			loaded:   loaded,
			writable: writable[key],
		}
	}
	return set, nil
}

func newReceipt(tx *Transaction, err error) domain.Receipt {
	signatures := make([]string, 0, len(tx.Signatures))
	for _, signer := range tx.Signers() {
		signatures = append(signatures, tx.Signatures[signer].String())
	}
	programs := make([]string, 0, len(tx.Instructions))
	for _, ix := range tx.Instructions {
		programs = append(programs, programName(ix.ProgramID))
	}

	receipt := domain.Receipt{
		ID:         tx.ID.String(),
		Signatures: signatures,
		Programs:   programs,
		Status:     domain.ReceiptStatusCommitted,
		Timestamp:  time.Now().Unix(),
	}
	if err != nil {
		receipt.Status = domain.ReceiptStatusFailed
		receipt.Error = err.Error()
		if code, ok := domain.BoothErrorCode(err); ok {
			receipt.ErrorCode = &code
		}
	}
	return receipt
}
