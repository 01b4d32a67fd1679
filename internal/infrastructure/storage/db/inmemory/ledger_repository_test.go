package inmemory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/infrastructure/storage/db/inmemory"
)

var ctx = context.Background()

func TestAccountRepository(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	repo := repoManager.AccountRepository()

	owner := newKey(t)
	accounts := []domain.Account{
		{Address: newKey(t), Lamports: 10, Owner: owner, Data: []byte{1, 2, 3}},
		{Address: newKey(t), Lamports: 20, Owner: owner, Data: []byte{4, 5}},
		{Address: newKey(t), Lamports: 30, Owner: solana.SystemProgramID, Data: []byte{6}},
	}

	_, err := repo.GetAccount(ctx, accounts[0].Address)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	err = repo.UpsertAccounts(ctx, accounts)
	require.NoError(t, err)

	for _, a := range accounts {
		account, err := repo.GetAccount(ctx, a.Address)
		require.NoError(t, err)
		require.Equal(t, a, *account)
	}

	owned, err := repo.GetAccountsByOwner(ctx, owner)
	require.NoError(t, err)
	require.ElementsMatch(t, accounts[:2], owned)

	updated := accounts[0]
	updated.Lamports = 0
	updated.Owner = solana.SystemProgramID
	err = repo.UpsertAccounts(ctx, []domain.Account{updated})
	require.NoError(t, err)

	account, err := repo.GetAccount(ctx, updated.Address)
	require.NoError(t, err)
	require.Equal(t, updated, *account)

	owned, err = repo.GetAccountsByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, accounts[1].Address, owned[0].Address)
}

func TestReceiptRepository(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	repo := repoManager.ReceiptRepository()

	code := domain.ErrInsufficientFunds.Code
	receipts := make([]domain.Receipt, 0, 5)
	for i := 0; i < 5; i++ {
		receipt := domain.Receipt{
			ID:         fmt.Sprintf("tx%d", i),
			Signatures: []string{fmt.Sprintf("sig%d", i)},
			Programs:   []string{"system"},
			Status:     domain.ReceiptStatusCommitted,
			Timestamp:  int64(1000 + i),
		}
		if i%2 == 1 {
			receipt.Status = domain.ReceiptStatusFailed
			receipt.Error = domain.ErrInsufficientFunds.Error()
			receipt.ErrorCode = &code
		}
		receipts = append(receipts, receipt)
		require.NoError(t, repo.AddReceipt(ctx, receipt))
	}

	err := repo.AddReceipt(ctx, receipts[0])
	require.ErrorIs(t, err, inmemory.ErrReceiptExists)

	receipt, err := repo.GetReceipt(ctx, "tx1")
	require.NoError(t, err)
	require.Equal(t, receipts[1], *receipt)

	_, err = repo.GetReceipt(ctx, "unknown")
	require.ErrorIs(t, err, domain.ErrReceiptNotFound)

	tests := []struct {
		page        domain.Page
		expectedIDs []string
	}{
		{domain.NewPage(1, 2), []string{"tx4", "tx3"}},
		{domain.NewPage(2, 2), []string{"tx2", "tx1"}},
		{domain.NewPage(3, 2), []string{"tx0"}},
		{domain.NewPage(4, 2), []string{}},
		{domain.NewPage(0, 0), []string{"tx4", "tx3", "tx2", "tx1", "tx0"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("page_%d_%d", tt.page.Number, tt.page.Size), func(t *testing.T) {
			list, err := repo.ListReceipts(ctx, tt.page)
			require.NoError(t, err)

			ids := make([]string, 0, len(list))
			for _, r := range list {
				ids = append(ids, r.ID)
			}
			require.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestRunTransaction(t *testing.T) {
	t.Parallel()

	repoManager := inmemory.NewRepoManager()
	accounts := repoManager.AccountRepository()
	receipts := repoManager.ReceiptRepository()

	committed := domain.Account{
		Address: newKey(t), Lamports: 1, Owner: solana.SystemProgramID,
		Data: []byte{1},
	}
	err := repoManager.RunTransaction(ctx, func(ctx context.Context) error {
		if err := accounts.UpsertAccounts(ctx, []domain.Account{committed}); err != nil {
			return err
		}
		account, err := accounts.GetAccount(ctx, committed.Address)
		if err != nil {
			return err
		}
		if account.Lamports != committed.Lamports {
			return fmt.Errorf("transaction does not see its own writes")
		}
		return receipts.AddReceipt(ctx, domain.Receipt{
			ID: "committed", Signatures: []string{"sig"}, Timestamp: 1,
		})
	})
	require.NoError(t, err)

	account, err := accounts.GetAccount(ctx, committed.Address)
	require.NoError(t, err)
	require.Equal(t, committed, *account)
	_, err = receipts.GetReceipt(ctx, "committed")
	require.NoError(t, err)

	rolledBack := domain.Account{
		Address: newKey(t), Lamports: 2, Owner: solana.SystemProgramID,
		Data: []byte{2},
	}
	expectedErr := errors.New("handler failed")
	err = repoManager.RunTransaction(ctx, func(ctx context.Context) error {
		if err := accounts.UpsertAccounts(ctx, []domain.Account{rolledBack}); err != nil {
			return err
		}
		if err := receipts.AddReceipt(ctx, domain.Receipt{
			ID: "rolled-back", Signatures: []string{"sig"}, Timestamp: 2,
		}); err != nil {
			return err
		}
		return expectedErr
	})
	require.ErrorIs(t, err, expectedErr)

	_, err = accounts.GetAccount(ctx, rolledBack.Address)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	_, err = receipts.GetReceipt(ctx, "rolled-back")
	require.ErrorIs(t, err, domain.ErrReceiptNotFound)

	err = repoManager.RunTransaction(ctx, func(ctx context.Context) error {
		return receipts.AddReceipt(ctx, domain.Receipt{
			ID: "committed", Signatures: []string{"sig"}, Timestamp: 3,
		})
	})
	require.Error(t, err)
}

func newKey(t *testing.T) solana.PublicKey {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key.PublicKey()
}
