package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

func TestCreateAccount(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	payer := newFundedKey(t, l)
	account := newKey(t)
	minBalance := l.Rent().MinimumBalance(10)
	owner := newKey(t).PublicKey()

	receipt, err := l.SubmitInstructions(
		ctx, []solana.PrivateKey{payer, account},
		NewCreateAccountInstruction(
			payer.PublicKey(), account.PublicKey(), minBalance, 10, owner,
		),
	)
	require.NoError(t, err)
	require.True(t, receipt.IsCommitted())

	created, err := l.GetAccount(ctx, account.PublicKey())
	require.NoError(t, err)
	require.Equal(t, minBalance, created.Lamports)
	require.Equal(t, owner, created.Owner)
	require.Len(t, created.Data, 10)
	require.Equal(t, uint64(airdropLamports)-minBalance, lamports(t, l, payer.PublicKey()))

	receipt, err = l.SubmitInstructions(
		ctx, []solana.PrivateKey{payer, account},
		NewCreateAccountInstruction(
			payer.PublicKey(), account.PublicKey(), minBalance, 10, owner,
		),
	)
	require.ErrorIs(t, err, domain.ErrAccountAlreadyInUse)
	require.NotNil(t, receipt)
	require.False(t, receipt.IsCommitted())
	require.Nil(t, receipt.ErrorCode)
}

func TestFailingCreateAccount(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	payer := newFundedKey(t, l)
	account := newKey(t)

	_, err := l.SubmitInstructions(
		ctx, []solana.PrivateKey{payer, account},
		NewCreateAccountInstruction(
			payer.PublicKey(), account.PublicKey(), 2*airdropLamports, 0,
			solana.SystemProgramID,
		),
	)
	require.ErrorIs(t, err, domain.ErrInsufficientLamports)
	require.Equal(t, uint64(airdropLamports), lamports(t, l, payer.PublicKey()))

	receipt, err := l.SubmitInstructions(
		ctx, []solana.PrivateKey{payer},
		NewCreateAccountInstruction(
			payer.PublicKey(), account.PublicKey(), 1, 0, solana.SystemProgramID,
		),
	)
	require.ErrorIs(t, err, domain.ErrMissingRequiredSignature)
	require.Nil(t, receipt)
}

func TestTransferLamports(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	from := newFundedKey(t, l)
	to := newKey(t).PublicKey()

	_, err := l.SubmitInstructions(
		ctx, []solana.PrivateKey{from},
		NewTransferLamportsInstruction(from.PublicKey(), to, 1000),
	)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), lamports(t, l, to))
	require.Equal(t, uint64(airdropLamports-1000), lamports(t, l, from.PublicKey()))
}

func TestTokenTransfer(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	alice := newFundedKey(t, l)
	bob := newFundedKey(t, l)
	mint := newMint(t, l, alice, 6)
	aliceAccount := newTokenAccount(t, l, alice, mint)
	bobAccount := newTokenAccount(t, l, bob, mint)

	_, err := l.MintTo(ctx, mint, aliceAccount, alice, 1_000_000)
	require.NoError(t, err)

	descriptor, err := l.GetAssetDescriptor(ctx, mint)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), descriptor.Supply)
	require.Equal(t, uint8(6), descriptor.Decimals)

	_, err = l.SubmitInstructions(
		ctx, []solana.PrivateKey{alice},
		NewTransferInstruction(aliceAccount, bobAccount, alice.PublicKey(), 400_000),
	)
	require.NoError(t, err)
	require.Equal(t, uint64(600_000), tokenBalance(t, l, aliceAccount))
	require.Equal(t, uint64(400_000), tokenBalance(t, l, bobAccount))
}

func TestFailingTokenTransfer(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	alice := newFundedKey(t, l)
	bob := newFundedKey(t, l)
	mint := newMint(t, l, alice, 6)
	otherMint := newMint(t, l, alice, 6)
	aliceAccount := newTokenAccount(t, l, alice, mint)
	bobAccount := newTokenAccount(t, l, bob, mint)
	bobOtherAccount := newTokenAccount(t, l, bob, otherMint)

	_, err := l.MintTo(ctx, mint, aliceAccount, alice, 100)
	require.NoError(t, err)

	tests := []struct {
		name          string
		signer        solana.PrivateKey
		ix            ports.Instruction
		expectedError error
	}{
		{
			name:          "owner_mismatch",
			signer:        bob,
			ix:            NewTransferInstruction(aliceAccount, bobAccount, bob.PublicKey(), 10),
			expectedError: ErrOwnerMismatch,
		},
		{
			name:          "mint_mismatch",
			signer:        alice,
			ix:            NewTransferInstruction(aliceAccount, bobOtherAccount, alice.PublicKey(), 10),
			expectedError: ErrMintMismatch,
		},
		{
			name:          "insufficient_funds",
			signer:        alice,
			ix:            NewTransferInstruction(aliceAccount, bobAccount, alice.PublicKey(), 101),
			expectedError: ErrInsufficientTokenFunds,
		},
		{
			name:          "not_a_token_account",
			signer:        alice,
			ix:            NewTransferInstruction(alice.PublicKey(), bobAccount, alice.PublicKey(), 1),
			expectedError: domain.ErrIncorrectProgramID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := l.SubmitInstructions(
				ctx, []solana.PrivateKey{tt.signer}, tt.ix,
			)
			require.ErrorIs(t, err, tt.expectedError)
			require.False(t, receipt.IsCommitted())
		})
	}

	require.Equal(t, uint64(100), tokenBalance(t, l, aliceAccount))
	require.Zero(t, tokenBalance(t, l, bobAccount))
}

func TestTransactionIsAtomic(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	alice := newFundedKey(t, l)
	mint := newMint(t, l, alice, 0)
	from := newTokenAccount(t, l, alice, mint)
	to := newTokenAccount(t, l, alice, mint)

	_, err := l.MintTo(ctx, mint, from, alice, 10)
	require.NoError(t, err)

	receipt, err := l.SubmitInstructions(
		ctx, []solana.PrivateKey{alice},
		NewTransferInstruction(from, to, alice.PublicKey(), 7),
		NewTransferInstruction(from, to, alice.PublicKey(), 7),
	)
	require.ErrorIs(t, err, ErrInsufficientTokenFunds)
	require.EqualError(t, err, fmt.Sprintf(
		"instruction 1 failed: %s: %s has 3, needs 7",
		ErrInsufficientTokenFunds, from,
	))

	stored, err := l.GetReceipt(ctx, receipt.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ReceiptStatusFailed, stored.Status)
	require.Equal(t, []string{"token", "token"}, stored.Programs)

	require.Equal(t, uint64(10), tokenBalance(t, l, from))
	require.Zero(t, tokenBalance(t, l, to))
}

func TestReadonlyAccountModified(t *testing.T) {
	t.Parallel()

	programID := newKey(t).PublicKey()
	program := funcProgram{
		id: programID,
		process: func(inv ports.Invocation, _ []byte) error {
			inv.Accounts()[0].Data = []byte{1}
			return nil
		},
	}
	l := newTestLedger(t, program)
	payer := newFundedKey(t, l)
	account := newKey(t)

	_, err := l.SubmitInstructions(
		ctx, []solana.PrivateKey{payer, account},
		NewCreateAccountInstruction(
			payer.PublicKey(), account.PublicKey(),
			l.Rent().MinimumBalance(1), 1, programID,
		),
	)
	require.NoError(t, err)

	_, err = l.SubmitInstructions(ctx, nil, ports.Instruction{
		ProgramID: programID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(account.PublicKey(), false, false),
		},
	})
	require.ErrorIs(t, err, domain.ErrReadonlyAccountModified)

	_, err = l.SubmitInstructions(ctx, nil, ports.Instruction{
		ProgramID: programID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(account.PublicKey(), true, false),
		},
	})
	require.NoError(t, err)

	stored, err := l.GetAccount(ctx, account.PublicKey())
	require.NoError(t, err)
	require.Equal(t, []byte{1}, stored.Data)
}

func TestExternalAccountChecks(t *testing.T) {
	t.Parallel()

	programID := newKey(t).PublicKey()
	program := funcProgram{
		id: programID,
		process: func(inv ports.Invocation, data []byte) error {
			from, to := inv.Accounts()[0], inv.Accounts()[1]
			if len(data) > 0 {
				from.Data = []byte{1}
				return nil
			}
			from.Lamports--
			to.Lamports++
			return nil
		},
	}
	l := newTestLedger(t, program)
	victim := newFundedKey(t, l)
	thief := newKey(t).PublicKey()

	ix := ports.Instruction{
		ProgramID: programID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(victim.PublicKey(), true, false),
			solana.NewAccountMeta(thief, true, false),
		},
	}
	_, err := l.SubmitInstructions(ctx, nil, ix)
	require.ErrorIs(t, err, ErrExternalAccountLamportSpend)

	ix.Data = []byte{1}
	_, err = l.SubmitInstructions(ctx, nil, ix)
	require.ErrorIs(t, err, ErrExternalAccountDataModified)

	require.Equal(t, uint64(airdropLamports), lamports(t, l, victim.PublicKey()))
}

func TestInvokeSigned(t *testing.T) {
	t.Parallel()

	programID := newKey(t).PublicKey()
	seeds := domain.Seeds{[]byte("vault")}
	derivation, err := domain.DeriveAddress(programID, seeds)
	require.NoError(t, err)

	program := funcProgram{
		id: programID,
		process: func(inv ports.Invocation, data []byte) error {
			accounts := inv.Accounts()
			signerSeeds := derivation.SignerSeeds()
			if len(data) > 0 {
				signerSeeds = domain.Seeds{[]byte("other"), {derivation.Bump}}
			}
			return inv.FundingService().CreateAccount(
				accounts[0], accounts[1], 8, inv.ProgramID(), signerSeeds,
			)
		},
	}
	l := newTestLedger(t, program)
	payer := newFundedKey(t, l)

	ix := ports.Instruction{
		ProgramID: programID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(payer.PublicKey(), true, true),
			solana.NewAccountMeta(derivation.Address, true, false),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		},
		Data: []byte{1},
	}
	_, err = l.SubmitInstructions(ctx, []solana.PrivateKey{payer}, ix)
	require.ErrorIs(t, err, domain.ErrMissingRequiredSignature)

	ix.Data = nil
	_, err = l.SubmitInstructions(ctx, []solana.PrivateKey{payer}, ix)
	require.NoError(t, err)

	created, err := l.GetAccount(ctx, derivation.Address)
	require.NoError(t, err)
	require.Equal(t, programID, created.Owner)
	require.Equal(t, l.Rent().MinimumBalance(8), created.Lamports)
}

func TestSubmitBatch(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	authority := newFundedKey(t, l)
	mint := newMint(t, l, authority, 0)
	destination := newTokenAccount(t, l, authority, mint)

	const numOfTxs = 20
	owners := make([]solana.PrivateKey, 0, numOfTxs)
	sources := make([]solana.PublicKey, 0, numOfTxs)
	for i := 0; i < numOfTxs; i++ {
		owner := newFundedKey(t, l)
		source := newTokenAccount(t, l, owner, mint)
		_, err := l.MintTo(ctx, mint, source, authority, 5)
		require.NoError(t, err)
		owners = append(owners, owner)
		sources = append(sources, source)
	}

	txs := make([]*Transaction, 0, numOfTxs)
	for i := range owners {
		tx := NewTransaction(
			NewTransferInstruction(sources[i], destination, owners[i].PublicKey(), 5),
		)
		require.NoError(t, tx.Sign(owners[i]))
		txs = append(txs, tx)
	}

	receipts, err := l.SubmitBatch(ctx, txs)
	require.NoError(t, err)
	require.Len(t, receipts, numOfTxs)
	for i, r := range receipts {
		require.True(t, r.IsCommitted())
		require.Equal(t, txs[i].ID.String(), r.ID)
	}
	require.Equal(t, uint64(5*numOfTxs), tokenBalance(t, l, destination))

	_, err = l.Submit(ctx, txs[0])
	require.Error(t, err)
}

func TestConcurrentTransfersFromSameAccount(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	alice := newFundedKey(t, l)
	mint := newMint(t, l, alice, 0)
	from := newTokenAccount(t, l, alice, mint)
	to := newTokenAccount(t, l, alice, mint)

	_, err := l.MintTo(ctx, mint, from, alice, 10)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	committed := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, _ := l.SubmitInstructions(
				ctx, []solana.PrivateKey{alice},
				NewTransferInstruction(from, to, alice.PublicKey(), 1),
			)
			if receipt != nil && receipt.IsCommitted() {
				mu.Lock()
				committed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 10, committed)
	require.Zero(t, tokenBalance(t, l, from))
	require.Equal(t, uint64(10), tokenBalance(t, l, to))
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)
	from := newFundedKey(t, l)
	to := newKey(t).PublicKey()

	_, err := l.SubmitInstructions(
		ctx, []solana.PrivateKey{from},
		NewTransferLamportsInstruction(from.PublicKey(), to, 1),
	)
	require.NoError(t, err)
	_, err = l.SubmitInstructions(
		ctx, []solana.PrivateKey{from},
		NewTransferLamportsInstruction(from.PublicKey(), to, 2*airdropLamports),
	)
	require.Error(t, err)
	_, err = l.SubmitInstructions(
		ctx, nil, NewTransferLamportsInstruction(from.PublicKey(), to, 1),
	)
	require.Error(t, err)

	require.Equal(t, float64(1), testutil.ToFloat64(
		l.metrics.transactions.WithLabelValues(statusCommitted),
	))
	require.Equal(t, float64(1), testutil.ToFloat64(
		l.metrics.transactions.WithLabelValues(statusFailed),
	))
	require.Equal(t, float64(1), testutil.ToFloat64(
		l.metrics.transactions.WithLabelValues(statusRejected),
	))
	require.Equal(t, float64(2), testutil.ToFloat64(
		l.metrics.instructions.WithLabelValues("system"),
	))
}
