package ledger

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/xbooth/internal/core/ports"
	"github.com/tdex-network/xbooth/internal/infrastructure/storage/db/inmemory"
)

const airdropLamports = 1_000_000_000

var ctx = context.Background()

func newTestLedger(t *testing.T, programs ...ports.Program) *Ledger {
	l, err := NewLedger(Config{
		Repositories: inmemory.NewRepoManager(),
		Programs:     programs,
	})
	require.NoError(t, err)
	return l
}

func newKey(t *testing.T) solana.PrivateKey {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

func newFundedKey(t *testing.T, l *Ledger) solana.PrivateKey {
	key := newKey(t)
	require.NoError(t, l.Airdrop(ctx, key.PublicKey(), airdropLamports))
	return key
}

func newMint(
	t *testing.T, l *Ledger, authority solana.PrivateKey, decimals uint8,
) solana.PublicKey {
	mint := newKey(t)
	_, err := l.CreateMint(ctx, authority, mint, authority.PublicKey(), decimals)
	require.NoError(t, err)
	return mint.PublicKey()
}

func newTokenAccount(
	t *testing.T, l *Ledger, owner solana.PrivateKey, mint solana.PublicKey,
) solana.PublicKey {
	account := newKey(t)
	_, err := l.CreateTokenAccount(ctx, owner, account, mint, owner.PublicKey())
	require.NoError(t, err)
	return account.PublicKey()
}

func tokenBalance(t *testing.T, l *Ledger, account solana.PublicKey) uint64 {
	custody, err := l.GetCustodyAccount(ctx, account)
	require.NoError(t, err)
	return custody.Amount
}

func lamports(t *testing.T, l *Ledger, account solana.PublicKey) uint64 {
	a, err := l.GetAccount(ctx, account)
	require.NoError(t, err)
	return a.Lamports
}

// funcProgram is a program whose behavior is defined by the test.
type funcProgram struct {
	id      solana.PublicKey
	process func(inv ports.Invocation, data []byte) error
}

func (p funcProgram) ID() solana.PublicKey {
	return p.id
}

func (p funcProgram) Process(inv ports.Invocation, data []byte) error {
	return p.process(inv, data)
}
