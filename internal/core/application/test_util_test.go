package application_test

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/xbooth/internal/core/application"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
	"github.com/tdex-network/xbooth/internal/infrastructure/ledger"
	"github.com/tdex-network/xbooth/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/xbooth/pkg/xbooth"
)

const (
	airdropLamports = 10_000_000_000
	decimals        = 9
	oneToken        = 1_000_000_000
)

var ctx = context.Background()

// fixture is a ledger with the booth program registered, an admin holding
// 100 tokens of both assets X and Y and the booth of the admin for the pair.
type fixture struct {
	ledger    *ledger.Ledger
	programID solana.PublicKey
	admin     solana.PrivateKey
	mintX     solana.PublicKey
	mintY     solana.PublicKey
	accountX  solana.PublicKey
	accountY  solana.PublicKey
	booth     *xbooth.Booth
}

func newFixture(t *testing.T, rate string) *fixture {
	programID := newKey(t).PublicKey()
	program, err := application.NewBoothProgram(programID, application.Params{
		ExchangeRate: decimal.RequireFromString(rate),
	})
	require.NoError(t, err)

	l, err := ledger.NewLedger(ledger.Config{
		Repositories: inmemory.NewRepoManager(),
		Programs:     []ports.Program{program},
	})
	require.NoError(t, err)

	f := &fixture{ledger: l, programID: programID}
	f.admin = f.newFundedKey(t)
	f.mintX = f.newMint(t, f.admin)
	f.mintY = f.newMint(t, f.admin)
	f.accountX = f.newTokenAccount(t, f.admin, f.mintX)
	f.accountY = f.newTokenAccount(t, f.admin, f.mintY)
	f.mintTo(t, f.mintX, f.accountX, 100*oneToken)
	f.mintTo(t, f.mintY, f.accountY, 100*oneToken)

	f.booth, err = xbooth.NewBooth(programID, f.admin.PublicKey(), f.mintX, f.mintY)
	require.NoError(t, err)
	return f
}

func (f *fixture) initialize(t *testing.T) {
	_, err := f.submit(f.admin, f.booth.NewInitializeInstruction())
	require.NoError(t, err)
}

func (f *fixture) submit(
	signer solana.PrivateKey, ixs ...ports.Instruction,
) (*domain.Receipt, error) {
	return f.ledger.SubmitInstructions(ctx, []solana.PrivateKey{signer}, ixs...)
}

func (f *fixture) newFundedKey(t *testing.T) solana.PrivateKey {
	key := newKey(t)
	require.NoError(t, f.ledger.Airdrop(ctx, key.PublicKey(), airdropLamports))
	return key
}

func (f *fixture) newMint(t *testing.T, authority solana.PrivateKey) solana.PublicKey {
	mint := newKey(t)
	_, err := f.ledger.CreateMint(
		ctx, authority, mint, authority.PublicKey(), decimals,
	)
	require.NoError(t, err)
	return mint.PublicKey()
}

func (f *fixture) newTokenAccount(
	t *testing.T, owner solana.PrivateKey, mint solana.PublicKey,
) solana.PublicKey {
	account := newKey(t)
	_, err := f.ledger.CreateTokenAccount(
		ctx, owner, account, mint, owner.PublicKey(),
	)
	require.NoError(t, err)
	return account.PublicKey()
}

func (f *fixture) mintTo(
	t *testing.T, mint, destination solana.PublicKey, amount uint64,
) {
	_, err := f.ledger.MintTo(ctx, mint, destination, f.admin, amount)
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, account solana.PublicKey) uint64 {
	custody, err := f.ledger.GetCustodyAccount(ctx, account)
	require.NoError(t, err)
	return custody.Amount
}

func newKey(t *testing.T) solana.PrivateKey {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
