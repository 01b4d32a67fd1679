package ledger

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// SubmitInstructions builds a transaction out of the given instructions,
// signs it with every signer and submits it.
func (l *Ledger) SubmitInstructions(
	ctx context.Context, signers []solana.PrivateKey,
	instructions ...ports.Instruction,
) (*domain.Receipt, error) {
	tx := NewTransaction(instructions...)
	if err := tx.Sign(signers...); err != nil {
		return nil, err
	}
	return l.Submit(ctx, tx)
}

// CreateMint creates a new mint at the address of the given key, paid by
// payer.
func (l *Ledger) CreateMint(
	ctx context.Context, payer, mint solana.PrivateKey,
	authority solana.PublicKey, decimals uint8,
) (*domain.Receipt, error) {
	address := mint.PublicKey()
	return l.SubmitInstructions(
		ctx, []solana.PrivateKey{payer, mint},
		NewCreateAccountInstruction(
			payer.PublicKey(), address,
			l.rent.MinimumBalance(domain.AssetDescriptorSize),
			domain.AssetDescriptorSize, solana.TokenProgramID,
		),
		NewInitializeMintInstruction(address, authority, decimals),
	)
}

// CreateTokenAccount creates a new token account of mint at the address of
// the given key, paid by payer and owned by owner.
func (l *Ledger) CreateTokenAccount(
	ctx context.Context, payer, account solana.PrivateKey,
	mint, owner solana.PublicKey,
) (*domain.Receipt, error) {
	address := account.PublicKey()
	return l.SubmitInstructions(
		ctx, []solana.PrivateKey{payer, account},
		NewCreateAccountInstruction(
			payer.PublicKey(), address,
			l.rent.MinimumBalance(domain.CustodyAccountSize),
			domain.CustodyAccountSize, solana.TokenProgramID,
		),
		NewInitializeAccountInstruction(address, mint, owner),
	)
}

// MintTo mints amount base units of mint into destination.
func (l *Ledger) MintTo(
	ctx context.Context, mint, destination solana.PublicKey,
	authority solana.PrivateKey, amount uint64,
) (*domain.Receipt, error) {
	return l.SubmitInstructions(
		ctx, []solana.PrivateKey{authority},
		NewMintToInstruction(mint, destination, authority.PublicKey(), amount),
	)
}

// GetCustodyAccount returns the token account at the given address.
func (l *Ledger) GetCustodyAccount(
	ctx context.Context, address solana.PublicKey,
) (*domain.CustodyAccount, error) {
	account, err := l.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	if !account.Owner.Equals(solana.TokenProgramID) {
		return nil, fmt.Errorf("%s is not a token account", address)
	}
	custody := &domain.CustodyAccount{}
	if err := custody.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return custody, nil
}

// GetAssetDescriptor returns the mint at the given address.
func (l *Ledger) GetAssetDescriptor(
	ctx context.Context, address solana.PublicKey,
) (*domain.AssetDescriptor, error) {
	account, err := l.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	if !account.Owner.Equals(solana.TokenProgramID) {
		return nil, fmt.Errorf("%s is not a mint", address)
	}
	mint := &domain.AssetDescriptor{}
	if err := mint.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return mint, nil
}

// GetBooth returns the booth record at the given address.
func (l *Ledger) GetBooth(
	ctx context.Context, programID, address solana.PublicKey,
) (*domain.Booth, error) {
	account, err := l.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	if !account.Owner.Equals(programID) {
		return nil, domain.ErrAccountNotInitialized
	}
	booth := &domain.Booth{}
	if err := booth.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return booth, nil
}
