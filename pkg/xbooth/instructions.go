// Package xbooth builds the instructions of the exchange booth program.
package xbooth

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// BoothAddress returns the address of the booth of admin for the given pair
// of assets.
func BoothAddress(
	programID, admin, assetA, assetB solana.PublicKey,
) (solana.PublicKey, error) {
	d, err := domain.DeriveBoothAddress(programID, admin, assetA, assetB)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return d.Address, nil
}

// VaultAddress returns the address of the vault of the booth holding asset.
func VaultAddress(
	programID, admin, asset, booth solana.PublicKey,
) (solana.PublicKey, error) {
	d, err := domain.DeriveVaultAddress(programID, admin, asset, booth)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return d.Address, nil
}

// Booth groups the addresses of a booth and of its vaults.
type Booth struct {
	ProgramID solana.PublicKey
	Admin     solana.PublicKey
	AssetA    solana.PublicKey
	AssetB    solana.PublicKey
	Address   solana.PublicKey
	VaultA    solana.PublicKey
	VaultB    solana.PublicKey
}

// NewBooth derives the addresses of the booth of admin for the given pair
// of assets.
func NewBooth(programID, admin, assetA, assetB solana.PublicKey) (*Booth, error) {
	address, err := BoothAddress(programID, admin, assetA, assetB)
	if err != nil {
		return nil, err
	}
	vaultA, err := VaultAddress(programID, admin, assetA, address)
	if err != nil {
		return nil, err
	}
	vaultB, err := VaultAddress(programID, admin, assetB, address)
	if err != nil {
		return nil, err
	}

	return &Booth{
		ProgramID: programID,
		Admin:     admin,
		AssetA:    assetA,
		AssetB:    assetB,
		Address:   address,
		VaultA:    vaultA,
		VaultB:    vaultB,
	}, nil
}

// VaultFor returns the vault holding the given asset, if any.
func (b *Booth) VaultFor(asset solana.PublicKey) (solana.PublicKey, bool) {
	switch {
	case asset.Equals(b.AssetA):
		return b.VaultA, true
	case asset.Equals(b.AssetB):
		return b.VaultB, true
	default:
		return solana.PublicKey{}, false
	}
}

// NewInitializeInstruction returns the instruction that creates the booth and
// its vaults. The admin pays for the new accounts.
func (b *Booth) NewInitializeInstruction() ports.Instruction {
	return ports.Instruction{
		ProgramID: b.ProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(b.Address, true, false),
			solana.NewAccountMeta(b.Admin, true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
			solana.NewAccountMeta(b.VaultA, true, false),
			solana.NewAccountMeta(b.VaultB, true, false),
			solana.NewAccountMeta(b.AssetA, false, false),
			solana.NewAccountMeta(b.AssetB, false, false),
			solana.NewAccountMeta(solana.TokenProgramID, false, false),
			solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
		},
		Data: domain.BoothInstruction{
			Type: domain.InstructionTypeInitialize,
		}.Marshal(),
	}
}

// NewDepositInstruction returns the instruction that moves amount from the
// admin's token account into the vault of the same asset.
func (b *Booth) NewDepositInstruction(
	tokenAccount, vault solana.PublicKey, amount decimal.Decimal,
) ports.Instruction {
	return b.vaultInstruction(
		domain.InstructionTypeDeposit, tokenAccount, vault, amount,
	)
}

// NewWithdrawInstruction returns the instruction that moves amount from the
// vault into the given token account of the same asset.
func (b *Booth) NewWithdrawInstruction(
	tokenAccount, vault solana.PublicKey, amount decimal.Decimal,
) ports.Instruction {
	return b.vaultInstruction(
		domain.InstructionTypeWithdraw, tokenAccount, vault, amount,
	)
}

// NewExchangeInstruction returns the instruction that pays amount of asset A
// from paying into vault A and receives its worth of asset B from vault B into
// receiving.
func (b *Booth) NewExchangeInstruction(
	receiving, paying solana.PublicKey, amount decimal.Decimal,
) ports.Instruction {
	return ports.Instruction{
		ProgramID: b.ProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(b.Address, false, false),
			solana.NewAccountMeta(b.Admin, false, true),
			solana.NewAccountMeta(receiving, true, false),
			solana.NewAccountMeta(paying, true, false),
			solana.NewAccountMeta(b.VaultA, true, false),
			solana.NewAccountMeta(b.VaultB, true, false),
			solana.NewAccountMeta(b.AssetA, false, false),
			solana.NewAccountMeta(b.AssetB, false, false),
			solana.NewAccountMeta(solana.TokenProgramID, false, false),
		},
		Data: domain.BoothInstruction{
			Type:   domain.InstructionTypeExchange,
			Amount: amount,
		}.Marshal(),
	}
}

func (b *Booth) vaultInstruction(
	ixType domain.InstructionType, tokenAccount, vault solana.PublicKey,
	amount decimal.Decimal,
) ports.Instruction {
	return ports.Instruction{
		ProgramID: b.ProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(b.Address, true, false),
			solana.NewAccountMeta(b.Admin, false, true),
			solana.NewAccountMeta(tokenAccount, true, false),
			solana.NewAccountMeta(vault, true, false),
			solana.NewAccountMeta(b.AssetA, false, false),
			solana.NewAccountMeta(b.AssetB, false, false),
			solana.NewAccountMeta(solana.TokenProgramID, false, false),
		},
		Data: domain.BoothInstruction{
			Type:   ixType,
			Amount: amount,
		}.Marshal(),
	}
}
