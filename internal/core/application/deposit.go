package application

import (
	"github.com/shopspring/decimal"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// Deposit moves amount from the admin's token account into the booth vault
// holding the same asset.
//
// Accounts:
//  0. booth (writable)
//  1. authority (signer)
//  2. source token account (writable)
//  3. vault (writable)
//  4. asset A
//  5. asset B
//  6. token program
func Deposit(c *InstructionContext, amount decimal.Decimal) error {
	op, err := newVaultOperation(c)
	if err != nil {
		return err
	}

	units, err := toBaseUnits(amount, op.mint.Decimals)
	if err != nil {
		return err
	}
	if err := validateBalance(op.tokenAccount, units, "token account"); err != nil {
		return err
	}

	return c.Token.Transfer(
		op.accounts.tokenAccount, op.accounts.vault, op.accounts.authority, units,
	)
}

// Withdraw moves amount from the booth vault into the given token account of
// the same asset. The transfer is authorized by the booth derivation proof.
//
// Accounts are the same of Deposit, the token account being the destination.
func Withdraw(c *InstructionContext, amount decimal.Decimal) error {
	op, err := newVaultOperation(c)
	if err != nil {
		return err
	}

	units, err := toBaseUnits(amount, op.mint.Decimals)
	if err != nil {
		return err
	}
	if err := validateBalance(op.vault, units, "vault"); err != nil {
		return err
	}

	return c.Token.TransferSigned(
		op.accounts.vault, op.accounts.tokenAccount, op.accounts.booth, units,
		op.booth.SignerSeeds(),
	)
}

type vaultOperationAccounts struct {
	booth        *ports.AccountInfo
	authority    *ports.AccountInfo
	tokenAccount *ports.AccountInfo
	vault        *ports.AccountInfo
	assetA       *ports.AccountInfo
	assetB       *ports.AccountInfo
	token        *ports.AccountInfo
}

// vaultOperation is the validated state shared by deposits and withdrawals.
type vaultOperation struct {
	accounts     vaultOperationAccounts
	booth        domain.Derivation
	vault        *domain.CustodyAccount
	tokenAccount *domain.CustodyAccount
	mint         *domain.AssetDescriptor
}

func newVaultOperation(c *InstructionContext) (*vaultOperation, error) {
	list, err := c.accounts(7)
	if err != nil {
		return nil, err
	}
	accounts := vaultOperationAccounts{
		booth:        list[0],
		authority:    list[1],
		tokenAccount: list[2],
		vault:        list[3],
		assetA:       list[4],
		assetB:       list[5],
		token:        list[6],
	}

	if err := validateSigner(accounts.authority, "authority"); err != nil {
		return nil, err
	}
	if err := validateBoothWritable(accounts.booth); err != nil {
		return nil, err
	}
	if err := validateWritable(accounts.tokenAccount, "token account"); err != nil {
		return nil, err
	}
	if err := validateWritable(accounts.vault, "vault"); err != nil {
		return nil, err
	}
	if err := validateProgramAccount(
		accounts.token, c.Token.ProgramID(), "token program",
	); err != nil {
		return nil, err
	}

	boothDerivation, err := verifyBoothAddress(
		c.ProgramID, accounts.booth,
		accounts.authority.Key, accounts.assetA.Key, accounts.assetB.Key,
	)
	if err != nil {
		return nil, err
	}
	isA, _, err := findVault(
		c.ProgramID, accounts.vault, accounts.authority.Key,
		accounts.assetA.Key, accounts.assetB.Key, accounts.booth.Key,
	)
	if err != nil {
		return nil, err
	}

	booth, err := loadBooth(c.ProgramID, accounts.booth)
	if err != nil {
		return nil, err
	}
	if err := validateAdmin(booth, accounts.authority); err != nil {
		return nil, err
	}
	if err := validateVaultBinding(booth, accounts.vault, isA); err != nil {
		return nil, err
	}

	asset := accounts.assetB
	if isA {
		asset = accounts.assetA
	}
	vault, err := loadVault(c.Token, accounts.vault, accounts.booth.Key, asset.Key)
	if err != nil {
		return nil, err
	}
	tokenAccount, err := loadCustodyAccount(
		c.Token, accounts.tokenAccount, "token account",
	)
	if err != nil {
		return nil, err
	}
	if err := validateMint(tokenAccount, vault.Mint, "token account"); err != nil {
		return nil, err
	}
	mint, err := loadMint(c.Token, asset)
	if err != nil {
		return nil, err
	}

	return &vaultOperation{
		accounts:     accounts,
		booth:        boothDerivation,
		vault:        vault,
		tokenAccount: tokenAccount,
		mint:         mint,
	}, nil
}
