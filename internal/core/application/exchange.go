package application

import (
	"github.com/shopspring/decimal"
	"github.com/tdex-network/xbooth/pkg/mathutil"
)

// Exchange swaps amount of asset A, paid by the admin into vault A, for
// amount×rate of asset B, paid out of vault B into the receiving account.
//
// Accounts:
//  0. booth
//  1. authority (signer)
//  2. receiving token account of asset B (writable)
//  3. paying token account of asset A (writable)
//  4. vault A (writable)
//  5. vault B (writable)
//  6. asset A
//  7. asset B
//  8. token program
func Exchange(c *InstructionContext, amount decimal.Decimal) error {
	accounts, err := c.accounts(9)
	if err != nil {
		return err
	}
	boothAccount, authority := accounts[0], accounts[1]
	receiving, paying := accounts[2], accounts[3]
	vaultAAccount, vaultBAccount := accounts[4], accounts[5]
	assetA, assetB, token := accounts[6], accounts[7], accounts[8]

	if err := validateSigner(authority, "authority"); err != nil {
		return err
	}
	if err := validateWritable(receiving, "receiving account"); err != nil {
		return err
	}
	if err := validateWritable(paying, "paying account"); err != nil {
		return err
	}
	if err := validateWritable(vaultAAccount, "vault A"); err != nil {
		return err
	}
	if err := validateWritable(vaultBAccount, "vault B"); err != nil {
		return err
	}
	if err := validateProgramAccount(
		token, c.Token.ProgramID(), "token program",
	); err != nil {
		return err
	}

	payingCustody, err := loadCustodyAccount(c.Token, paying, "paying account")
	if err != nil {
		return err
	}
	receivingCustody, err := loadCustodyAccount(
		c.Token, receiving, "receiving account",
	)
	if err != nil {
		return err
	}
	if err := validateMint(payingCustody, assetA.Key, "paying account"); err != nil {
		return err
	}
	if err := validateMint(receivingCustody, assetB.Key, "receiving account"); err != nil {
		return err
	}
	if err := validateUniqueMints(payingCustody.Mint, receivingCustody.Mint); err != nil {
		return err
	}

	booth, err := loadBooth(c.ProgramID, boothAccount)
	if err != nil {
		return err
	}
	boothDerivation, err := verifyBoothAddress(
		c.ProgramID, boothAccount, booth.Admin, assetA.Key, assetB.Key,
	)
	if err != nil {
		return err
	}
	if err := validateAdmin(booth, authority); err != nil {
		return err
	}

	if err := validateVaultBinding(booth, vaultAAccount, true); err != nil {
		return err
	}
	if err := validateVaultBinding(booth, vaultBAccount, false); err != nil {
		return err
	}
	if _, err := verifyVaultAddress(
		c.ProgramID, vaultAAccount, booth.Admin, assetA.Key, boothAccount.Key,
	); err != nil {
		return err
	}
	if _, err := verifyVaultAddress(
		c.ProgramID, vaultBAccount, booth.Admin, assetB.Key, boothAccount.Key,
	); err != nil {
		return err
	}
	if _, err := loadVault(
		c.Token, vaultAAccount, boothAccount.Key, assetA.Key,
	); err != nil {
		return err
	}
	vaultB, err := loadVault(c.Token, vaultBAccount, boothAccount.Key, assetB.Key)
	if err != nil {
		return err
	}

	mintA, err := loadMint(c.Token, assetA)
	if err != nil {
		return err
	}
	mintB, err := loadMint(c.Token, assetB)
	if err != nil {
		return err
	}
	amountA, err := toBaseUnits(amount, mintA.Decimals)
	if err != nil {
		return err
	}
	amountB, err := toBaseUnits(
		mathutil.ApplyRate(amount, c.ExchangeRate), mintB.Decimals,
	)
	if err != nil {
		return err
	}

	if err := validateBalance(payingCustody, amountA, "paying account"); err != nil {
		return err
	}
	if err := validateBalance(vaultB, amountB, "vault B"); err != nil {
		return err
	}

	if err := c.Token.Transfer(paying, vaultAAccount, authority, amountA); err != nil {
		return err
	}
	return c.Token.TransferSigned(
		vaultBAccount, receiving, boothAccount, amountB,
		boothDerivation.SignerSeeds(),
	)
}
