package application

import (
	"github.com/tdex-network/xbooth/internal/core/domain"
)

// Initialize creates the booth of the payer for the pair of assets along with
// its two vaults.
//
// Accounts:
//  0. booth (writable)
//  1. payer (signer)
//  2. funding program
//  3. vault A (writable)
//  4. vault B (writable)
//  5. asset A
//  6. asset B
//  7. token program
//  8. rent resource
func Initialize(c *InstructionContext) error {
	accounts, err := c.accounts(9)
	if err != nil {
		return err
	}
	booth, payer, funding := accounts[0], accounts[1], accounts[2]
	vaultA, vaultB := accounts[3], accounts[4]
	assetA, assetB := accounts[5], accounts[6]
	token, rent := accounts[7], accounts[8]

	if err := validateSigner(payer, "payer"); err != nil {
		return err
	}
	if err := validateBoothWritable(booth); err != nil {
		return err
	}
	if err := validateWritable(vaultA, "vault A"); err != nil {
		return err
	}
	if err := validateWritable(vaultB, "vault B"); err != nil {
		return err
	}

	if err := validateProgramAccount(
		funding, c.Funding.ProgramID(), "funding program",
	); err != nil {
		return err
	}
	if err := validateProgramAccount(
		token, c.Token.ProgramID(), "token program",
	); err != nil {
		return err
	}
	if err := validateProgramAccount(
		rent, c.Funding.RentID(), "rent resource",
	); err != nil {
		return err
	}

	if _, err := loadMint(c.Token, assetA); err != nil {
		return err
	}
	if _, err := loadMint(c.Token, assetB); err != nil {
		return err
	}
	if err := validateUniqueMints(assetA.Key, assetB.Key); err != nil {
		return err
	}

	boothDerivation, err := verifyBoothAddress(
		c.ProgramID, booth, payer.Key, assetA.Key, assetB.Key,
	)
	if err != nil {
		return err
	}
	vaultADerivation, err := verifyVaultAddress(
		c.ProgramID, vaultA, payer.Key, assetA.Key, booth.Key,
	)
	if err != nil {
		return err
	}
	vaultBDerivation, err := verifyVaultAddress(
		c.ProgramID, vaultB, payer.Key, assetB.Key, booth.Key,
	)
	if err != nil {
		return err
	}

	if err := c.Funding.CreateAccount(
		payer, booth, domain.BoothAccountSize, c.ProgramID,
		boothDerivation.SignerSeeds(),
	); err != nil {
		return err
	}

	vaults := []struct {
		account    int
		asset      int
		derivation domain.Derivation
	}{
		{3, 5, vaultADerivation},
		{4, 6, vaultBDerivation},
	}
	for _, v := range vaults {
		if err := c.Funding.CreateAccount(
			payer, accounts[v.account], c.Token.CustodyAccountSize(),
			c.Token.ProgramID(), v.derivation.SignerSeeds(),
		); err != nil {
			return err
		}
		if err := c.Token.InitializeCustodyAccount(
			accounts[v.account], accounts[v.asset], booth,
		); err != nil {
			return err
		}
	}

	record := domain.Booth{
		Admin:  payer.Key,
		VaultA: vaultA.Key,
		VaultB: vaultB.Key,
	}
	copy(booth.Data, record.Marshal())
	return nil
}
