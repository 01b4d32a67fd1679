package application

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
	"github.com/tdex-network/xbooth/pkg/mathutil"
)

func validateSigner(account *ports.AccountInfo, name string) error {
	if !account.IsSigner {
		log.Debugf("%s must be signer", name)
		return domain.ErrAccountIsNotSigner
	}
	return nil
}

func validateWritable(account *ports.AccountInfo, name string) error {
	if !account.IsWritable {
		log.Debugf("%s must be writable", name)
		return domain.ErrAccountIsNotWritable
	}
	return nil
}

func validateBoothWritable(account *ports.AccountInfo) error {
	if !account.IsWritable {
		log.Debug("exchange booth must be writable")
		return domain.ErrExchangeBoothNotWritable
	}
	return nil
}

func validateProgramAccount(
	account *ports.AccountInfo, programID solana.PublicKey, name string,
) error {
	if !account.Key.Equals(programID) {
		log.Debugf("%s must be %s, got %s", name, programID, account.Key)
		return domain.ErrIncorrectProgramID
	}
	return nil
}

func verifyBoothAddress(
	programID solana.PublicKey, booth *ports.AccountInfo,
	admin, mintA, mintB solana.PublicKey,
) (domain.Derivation, error) {
	derivation, err := domain.VerifyAddress(
		programID, booth.Key, domain.BoothSeeds(admin, mintA, mintB),
	)
	if err != nil {
		log.WithError(err).Debug("exchange booth does not match derived address")
		return domain.Derivation{}, domain.ErrInvalidAccountAddress
	}
	return derivation, nil
}

func verifyVaultAddress(
	programID solana.PublicKey, vault *ports.AccountInfo,
	admin, mint, booth solana.PublicKey,
) (domain.Derivation, error) {
	derivation, err := domain.VerifyAddress(
		programID, vault.Key, domain.VaultSeeds(admin, mint, booth),
	)
	if err != nil {
		log.WithError(err).Debugf("vault for mint %s does not match derived address", mint)
		return domain.Derivation{}, domain.ErrInvalidVaultAccount
	}
	return derivation, nil
}

// findVault returns whether the given vault is the booth's vault for asset A
// or for asset B, along with its derivation.
func findVault(
	programID solana.PublicKey, vault *ports.AccountInfo,
	admin, mintA, mintB, booth solana.PublicKey,
) (bool, domain.Derivation, error) {
	if d, err := domain.VerifyAddress(
		programID, vault.Key, domain.VaultSeeds(admin, mintA, booth),
	); err == nil {
		return true, d, nil
	}
	if d, err := domain.VerifyAddress(
		programID, vault.Key, domain.VaultSeeds(admin, mintB, booth),
	); err == nil {
		return false, d, nil
	}
	log.Debug("vault does not match any derived vault address of the booth")
	return false, domain.Derivation{}, domain.ErrInvalidVaultAccount
}

func loadBooth(
	programID solana.PublicKey, account *ports.AccountInfo,
) (*domain.Booth, error) {
	if !account.Owner.Equals(programID) {
		log.Debug("exchange booth is not owned by the program")
		return nil, domain.ErrAccountNotInitialized
	}
	booth := &domain.Booth{}
	if err := booth.Unmarshal(account.Data); err != nil {
		log.Debug("exchange booth is not initialized")
		return nil, err
	}
	return booth, nil
}

func validateAdmin(booth *domain.Booth, authority *ports.AccountInfo) error {
	if !booth.Admin.Equals(authority.Key) {
		log.Debugf("authority %s is not the booth admin", authority.Key)
		return domain.ErrInvalidOwner
	}
	return nil
}

func validateVaultBinding(
	booth *domain.Booth, vault *ports.AccountInfo, isA bool,
) error {
	if !booth.VaultFor(isA).Equals(vault.Key) {
		log.Debugf("vault %s is not bound to the booth", vault.Key)
		return domain.ErrInvalidVaultAccount
	}
	return nil
}

func loadCustodyAccount(
	token ports.TokenService, account *ports.AccountInfo, name string,
) (*domain.CustodyAccount, error) {
	custody, err := token.DecodeCustodyAccount(account)
	if err != nil {
		log.WithError(err).Debugf("%s is not a token account", name)
		return nil, domain.ErrInvalidSPLTokenAccount
	}
	if !custody.IsInitialized() {
		log.Debugf("%s is not initialized", name)
		return nil, domain.ErrAccountNotInitialized
	}
	return custody, nil
}

func loadVault(
	token ports.TokenService, account *ports.AccountInfo,
	booth, mint solana.PublicKey,
) (*domain.CustodyAccount, error) {
	vault, err := loadCustodyAccount(token, account, "vault")
	if err != nil {
		return nil, err
	}
	if !vault.Owner.Equals(booth) {
		log.Debugf("vault %s is not owned by the booth", account.Key)
		return nil, domain.ErrInvalidVaultAccount
	}
	if !vault.Mint.Equals(mint) {
		log.Debugf("vault %s does not hold mint %s", account.Key, mint)
		return nil, domain.ErrInvalidVaultAccount
	}
	return vault, nil
}

func loadMint(
	token ports.TokenService, account *ports.AccountInfo,
) (*domain.AssetDescriptor, error) {
	mint, err := token.DecodeAssetDescriptor(account)
	if err != nil || !mint.IsInitialized {
		log.Debugf("%s is not an initialized mint", account.Key)
		return nil, domain.ErrInvalidMint
	}
	return mint, nil
}

func validateMint(custody *domain.CustodyAccount, mint solana.PublicKey, name string) error {
	if !custody.Mint.Equals(mint) {
		log.Debugf("%s mint must be %s, got %s", name, mint, custody.Mint)
		return domain.ErrInvalidMint
	}
	return nil
}

func validateUniqueMints(a, b solana.PublicKey) error {
	if a.Equals(b) {
		log.Debug("mints must be different")
		return domain.ErrUniqueMintAccounts
	}
	return nil
}

func validateBalance(custody *domain.CustodyAccount, amount uint64, name string) error {
	if custody.Amount < amount {
		log.Debugf(
			"%s balance %d is lower than requested amount %d",
			name, custody.Amount, amount,
		)
		return domain.ErrInsufficientFunds
	}
	return nil
}

func toBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	units, err := mathutil.ToBaseUnits(amount, decimals)
	if err != nil {
		log.WithError(err).Debugf("invalid amount %s", amount)
		return 0, domain.ErrInvalidAmount
	}
	return units, nil
}
