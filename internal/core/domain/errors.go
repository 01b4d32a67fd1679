package domain

import (
	"errors"
	"fmt"
)

// BoothError is a failure of the booth program. Every kind carries a stable
// numeric code reported to the caller as custom program error.
type BoothError struct {
	Code    uint32
	Message string
}

func (e *BoothError) Error() string {
	return e.Message
}

var (
	// ErrAccountIsNotSigner is returned when a required signer did not sign
	ErrAccountIsNotSigner = &BoothError{0, "account is not signer"}
	// ErrAccountIsNotWritable is returned when an account that is mutated is
	// not marked writable
	ErrAccountIsNotWritable = &BoothError{1, "account is not writable"}
	// ErrInvalidAccountAddress is returned when the booth account does not
	// match its derived address
	ErrInvalidAccountAddress = &BoothError{2, "invalid account address"}
	// ErrInvalidVaultAccount is returned when a vault does not match its
	// derived address or booth binding
	ErrInvalidVaultAccount = &BoothError{3, "invalid vault account"}
	// ErrExchangeBoothNotWritable is returned when the booth account is not
	// marked writable by an operation that requires it
	ErrExchangeBoothNotWritable = &BoothError{4, "exchange booth account is not writable"}
	// ErrAccountNotInitialized is returned when the booth record or a token
	// account has not been initialized yet
	ErrAccountNotInitialized = &BoothError{5, "account is not initialized"}
	// ErrInvalidOwner is returned when the authority is not the booth admin
	ErrInvalidOwner = &BoothError{6, "authority is not the exchange booth admin"}
	// ErrInvalidMint is returned when an asset is not an initialized mint or a
	// token account holds a different asset than expected
	ErrInvalidMint = &BoothError{7, "invalid mint"}
	// ErrUniqueMintAccounts is returned when both legs of an exchange, or both
	// assets of a booth, are the same asset
	ErrUniqueMintAccounts = &BoothError{8, "token accounts must be of different mints"}
	// ErrInsufficientFunds is returned when the source of a transfer holds less
	// than the converted amount
	ErrInsufficientFunds = &BoothError{9, "insufficient funds"}
	// ErrInvalidSPLTokenAccount is returned when an account does not decode
	// as a token account
	ErrInvalidSPLTokenAccount = &BoothError{10, "invalid token account"}
	// ErrInvalidAmount is returned when an amount cannot be expressed in base
	// units of the asset
	ErrInvalidAmount = &BoothError{11, "invalid amount"}
)

// Host errors are raised by the ledger and its built-in programs rather than
// by the booth program itself and therefore carry no booth error code.
var (
	ErrInvalidInstructionData   = errors.New("invalid instruction data")
	ErrNotEnoughAccountKeys     = errors.New("not enough account keys")
	ErrIncorrectProgramID       = errors.New("incorrect program id")
	ErrAccountAlreadyInUse      = errors.New("account already in use")
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrReadonlyAccountModified  = errors.New("instruction modified data of a read-only account")
	ErrInsufficientLamports     = errors.New("insufficient lamports")
	ErrInvalidSignerSeeds       = errors.New("signer seeds do not match authority")
)

// BoothErrorCode returns the code of the booth error wrapped by err, if any.
func BoothErrorCode(err error) (uint32, bool) {
	var boothErr *BoothError
	if errors.As(err, &boothErr) {
		return boothErr.Code, true
	}
	return 0, false
}

// BoothErrorFromCode returns the booth error kind with the given code.
func BoothErrorFromCode(code uint32) (*BoothError, error) {
	for _, e := range boothErrors {
		if e.Code == code {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown booth error code %d", code)
}

var boothErrors = []*BoothError{
	ErrAccountIsNotSigner,
	ErrAccountIsNotWritable,
	ErrInvalidAccountAddress,
	ErrInvalidVaultAccount,
	ErrExchangeBoothNotWritable,
	ErrAccountNotInitialized,
	ErrInvalidOwner,
	ErrInvalidMint,
	ErrUniqueMintAccounts,
	ErrInsufficientFunds,
	ErrInvalidSPLTokenAccount,
	ErrInvalidAmount,
}
