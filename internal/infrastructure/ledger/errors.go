package ledger

import "errors"

var (
	// ErrNoInstructions is returned when submitting an empty transaction.
	ErrNoInstructions = errors.New("transaction has no instructions")
	// ErrUnknownProgram is returned when an instruction is addressed to a
	// program not registered into the ledger.
	ErrUnknownProgram = errors.New("unknown program")
	// ErrMissingAccount is returned when a cross-program invocation
	// references an account not passed to the caller.
	ErrMissingAccount = errors.New("account not found in the instruction accounts")
	// ErrPrivilegeEscalation is returned when a cross-program invocation marks
	// writable an account that is read-only for the caller.
	ErrPrivilegeEscalation = errors.New("cross-program invocation with unauthorized writable account")
	// ErrMaxInvokeDepth is returned when nested cross-program invocations go
	// deeper than the ledger allows.
	ErrMaxInvokeDepth = errors.New("cross-program invocation exceeds max depth")
	// ErrModifiedProgramID is returned when a program reassigns an account it
	// does not own.
	ErrModifiedProgramID = errors.New("instruction changed the owner of an account it does not own")
	// ErrExternalAccountDataModified is returned when a program writes the data
	// of an account owned by another program.
	ErrExternalAccountDataModified = errors.New("instruction modified data of an account it does not own")
	// ErrExternalAccountLamportSpend is returned when a program debits an
	// account owned by another program.
	ErrExternalAccountLamportSpend = errors.New("instruction spent from the balance of an account it does not own")
	// ErrUnbalancedInstruction is returned when the lamports of the accounts
	// of an instruction do not add up before and after processing it.
	ErrUnbalancedInstruction = errors.New("sum of account balances before and after instruction do not match")
	// ErrDuplicateProgram is returned when two programs share the same id.
	ErrDuplicateProgram = errors.New("program already registered")
	// ErrLamportsOverflow is returned when a credit overflows an account balance.
	ErrLamportsOverflow = errors.New("lamports overflow")
)

// Token program errors.
var (
	ErrOwnerMismatch          = errors.New("owner does not match")
	ErrMintMismatch           = errors.New("account and mint do not match")
	ErrInsufficientTokenFunds = errors.New("insufficient token funds")
	ErrAlreadyInitialized     = errors.New("account already initialized")
	ErrUninitializedState     = errors.New("account is not initialized")
	ErrAccountFrozen          = errors.New("account is frozen")
	ErrFixedSupply            = errors.New("mint has no authority")
	ErrTokenOverflow          = errors.New("token amount overflow")
	ErrNotRentExempt          = errors.New("account is not rent exempt")
	ErrInvalidAccountData     = errors.New("invalid account data")
)
