package ports

import (
	"github.com/gagliardetto/solana-go"
)

// AccountState is the mutable part of a ledger account as seen by a program
// while processing an instruction. Duplicated account references within the
// same transaction share the same state.
type AccountState struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
}

// AccountInfo is an account reference of an instruction together with the
// privileges granted by the transaction.
type AccountInfo struct {
	Key        solana.PublicKey
	IsSigner   bool
	IsWritable bool
	*AccountState
}

// IsEmpty returns whether the referenced account holds neither lamports nor
// data.
func (a *AccountInfo) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0
}

// Instruction is a call to a program with an ordered list of account
// references and an opaque payload.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []*solana.AccountMeta
	Data      []byte
}

// Invocation is the runtime handed to a program for processing exactly one
// instruction.
type Invocation interface {
	// ProgramID returns the id of the program being invoked.
	ProgramID() solana.PublicKey
	// Accounts returns the account references of the instruction, in order.
	Accounts() []*AccountInfo
	// Invoke runs the given instruction on behalf of the current program.
	// Every signer seed set is turned into a signature for the program
	// address it derives from the current program id.
	Invoke(ix Instruction, signerSeeds ...[][]byte) error
	// TokenService returns the token program bound to this invocation.
	TokenService() TokenService
	// FundingService returns the system program bound to this invocation.
	FundingService() FundingService
}

// Program processes instructions addressed to its id.
type Program interface {
	ID() solana.PublicKey
	Process(inv Invocation, data []byte) error
}
