package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// System instruction tags, encoded as u32 little endian.
const (
	systemInstructionCreateAccount uint32 = 0
	systemInstructionTransfer      uint32 = 2
)

const (
	createAccountDataSize = 4 + 8 + 8 + 32
	transferLamportsSize  = 4 + 8
)

// systemProgram is the funding program: it creates accounts and moves
// lamports between accounts it owns.
type systemProgram struct{}

func (systemProgram) ID() solana.PublicKey {
	return solana.SystemProgramID
}

func (p systemProgram) Process(inv ports.Invocation, data []byte) error {
	if len(data) < 4 {
		return domain.ErrInvalidInstructionData
	}

	switch binary.LittleEndian.Uint32(data) {
	case systemInstructionCreateAccount:
		return p.createAccount(inv, data)
	case systemInstructionTransfer:
		return p.transfer(inv, data)
	default:
		return domain.ErrInvalidInstructionData
	}
}

// createAccount accounts: 0. payer (signer, writable) 1. new account
// (signer, writable).
func (systemProgram) createAccount(inv ports.Invocation, data []byte) error {
	if len(data) != createAccountDataSize {
		return domain.ErrInvalidInstructionData
	}
	lamports := binary.LittleEndian.Uint64(data[4:])
	space := binary.LittleEndian.Uint64(data[12:])
	owner := solana.PublicKeyFromBytes(data[20:])

	accounts := inv.Accounts()
	if len(accounts) < 2 {
		return domain.ErrNotEnoughAccountKeys
	}
	payer, target := accounts[0], accounts[1]

	if !payer.IsSigner {
		return fmt.Errorf("%w: %s", domain.ErrMissingRequiredSignature, payer.Key)
	}
	if !target.IsSigner {
		return fmt.Errorf("%w: %s", domain.ErrMissingRequiredSignature, target.Key)
	}
	if !target.IsEmpty() || !target.Owner.Equals(solana.SystemProgramID) {
		return fmt.Errorf("%w: %s", domain.ErrAccountAlreadyInUse, target.Key)
	}
	if err := debit(payer, lamports); err != nil {
		return err
	}

	target.Lamports = lamports
	target.Data = make([]byte, space)
	target.Owner = owner
	return nil
}

// transfer accounts: 0. source (signer, writable) 1. destination (writable).
func (systemProgram) transfer(inv ports.Invocation, data []byte) error {
	if len(data) != transferLamportsSize {
		return domain.ErrInvalidInstructionData
	}
	lamports := binary.LittleEndian.Uint64(data[4:])

	accounts := inv.Accounts()
	if len(accounts) < 2 {
		return domain.ErrNotEnoughAccountKeys
	}
	from, to := accounts[0], accounts[1]

	if !from.IsSigner {
		return fmt.Errorf("%w: %s", domain.ErrMissingRequiredSignature, from.Key)
	}
	if len(from.Data) > 0 {
		return fmt.Errorf("source %s must not carry data", from.Key)
	}
	if err := debit(from, lamports); err != nil {
		return err
	}
	return credit(to, lamports)
}

func debit(account *ports.AccountInfo, lamports uint64) error {
	if account.Lamports < lamports {
		return fmt.Errorf(
			"%w: %s has %d, needs %d",
			domain.ErrInsufficientLamports, account.Key, account.Lamports, lamports,
		)
	}
	account.Lamports -= lamports
	return nil
}

func credit(account *ports.AccountInfo, lamports uint64) error {
	if account.Lamports+lamports < account.Lamports {
		return ErrLamportsOverflow
	}
	account.Lamports += lamports
	return nil
}

// NewCreateAccountInstruction returns the instruction that funds account
// with lamports taken from payer, allocates space bytes and assigns it to
// owner.
func NewCreateAccountInstruction(
	payer, account solana.PublicKey, lamports, space uint64,
	owner solana.PublicKey,
) ports.Instruction {
	data := make([]byte, createAccountDataSize)
	binary.LittleEndian.PutUint32(data, systemInstructionCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[12:], space)
	copy(data[20:], owner[:])

	return ports.Instruction{
		ProgramID: solana.SystemProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(payer, true, true),
			solana.NewAccountMeta(account, true, true),
		},
		Data: data,
	}
}

// NewTransferLamportsInstruction returns the instruction that moves lamports
// from a system account to any other account.
func NewTransferLamportsInstruction(
	from, to solana.PublicKey, lamports uint64,
) ports.Instruction {
	data := make([]byte, transferLamportsSize)
	binary.LittleEndian.PutUint32(data, systemInstructionTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return ports.Instruction{
		ProgramID: solana.SystemProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(from, true, true),
			solana.NewAccountMeta(to, true, false),
		},
		Data: data,
	}
}
