package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// Token instruction tags, as assigned by the SPL token program.
const (
	tokenInstructionInitializeMint    uint8 = 0
	tokenInstructionInitializeAccount uint8 = 1
	tokenInstructionTransfer          uint8 = 3
	tokenInstructionMintTo            uint8 = 7
)

const (
	initializeMintDataSize = 1 + 1 + 32 + 1 + 32
	amountDataSize         = 1 + 8
)

// tokenProgram keeps custody accounts and mints with the SPL token layouts.
type tokenProgram struct {
	rent Rent
}

func (tokenProgram) ID() solana.PublicKey {
	return solana.TokenProgramID
}

func (p tokenProgram) Process(inv ports.Invocation, data []byte) error {
	if len(data) == 0 {
		return domain.ErrInvalidInstructionData
	}

	accounts := inv.Accounts()
	for _, account := range accounts {
		if account.IsWritable && !account.Owner.Equals(solana.TokenProgramID) {
			return fmt.Errorf(
				"%w: %s is not owned by the token program",
				domain.ErrIncorrectProgramID, account.Key,
			)
		}
	}

	switch data[0] {
	case tokenInstructionInitializeMint:
		return p.initializeMint(accounts, data)
	case tokenInstructionInitializeAccount:
		return p.initializeAccount(accounts, data)
	case tokenInstructionTransfer:
		return p.transfer(accounts, data)
	case tokenInstructionMintTo:
		return p.mintTo(accounts, data)
	default:
		return domain.ErrInvalidInstructionData
	}
}

// initializeMint accounts: 0. mint (writable).
func (p tokenProgram) initializeMint(
	accounts []*ports.AccountInfo, data []byte,
) error {
	if len(data) != initializeMintDataSize {
		return domain.ErrInvalidInstructionData
	}
	if len(accounts) < 1 {
		return domain.ErrNotEnoughAccountKeys
	}
	account := accounts[0]

	var mint domain.AssetDescriptor
	if err := mint.Unmarshal(account.Data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAccountData, account.Key)
	}
	if mint.IsInitialized {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, account.Key)
	}
	if !p.rent.IsExempt(account.Lamports, uint64(len(account.Data))) {
		return fmt.Errorf("%w: %s", ErrNotRentExempt, account.Key)
	}

	authority := solana.PublicKeyFromBytes(data[2:34])
	mint.Decimals = data[1]
	mint.MintAuthority = &authority
	mint.IsInitialized = true
	if data[34] == 1 {
		freezeAuthority := solana.PublicKeyFromBytes(data[35:])
		mint.FreezeAuthority = &freezeAuthority
	}

	copy(account.Data, mint.Marshal())
	return nil
}

// initializeAccount accounts: 0. account (writable) 1. mint 2. owner.
func (p tokenProgram) initializeAccount(
	accounts []*ports.AccountInfo, data []byte,
) error {
	if len(data) != 1 {
		return domain.ErrInvalidInstructionData
	}
	if len(accounts) < 3 {
		return domain.ErrNotEnoughAccountKeys
	}
	account, mintAccount, owner := accounts[0], accounts[1], accounts[2]

	var custody domain.CustodyAccount
	if err := custody.Unmarshal(account.Data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAccountData, account.Key)
	}
	if custody.IsInitialized() {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, account.Key)
	}
	if !p.rent.IsExempt(account.Lamports, uint64(len(account.Data))) {
		return fmt.Errorf("%w: %s", ErrNotRentExempt, account.Key)
	}
	if _, err := decodeMint(mintAccount); err != nil {
		return err
	}

	custody = domain.CustodyAccount{
		Mint:  mintAccount.Key,
		Owner: owner.Key,
		State: domain.CustodyAccountInitialized,
	}
	copy(account.Data, custody.Marshal())
	return nil
}

// transfer accounts: 0. source (writable) 1. destination (writable)
// 2. owner of the source (signer).
func (tokenProgram) transfer(accounts []*ports.AccountInfo, data []byte) error {
	if len(data) != amountDataSize {
		return domain.ErrInvalidInstructionData
	}
	amount := binary.LittleEndian.Uint64(data[1:])
	if len(accounts) < 3 {
		return domain.ErrNotEnoughAccountKeys
	}
	sourceAccount, destinationAccount, authority := accounts[0], accounts[1], accounts[2]

	source, err := decodeCustodyAccount(sourceAccount)
	if err != nil {
		return err
	}
	destination, err := decodeCustodyAccount(destinationAccount)
	if err != nil {
		return err
	}
	if !source.Mint.Equals(destination.Mint) {
		return ErrMintMismatch
	}
	if err := validateAuthority(source.Owner, authority); err != nil {
		return err
	}
	if source.Amount < amount {
		return fmt.Errorf(
			"%w: %s has %d, needs %d",
			ErrInsufficientTokenFunds, sourceAccount.Key, source.Amount, amount,
		)
	}
	if sourceAccount.Key.Equals(destinationAccount.Key) {
		return nil
	}
	if destination.Amount+amount < destination.Amount {
		return ErrTokenOverflow
	}

	source.Amount -= amount
	destination.Amount += amount
	copy(sourceAccount.Data, source.Marshal())
	copy(destinationAccount.Data, destination.Marshal())
	return nil
}

// mintTo accounts: 0. mint (writable) 1. destination (writable) 2. mint
// authority (signer).
func (tokenProgram) mintTo(accounts []*ports.AccountInfo, data []byte) error {
	if len(data) != amountDataSize {
		return domain.ErrInvalidInstructionData
	}
	amount := binary.LittleEndian.Uint64(data[1:])
	if len(accounts) < 3 {
		return domain.ErrNotEnoughAccountKeys
	}
	mintAccount, destinationAccount, authority := accounts[0], accounts[1], accounts[2]

	mint, err := decodeMint(mintAccount)
	if err != nil {
		return err
	}
	destination, err := decodeCustodyAccount(destinationAccount)
	if err != nil {
		return err
	}
	if !destination.Mint.Equals(mintAccount.Key) {
		return ErrMintMismatch
	}
	if mint.MintAuthority == nil {
		return ErrFixedSupply
	}
	if err := validateAuthority(*mint.MintAuthority, authority); err != nil {
		return err
	}
	if mint.Supply+amount < mint.Supply {
		return ErrTokenOverflow
	}

	mint.Supply += amount
	destination.Amount += amount
	copy(mintAccount.Data, mint.Marshal())
	copy(destinationAccount.Data, destination.Marshal())
	return nil
}

func validateAuthority(expected solana.PublicKey, authority *ports.AccountInfo) error {
	if !expected.Equals(authority.Key) {
		return fmt.Errorf("%w: expected %s, got %s", ErrOwnerMismatch, expected, authority.Key)
	}
	if !authority.IsSigner {
		return fmt.Errorf("%w: %s", domain.ErrMissingRequiredSignature, authority.Key)
	}
	return nil
}

func decodeCustodyAccount(account *ports.AccountInfo) (*domain.CustodyAccount, error) {
	if !account.Owner.Equals(solana.TokenProgramID) {
		return nil, fmt.Errorf(
			"%w: %s is not owned by the token program",
			domain.ErrIncorrectProgramID, account.Key,
		)
	}
	custody := &domain.CustodyAccount{}
	if err := custody.Unmarshal(account.Data); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountData, account.Key)
	}
	if !custody.IsInitialized() {
		return nil, fmt.Errorf("%w: %s", ErrUninitializedState, account.Key)
	}
	if custody.State == domain.CustodyAccountFrozen {
		return nil, fmt.Errorf("%w: %s", ErrAccountFrozen, account.Key)
	}
	return custody, nil
}

func decodeMint(account *ports.AccountInfo) (*domain.AssetDescriptor, error) {
	if !account.Owner.Equals(solana.TokenProgramID) {
		return nil, fmt.Errorf(
			"%w: %s is not owned by the token program",
			domain.ErrIncorrectProgramID, account.Key,
		)
	}
	mint := &domain.AssetDescriptor{}
	if err := mint.Unmarshal(account.Data); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountData, account.Key)
	}
	if !mint.IsInitialized {
		return nil, fmt.Errorf("%w: %s", ErrUninitializedState, account.Key)
	}
	return mint, nil
}

// NewInitializeMintInstruction returns the instruction that initializes mint
// with the given decimals and mint authority.
func NewInitializeMintInstruction(
	mint, authority solana.PublicKey, decimals uint8,
) ports.Instruction {
	data := make([]byte, initializeMintDataSize)
	data[0] = tokenInstructionInitializeMint
	data[1] = decimals
	copy(data[2:], authority[:])

	return ports.Instruction{
		ProgramID: solana.TokenProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(mint, true, false),
		},
		Data: data,
	}
}

// NewInitializeAccountInstruction returns the instruction that initializes
// account to hold mint on behalf of owner.
func NewInitializeAccountInstruction(
	account, mint, owner solana.PublicKey,
) ports.Instruction {
	return ports.Instruction{
		ProgramID: solana.TokenProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(account, true, false),
			solana.NewAccountMeta(mint, false, false),
			solana.NewAccountMeta(owner, false, false),
		},
		Data: []byte{tokenInstructionInitializeAccount},
	}
}

// NewTransferInstruction returns the instruction that moves amount base
// units from source to destination, authorized by the owner of source.
func NewTransferInstruction(
	source, destination, owner solana.PublicKey, amount uint64,
) ports.Instruction {
	return ports.Instruction{
		ProgramID: solana.TokenProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(source, true, false),
			solana.NewAccountMeta(destination, true, false),
			solana.NewAccountMeta(owner, false, true),
		},
		Data: amountData(tokenInstructionTransfer, amount),
	}
}

// NewMintToInstruction returns the instruction that mints amount base units
// of mint into destination.
func NewMintToInstruction(
	mint, destination, authority solana.PublicKey, amount uint64,
) ports.Instruction {
	return ports.Instruction{
		ProgramID: solana.TokenProgramID,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(mint, true, false),
			solana.NewAccountMeta(destination, true, false),
			solana.NewAccountMeta(authority, false, true),
		},
		Data: amountData(tokenInstructionMintTo, amount),
	}
}

func amountData(tag uint8, amount uint64) []byte {
	data := make([]byte, amountDataSize)
	data[0] = tag
	binary.LittleEndian.PutUint64(data[1:], amount)
	return data
}
