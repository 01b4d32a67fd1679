package domain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const (
	// CustodyAccountSize is the size of a token account, laid out as the SPL
	// token program does.
	CustodyAccountSize = (32 + // mint
		32 + // owner
		8 + // amount
		36 + // delegate
		1 + // state
		12 + // is_native
		8 + // delegated_amount
		36) // close_authority

	// AssetDescriptorSize is the size of a mint account.
	AssetDescriptorSize = (36 + // mint_authority
		8 + // supply
		1 + // decimals
		1 + // is_initialized
		36) // freeze_authority
)

// CustodyAccountState is the lifecycle state of a token account.
type CustodyAccountState uint8

const (
	CustodyAccountUninitialized CustodyAccountState = iota
	CustodyAccountInitialized
	CustodyAccountFrozen
)

// CustodyAccount holds a balance of exactly one asset on behalf of an owner.
// Vaults are custody accounts whose owner is the booth address.
type CustodyAccount struct {
	Mint            solana.PublicKey
	Owner           solana.PublicKey
	Amount          uint64
	Delegate        *solana.PublicKey
	State           CustodyAccountState
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  *solana.PublicKey
}

// IsInitialized returns whether the account has been initialized, frozen
// accounts included.
func (a *CustodyAccount) IsInitialized() bool {
	return a.State != CustodyAccountUninitialized
}

func (a *CustodyAccount) Marshal() []byte {
	data := make([]byte, CustodyAccountSize)

	var offset int
	putKey(data, a.Mint, &offset)
	putKey(data, a.Owner, &offset)
	putUint64(data, a.Amount, &offset)
	putOptionalKey(data, a.Delegate, &offset)
	putUint8(data, uint8(a.State), &offset)
	putOptionalUint64(data, a.IsNative, &offset)
	putUint64(data, a.DelegatedAmount, &offset)
	putOptionalKey(data, a.CloseAuthority, &offset)

	return data
}

func (a *CustodyAccount) Unmarshal(data []byte) error {
	if len(data) != CustodyAccountSize {
		return ErrInvalidSPLTokenAccount
	}

	var offset int
	var state uint8
	getKey(data, &a.Mint, &offset)
	getKey(data, &a.Owner, &offset)
	getUint64(data, &a.Amount, &offset)
	getOptionalKey(data, &a.Delegate, &offset)
	getUint8(data, &state, &offset)
	getOptionalUint64(data, &a.IsNative, &offset)
	getUint64(data, &a.DelegatedAmount, &offset)
	getOptionalKey(data, &a.CloseAuthority, &offset)

	if state > uint8(CustodyAccountFrozen) {
		return ErrInvalidSPLTokenAccount
	}
	a.State = CustodyAccountState(state)
	return nil
}

func (a *CustodyAccount) String() string {
	return fmt.Sprintf(
		"CustodyAccount{mint=%s,owner=%s,amount=%d,state=%d}",
		a.Mint, a.Owner, a.Amount, a.State,
	)
}

// AssetDescriptor is the read-only description of a tradable asset.
type AssetDescriptor struct {
	MintAuthority   *solana.PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *solana.PublicKey
}

func (m *AssetDescriptor) Marshal() []byte {
	data := make([]byte, AssetDescriptorSize)

	var offset int
	putOptionalKey(data, m.MintAuthority, &offset)
	putUint64(data, m.Supply, &offset)
	putUint8(data, m.Decimals, &offset)
	putBool(data, m.IsInitialized, &offset)
	putOptionalKey(data, m.FreezeAuthority, &offset)

	return data
}

func (m *AssetDescriptor) Unmarshal(data []byte) error {
	if len(data) != AssetDescriptorSize {
		return ErrInvalidMint
	}

	var offset int
	getOptionalKey(data, &m.MintAuthority, &offset)
	getUint64(data, &m.Supply, &offset)
	getUint8(data, &m.Decimals, &offset)
	getBool(data, &m.IsInitialized, &offset)
	getOptionalKey(data, &m.FreezeAuthority, &offset)

	return nil
}
