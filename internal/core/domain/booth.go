package domain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// BoothAccountSize is the size in bytes of a persisted booth record.
const BoothAccountSize = (32 + // admin
	32 + // vault_a
	32) // vault_b

// Booth is the persisted record binding an admin to the two vaults of an
// asset pair. It is written once at initialization and never updated.
type Booth struct {
	Admin  solana.PublicKey
	VaultA solana.PublicKey
	VaultB solana.PublicKey
}

// IsInitialized returns whether the record holds an admin.
func (b *Booth) IsInitialized() bool {
	return !b.Admin.IsZero()
}

// VaultFor returns the vault bound to the asset at position a (true) or b.
func (b *Booth) VaultFor(isA bool) solana.PublicKey {
	if isA {
		return b.VaultA
	}
	return b.VaultB
}

func (b *Booth) Marshal() []byte {
	data := make([]byte, BoothAccountSize)

	var offset int
	putKey(data, b.Admin, &offset)
	putKey(data, b.VaultA, &offset)
	putKey(data, b.VaultB, &offset)

	return data
}

func (b *Booth) Unmarshal(data []byte) error {
	if len(data) != BoothAccountSize {
		return ErrAccountNotInitialized
	}

	var offset int
	getKey(data, &b.Admin, &offset)
	getKey(data, &b.VaultA, &offset)
	getKey(data, &b.VaultB, &offset)

	if !b.IsInitialized() {
		return ErrAccountNotInitialized
	}
	return nil
}

func (b *Booth) String() string {
	return fmt.Sprintf(
		"Booth{admin=%s,vault_a=%s,vault_b=%s}",
		b.Admin, b.VaultA, b.VaultB,
	)
}
