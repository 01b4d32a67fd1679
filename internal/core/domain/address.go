package domain

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// BoothSeedPrefix is the domain tag every booth and vault seed tuple starts
// with.
var BoothSeedPrefix = []byte("xbooth")

// ErrAddressMismatch is returned by VerifyAddress when the expected address
// is not the one derived from the seeds.
var ErrAddressMismatch = errors.New("address does not match derived address")

// Seeds is an ordered seed tuple.
type Seeds [][]byte

// Derivation is the result of a program address derivation: the address and
// the bump seed that proves the address belongs to the program.
type Derivation struct {
	Address solana.PublicKey
	Bump    uint8
	Seeds   Seeds
}

// SignerSeeds returns the seeds, bump included, that authorize an operation
// on behalf of the derived address.
func (d Derivation) SignerSeeds() [][]byte {
	seeds := make([][]byte, 0, len(d.Seeds)+1)
	seeds = append(seeds, d.Seeds...)
	return append(seeds, []byte{d.Bump})
}

// BoothSeeds returns the seed tuple of the booth owned by admin for the given
// asset pair.
func BoothSeeds(admin, mintA, mintB solana.PublicKey) Seeds {
	return Seeds{BoothSeedPrefix, admin[:], mintA[:], mintB[:]}
}

// VaultSeeds returns the seed tuple of the booth's vault for mint.
func VaultSeeds(admin, mint, booth solana.PublicKey) Seeds {
	return Seeds{BoothSeedPrefix, admin[:], mint[:], booth[:]}
}

// DeriveAddress derives the program address of the given seeds. The same
// seeds always yield the same derivation.
func DeriveAddress(programID solana.PublicKey, seeds Seeds) (Derivation, error) {
	address, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return Derivation{}, fmt.Errorf("failed to derive program address: %w", err)
	}
	return Derivation{Address: address, Bump: bump, Seeds: seeds}, nil
}

// VerifyAddress re-derives the address of seeds and compares it with the
// expected one.
func VerifyAddress(
	programID, expected solana.PublicKey, seeds Seeds,
) (Derivation, error) {
	derivation, err := DeriveAddress(programID, seeds)
	if err != nil {
		return Derivation{}, err
	}
	if !derivation.Address.Equals(expected) {
		return Derivation{}, ErrAddressMismatch
	}
	return derivation, nil
}

// DeriveBoothAddress derives the address of the booth of admin for the asset
// pair.
func DeriveBoothAddress(
	programID, admin, mintA, mintB solana.PublicKey,
) (Derivation, error) {
	return DeriveAddress(programID, BoothSeeds(admin, mintA, mintB))
}

// DeriveVaultAddress derives the address of the booth's vault for mint.
func DeriveVaultAddress(
	programID, admin, mint, booth solana.PublicKey,
) (Derivation, error) {
	return DeriveAddress(programID, VaultSeeds(admin, mint, booth))
}

// IsSignedBy returns whether signerSeeds, bump included, authorize the given
// address for programID.
func IsSignedBy(
	programID, address solana.PublicKey, signerSeeds [][]byte,
) bool {
	if len(signerSeeds) == 0 {
		return false
	}
	derived, err := solana.CreateProgramAddress(signerSeeds, programID)
	if err != nil {
		return false
	}
	return derived.Equals(address)
}
