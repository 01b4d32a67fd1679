package ports

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
)

// TokenService is the token program as seen by the booth program.
type TokenService interface {
	ProgramID() solana.PublicKey
	// CustodyAccountSize returns the space to allocate for a token account.
	CustodyAccountSize() uint64
	// InitializeCustodyAccount initializes the given account to hold the
	// given asset on behalf of owner.
	InitializeCustodyAccount(account, mint, owner *AccountInfo) error
	// Transfer moves amount base units between token accounts. The authority
	// must be a signer of the transaction.
	Transfer(from, to, authority *AccountInfo, amount uint64) error
	// TransferSigned is like Transfer, but the authority is a program
	// address signed for by the given seeds.
	TransferSigned(
		from, to, authority *AccountInfo, amount uint64, signerSeeds ...[][]byte,
	) error
	DecodeCustodyAccount(account *AccountInfo) (*domain.CustodyAccount, error)
	DecodeAssetDescriptor(account *AccountInfo) (*domain.AssetDescriptor, error)
}

// FundingService is the system program as seen by the booth program.
type FundingService interface {
	ProgramID() solana.PublicKey
	// RentID returns the address of the rent resource account.
	RentID() solana.PublicKey
	// MinimumBalance returns the rent-exempt balance for the given space.
	MinimumBalance(space uint64) uint64
	// CreateAccount funds target with the rent-exempt balance for space,
	// allocates it and assigns it to owner. Target either signs the
	// transaction or is a program address signed for by signerSeeds.
	CreateAccount(
		payer, target *AccountInfo, space uint64, owner solana.PublicKey,
		signerSeeds ...[][]byte,
	) error
}
