package ledger

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// tokenService implements ports.TokenService by invoking the built-in token
// program on behalf of the calling program.
type tokenService struct {
	inv *invocation
}

func (s *tokenService) ProgramID() solana.PublicKey {
	return solana.TokenProgramID
}

func (s *tokenService) CustodyAccountSize() uint64 {
	return domain.CustodyAccountSize
}

func (s *tokenService) InitializeCustodyAccount(
	account, mint, owner *ports.AccountInfo,
) error {
	return s.inv.Invoke(
		NewInitializeAccountInstruction(account.Key, mint.Key, owner.Key),
	)
}

func (s *tokenService) Transfer(
	from, to, authority *ports.AccountInfo, amount uint64,
) error {
	return s.inv.Invoke(
		NewTransferInstruction(from.Key, to.Key, authority.Key, amount),
	)
}

func (s *tokenService) TransferSigned(
	from, to, authority *ports.AccountInfo, amount uint64,
	signerSeeds ...[][]byte,
) error {
	return s.inv.Invoke(
		NewTransferInstruction(from.Key, to.Key, authority.Key, amount),
		signerSeeds...,
	)
}

func (s *tokenService) DecodeCustodyAccount(
	account *ports.AccountInfo,
) (*domain.CustodyAccount, error) {
	if !account.Owner.Equals(solana.TokenProgramID) {
		return nil, domain.ErrInvalidSPLTokenAccount
	}
	custody := &domain.CustodyAccount{}
	if err := custody.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return custody, nil
}

func (s *tokenService) DecodeAssetDescriptor(
	account *ports.AccountInfo,
) (*domain.AssetDescriptor, error) {
	if !account.Owner.Equals(solana.TokenProgramID) {
		return nil, domain.ErrInvalidMint
	}
	mint := &domain.AssetDescriptor{}
	if err := mint.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return mint, nil
}

// fundingService implements ports.FundingService by invoking the built-in
// system program on behalf of the calling program.
type fundingService struct {
	inv  *invocation
	rent Rent
}

func (s *fundingService) ProgramID() solana.PublicKey {
	return solana.SystemProgramID
}

func (s *fundingService) RentID() solana.PublicKey {
	return solana.SysVarRentPubkey
}

func (s *fundingService) MinimumBalance(space uint64) uint64 {
	return s.rent.MinimumBalance(space)
}

func (s *fundingService) CreateAccount(
	payer, target *ports.AccountInfo, space uint64, owner solana.PublicKey,
	signerSeeds ...[][]byte,
) error {
	return s.inv.Invoke(
		NewCreateAccountInstruction(
			payer.Key, target.Key, s.MinimumBalance(space), space, owner,
		),
		signerSeeds...,
	)
}
