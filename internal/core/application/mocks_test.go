package application

import (
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

/*
 * TokenService
 */
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) ProgramID() solana.PublicKey {
	args := m.Called()
	return args.Get(0).(solana.PublicKey)
}

func (m *mockTokenService) CustodyAccountSize() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}

func (m *mockTokenService) InitializeCustodyAccount(
	account, mint, owner *ports.AccountInfo,
) error {
	args := m.Called(account, mint, owner)
	return args.Error(0)
}

func (m *mockTokenService) Transfer(
	from, to, authority *ports.AccountInfo, amount uint64,
) error {
	args := m.Called(from, to, authority, amount)
	return args.Error(0)
}

func (m *mockTokenService) TransferSigned(
	from, to, authority *ports.AccountInfo, amount uint64,
	signerSeeds ...[][]byte,
) error {
	args := m.Called(from, to, authority, amount, signerSeeds)
	return args.Error(0)
}

func (m *mockTokenService) DecodeCustodyAccount(
	account *ports.AccountInfo,
) (*domain.CustodyAccount, error) {
	args := m.Called(account)

	var res *domain.CustodyAccount
	if a := args.Get(0); a != nil {
		res = a.(*domain.CustodyAccount)
	}
	return res, args.Error(1)
}

func (m *mockTokenService) DecodeAssetDescriptor(
	account *ports.AccountInfo,
) (*domain.AssetDescriptor, error) {
	args := m.Called(account)

	var res *domain.AssetDescriptor
	if a := args.Get(0); a != nil {
		res = a.(*domain.AssetDescriptor)
	}
	return res, args.Error(1)
}

/*
 * FundingService
 */
type mockFundingService struct {
	mock.Mock
}

func (m *mockFundingService) ProgramID() solana.PublicKey {
	args := m.Called()
	return args.Get(0).(solana.PublicKey)
}

func (m *mockFundingService) RentID() solana.PublicKey {
	args := m.Called()
	return args.Get(0).(solana.PublicKey)
}

func (m *mockFundingService) MinimumBalance(space uint64) uint64 {
	args := m.Called(space)
	return args.Get(0).(uint64)
}

func (m *mockFundingService) CreateAccount(
	payer, target *ports.AccountInfo, space uint64, owner solana.PublicKey,
	signerSeeds ...[][]byte,
) error {
	args := m.Called(payer, target, space, owner, signerSeeds)
	return args.Error(0)
}

/*
 * Invocation
 */
type mockInvocation struct {
	mock.Mock
}

func (m *mockInvocation) ProgramID() solana.PublicKey {
	args := m.Called()
	return args.Get(0).(solana.PublicKey)
}

func (m *mockInvocation) Accounts() []*ports.AccountInfo {
	args := m.Called()

	var res []*ports.AccountInfo
	if a := args.Get(0); a != nil {
		res = a.([]*ports.AccountInfo)
	}
	return res
}

func (m *mockInvocation) Invoke(ix ports.Instruction, signerSeeds ...[][]byte) error {
	args := m.Called(ix, signerSeeds)
	return args.Error(0)
}

func (m *mockInvocation) TokenService() ports.TokenService {
	args := m.Called()
	return args.Get(0).(ports.TokenService)
}

func (m *mockInvocation) FundingService() ports.FundingService {
	args := m.Called()
	return args.Get(0).(ports.FundingService)
}
