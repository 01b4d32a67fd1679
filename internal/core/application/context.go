package application

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// InstructionContext is what every booth instruction handler runs against:
// the booth program identity, the ordered account references of the
// instruction, the collaborators bound to the current invocation and the
// program parameters.
type InstructionContext struct {
	ProgramID    solana.PublicKey
	Accounts     []*ports.AccountInfo
	Token        ports.TokenService
	Funding      ports.FundingService
	ExchangeRate decimal.Decimal
}

func (c *InstructionContext) accounts(n int) ([]*ports.AccountInfo, error) {
	if len(c.Accounts) < n {
		return nil, domain.ErrNotEnoughAccountKeys
	}
	return c.Accounts[:n], nil
}
