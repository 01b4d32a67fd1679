package application

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/core/ports"
)

// Params are the booth program parameters.
type Params struct {
	// ExchangeRate is the amount of asset B paid for one unit of asset A.
	ExchangeRate decimal.Decimal
}

func (p Params) validate() error {
	if !p.ExchangeRate.IsPositive() {
		return fmt.Errorf("exchange rate must be positive, got %s", p.ExchangeRate)
	}
	return nil
}

type boothProgram struct {
	id     solana.PublicKey
	params Params
}

// NewBoothProgram returns the booth program with the given id, ready to be
// registered into a ledger.
func NewBoothProgram(id solana.PublicKey, params Params) (ports.Program, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("missing program id")
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &boothProgram{id, params}, nil
}

func (p *boothProgram) ID() solana.PublicKey {
	return p.id
}

// Process decodes the instruction and dispatches it to exactly one handler.
func (p *boothProgram) Process(inv ports.Invocation, data []byte) error {
	if !inv.ProgramID().Equals(p.id) {
		return domain.ErrIncorrectProgramID
	}

	ix, err := domain.UnmarshalBoothInstruction(data)
	if err != nil {
		return err
	}

	c := &InstructionContext{
		ProgramID:    p.id,
		Accounts:     inv.Accounts(),
		Token:        inv.TokenService(),
		Funding:      inv.FundingService(),
		ExchangeRate: p.params.ExchangeRate,
	}

	log.Debugf("processing %s instruction", ix.Type)

	switch ix.Type {
	case domain.InstructionTypeInitialize:
		return Initialize(c)
	case domain.InstructionTypeDeposit:
		return Deposit(c, ix.Amount)
	case domain.InstructionTypeWithdraw:
		return Withdraw(c, ix.Amount)
	case domain.InstructionTypeExchange:
		return Exchange(c, ix.Amount)
	default:
		return domain.ErrInvalidInstructionData
	}
}
