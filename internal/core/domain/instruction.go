package domain

import (
	"encoding/binary"
	"fmt"

	"github.com/shopspring/decimal"
)

// InstructionType is the tag that prefixes every booth instruction.
type InstructionType uint8

const (
	InstructionTypeInitialize InstructionType = iota
	InstructionTypeDeposit
	InstructionTypeWithdraw
	InstructionTypeExchange
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitialize:
		return "Initialize"
	case InstructionTypeDeposit:
		return "Deposit"
	case InstructionTypeWithdraw:
		return "Withdraw"
	case InstructionTypeExchange:
		return "Exchange"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// BoothInstruction is a decoded booth instruction. Amount is expressed in
// decimal units of the relevant asset and is zero for Initialize.
type BoothInstruction struct {
	Type   InstructionType
	Amount decimal.Decimal
}

const (
	// maxAmountLength bounds the decimal literal carried by an instruction.
	maxAmountLength = 64
	// maxAmountExponent bounds the exponent of amounts in scientific notation.
	maxAmountExponent = 64
)

// Marshal encodes the instruction as its tag followed, for amount carrying
// instructions, by a length-prefixed decimal literal.
func (ix BoothInstruction) Marshal() []byte {
	if ix.Type == InstructionTypeInitialize {
		return []byte{byte(ix.Type)}
	}

	amount := ix.Amount.String()
	data := make([]byte, 1+4+len(amount))
	data[0] = byte(ix.Type)
	binary.LittleEndian.PutUint32(data[1:], uint32(len(amount)))
	copy(data[5:], amount)
	return data
}

// UnmarshalBoothInstruction decodes instruction data.
func UnmarshalBoothInstruction(data []byte) (*BoothInstruction, error) {
	if len(data) < 1 {
		return nil, ErrInvalidInstructionData
	}

	ix := &BoothInstruction{Type: InstructionType(data[0])}
	switch ix.Type {
	case InstructionTypeInitialize:
		if len(data) != 1 {
			return nil, ErrInvalidInstructionData
		}
		return ix, nil
	case InstructionTypeDeposit, InstructionTypeWithdraw, InstructionTypeExchange:
	default:
		return nil, ErrInvalidInstructionData
	}

	if len(data) < 5 {
		return nil, ErrInvalidInstructionData
	}
	length := binary.LittleEndian.Uint32(data[1:5])
	if length == 0 || length > maxAmountLength || int(length) != len(data)-5 {
		return nil, ErrInvalidInstructionData
	}

	amount, err := decimal.NewFromString(string(data[5:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInstructionData, err)
	}
	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return nil, fmt.Errorf(
			"%w: amount exponent %d out of range", ErrInvalidInstructionData, exp,
		)
	}
	ix.Amount = amount
	return ix, nil
}
