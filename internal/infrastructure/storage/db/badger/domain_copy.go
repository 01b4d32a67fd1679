package dbbadger

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tdex-network/xbooth/internal/core/domain"
)

// Account is the persisted form of a ledger account. Keys are stored base58
// encoded to make them queryable.
type Account struct {
	Address    string
	Lamports   uint64
	Owner      string
	Data       []byte
	Executable bool
}

// Receipt is the persisted form of a transaction receipt.
type Receipt struct {
	ID         string
	Signatures []string
	Programs   []string
	Status     int
	Error      string
	ErrorCode  *uint32
	Timestamp  int64
}

func mapDomainAccountToInfraAccount(account domain.Account) Account {
	data := make([]byte, len(account.Data))
	copy(data, account.Data)

	return Account{
		Address:    account.Address.String(),
		Lamports:   account.Lamports,
		Owner:      account.Owner.String(),
		Data:       data,
		Executable: account.Executable,
	}
}

func mapInfraAccountToDomainAccount(account Account) (*domain.Account, error) {
	address, err := solana.PublicKeyFromBase58(account.Address)
	if err != nil {
		return nil, err
	}
	owner, err := solana.PublicKeyFromBase58(account.Owner)
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		Address:    address,
		Lamports:   account.Lamports,
		Owner:      owner,
		Data:       account.Data,
		Executable: account.Executable,
	}, nil
}

func mapDomainReceiptToInfraReceipt(receipt domain.Receipt) Receipt {
	return Receipt{
		ID:         receipt.ID,
		Signatures: receipt.Signatures,
		Programs:   receipt.Programs,
		Status:     int(receipt.Status),
		Error:      receipt.Error,
		ErrorCode:  receipt.ErrorCode,
		Timestamp:  receipt.Timestamp,
	}
}

func mapInfraReceiptToDomainReceipt(receipt Receipt) *domain.Receipt {
	return &domain.Receipt{
		ID:         receipt.ID,
		Signatures: receipt.Signatures,
		Programs:   receipt.Programs,
		Status:     domain.ReceiptStatus(receipt.Status),
		Error:      receipt.Error,
		ErrorCode:  receipt.ErrorCode,
		Timestamp:  receipt.Timestamp,
	}
}
