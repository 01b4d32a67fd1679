package dbbadger

import (
	"context"
	"errors"

	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/storageutil/uow"
	"github.com/timshannon/badgerhold/v4"
)

type receiptRepositoryImpl struct {
	store *badgerhold.Store
}

// NewReceiptRepositoryImpl returns a new badger ReceiptRepository
// implementation.
func NewReceiptRepositoryImpl(store *badgerhold.Store) domain.ReceiptRepository {
	return &receiptRepositoryImpl{store}
}

func (r *receiptRepositoryImpl) AddReceipt(
	ctx context.Context, receipt domain.Receipt,
) error {
	dto := mapDomainReceiptToInfraReceipt(receipt)

	var err error
	if tx := txFromContext(ctx, r.store); tx != nil {
		err = r.store.TxInsert(tx, dto.ID, dto)
	} else {
		err = r.store.Insert(dto.ID, dto)
	}
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return ErrReceiptExists
	}
	return err
}

func (r *receiptRepositoryImpl) GetReceipt(
	ctx context.Context, id string,
) (*domain.Receipt, error) {
	var receipt Receipt
	var err error
	if tx := txFromContext(ctx, r.store); tx != nil {
		err = r.store.TxGet(tx, id, &receipt)
	} else {
		err = r.store.Get(id, &receipt)
	}
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}

	return mapInfraReceiptToDomainReceipt(receipt), nil
}

func (r *receiptRepositoryImpl) ListReceipts(
	ctx context.Context, page domain.Page,
) ([]domain.Receipt, error) {
	query := badgerhold.Where("Timestamp").Ge(int64(0)).
		SortBy("Timestamp", "ID").Reverse().
		Skip((page.Number - 1) * page.Size).Limit(page.Size)

	var receipts []Receipt
	var err error
	if tx := txFromContext(ctx, r.store); tx != nil {
		err = r.store.TxFind(tx, &receipts, query)
	} else {
		err = r.store.Find(&receipts, query)
	}
	if err != nil {
		return nil, err
	}

	result := make([]domain.Receipt, 0, len(receipts))
	for _, receipt := range receipts {
		result = append(result, *mapInfraReceiptToDomainReceipt(receipt))
	}
	return result, nil
}

func (r *receiptRepositoryImpl) Begin() (uow.Tx, error) {
	return newTx(r.store), nil
}

func (r *receiptRepositoryImpl) ContextKey() interface{} {
	return r.store
}
