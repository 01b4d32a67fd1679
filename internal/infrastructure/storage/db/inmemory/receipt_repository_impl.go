package inmemory

import (
	"context"
	"sort"

	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/internal/storageutil/uow"
)

type receiptRepositoryImpl struct {
	store *ledgerStore
}

// NewReceiptRepositoryImpl returns a new inmemory ReceiptRepository
// implementation.
func NewReceiptRepositoryImpl() domain.ReceiptRepository {
	return &receiptRepositoryImpl{newLedgerStore()}
}

func (r *receiptRepositoryImpl) AddReceipt(
	ctx context.Context, receipt domain.Receipt,
) error {
	if tx := txFromContext(ctx, r.store); tx != nil {
		if _, ok := tx.receipts[receipt.ID]; ok {
			return ErrReceiptExists
		}
		tx.receipts[receipt.ID] = receipt
		return nil
	}

	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.receipts[receipt.ID]; ok {
		return ErrReceiptExists
	}
	r.store.receipts[receipt.ID] = receipt
	return nil
}

func (r *receiptRepositoryImpl) GetReceipt(
	ctx context.Context, id string,
) (*domain.Receipt, error) {
	if tx := txFromContext(ctx, r.store); tx != nil {
		if receipt, ok := tx.receipts[id]; ok {
			return &receipt, nil
		}
	}

	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	receipt, ok := r.store.receipts[id]
	if !ok {
		return nil, domain.ErrReceiptNotFound
	}
	return &receipt, nil
}

func (r *receiptRepositoryImpl) ListReceipts(
	_ context.Context, page domain.Page,
) ([]domain.Receipt, error) {
	r.store.locker.RLock()
	receipts := make([]domain.Receipt, 0, len(r.store.receipts))
	for _, receipt := range r.store.receipts {
		receipts = append(receipts, receipt)
	}
	r.store.locker.RUnlock()

	sort.SliceStable(receipts, func(i, j int) bool {
		if receipts[i].Timestamp == receipts[j].Timestamp {
			return receipts[i].ID > receipts[j].ID
		}
		return receipts[i].Timestamp > receipts[j].Timestamp
	})

	start, end := page.Bounds(len(receipts))
	return receipts[start:end], nil
}

func (r *receiptRepositoryImpl) Begin() (uow.Tx, error) {
	return r.store.Begin()
}

func (r *receiptRepositoryImpl) ContextKey() interface{} {
	return r.store
}
