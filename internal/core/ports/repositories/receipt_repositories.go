package repositories

import (
	"context"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// ReceiptRepositoryFacade defines the transactional storage operations for
// receipts. The mutating methods are the storage half of the reconciliation
// coordinator: each one opens a single transaction, locks the affected
// inventory lines (and the receipt row on update/delete), re-validates stock
// availability against the locked values, applies the inventory deltas and
// commits, or aborts leaving no trace.
type ReceiptRepositoryFacade interface {
	// SaveReceipt inserts a receipt with its items. Outbound items are
	// admitted only if stock suffices at commit time; rejections carry
	// *apperrors.InsufficientStockError with the authoritative availability.
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error

	// UpdateReceipt replaces the receipt wholesale: items are deleted and
	// reinserted, never merged. Availability is checked as if the receipt's
	// previous quantities were first reverted.
	UpdateReceipt(ctx context.Context, receipt domain.Receipt) error

	// DeleteReceipt removes a receipt and its items, reverting its inventory
	// contribution. Fails with apperrors.ErrHasSettledPayments while any
	// payment references the receipt.
	DeleteReceipt(ctx context.Context, receiptID string) error

	// FindReceiptByID returns the receipt with items attached, ordered by
	// their original position.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	ListReceiptsByAccount(ctx context.Context, accountID string) ([]domain.Receipt, error)
	ListReceipts(ctx context.Context, limit int, offset int) ([]domain.Receipt, error)
}
