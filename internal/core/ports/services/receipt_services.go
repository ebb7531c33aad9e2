package services

import (
	"context"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
)

// ReceiptSvcFacade defines receipt operations and the stock projection reads.
type ReceiptSvcFacade interface {
	// CreateReceipt creates a receipt whole, with its items. The total is
	// recomputed from the items; any total supplied by a caller is ignored
	// by construction (the request carries none).
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, actor domain.Actor) (*domain.Receipt, error)

	// UpdateReceipt edits a receipt. A provided item list replaces the old
	// one wholesale.
	UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest, actor domain.Actor) (*domain.Receipt, error)

	// DeleteReceipt removes a receipt unless payments still reference it.
	DeleteReceipt(ctx context.Context, receiptID string, actor domain.Actor) error

	GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, limit int, offset int) ([]domain.Receipt, error)
	ListReceiptsByAccount(ctx context.Context, accountID string) ([]domain.Receipt, error)

	// GetReceiptBalance returns {total, settled, remaining} for one receipt.
	GetReceiptBalance(ctx context.Context, receiptID string) (*domain.ReceiptBalance, error)

	ListInventory(ctx context.Context, limit int, offset int) ([]domain.InventoryLine, error)
}
