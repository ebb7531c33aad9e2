package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// InventoryRepositoryFacade reads the derived stock projection and applies
// deltas to it. The *InTx methods must be called inside the receipt
// repository's transaction so that availability checks and delta application
// happen against the same locked rows.
type InventoryRepositoryFacade interface {
	FindLineByItemName(ctx context.Context, itemName string) (*domain.InventoryLine, error)
	ListLines(ctx context.Context, limit int, offset int) ([]domain.InventoryLine, error)

	// FindLinesForUpdate reads the lines for the given item names with
	// SELECT ... FOR UPDATE, creating missing lines at zero so they can be
	// locked too. Must be called within a transaction.
	FindLinesForUpdate(ctx context.Context, tx pgx.Tx, itemNames []string) (map[string]domain.InventoryLine, error)

	// ApplyDeltasInTx adds the given quantities to quantity_in/quantity_out
	// of already-locked lines.
	ApplyDeltasInTx(ctx context.Context, tx pgx.Tx, inDeltas, outDeltas map[string]decimal.Decimal) error
}
