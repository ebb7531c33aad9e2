package pgsql

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata_backend/internal/core/ports/repositories"
	"github.com/shopkhata/shopkhata_backend/internal/models"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for the stock projection.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

// FindLineByItemName retrieves one inventory line.
func (r *PgxInventoryRepository) FindLineByItemName(ctx context.Context, itemName string) (*domain.InventoryLine, error) {
	query := `
		SELECT item_name, quantity_in, quantity_out
		FROM inventory_lines
		WHERE item_name = $1;
	`
	var m models.InventoryLine
	err := r.Pool.QueryRow(ctx, query, itemName).Scan(&m.ItemName, &m.QuantityIn, &m.QuantityOut)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapDBError("failed to find inventory line "+itemName, err)
	}

	line := domain.InventoryLine{ItemName: m.ItemName, QuantityIn: m.QuantityIn, QuantityOut: m.QuantityOut}
	return &line, nil
}

// ListLines retrieves a page of the stock projection ordered by item name.
func (r *PgxInventoryRepository) ListLines(ctx context.Context, limit int, offset int) ([]domain.InventoryLine, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT item_name, quantity_in, quantity_out
		FROM inventory_lines
		ORDER BY item_name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapDBError("failed to query inventory lines", err)
	}
	defer rows.Close()

	lines := []domain.InventoryLine{}
	for rows.Next() {
		var m models.InventoryLine
		if err := rows.Scan(&m.ItemName, &m.QuantityIn, &m.QuantityOut); err != nil {
			return nil, mapDBError("failed to scan inventory line row", err)
		}
		lines = append(lines, domain.InventoryLine{ItemName: m.ItemName, QuantityIn: m.QuantityIn, QuantityOut: m.QuantityOut})
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError("error iterating inventory line rows", err)
	}
	return lines, nil
}

// FindLinesForUpdate locks the lines for the given item names with
// SELECT ... FOR UPDATE. Missing lines are inserted at zero first so they can
// be locked like the rest. Item names are locked in sorted order so two
// concurrent receipts touching the same items cannot deadlock.
func (r *PgxInventoryRepository) FindLinesForUpdate(ctx context.Context, tx pgx.Tx, itemNames []string) (map[string]domain.InventoryLine, error) {
	result := make(map[string]domain.InventoryLine, len(itemNames))
	if len(itemNames) == 0 {
		return result, nil
	}

	sorted := make([]string, len(itemNames))
	copy(sorted, itemNames)
	sort.Strings(sorted)

	insertQuery := `
		INSERT INTO inventory_lines (item_name, quantity_in, quantity_out)
		VALUES ($1, 0, 0)
		ON CONFLICT (item_name) DO NOTHING;
	`
	for _, name := range sorted {
		if _, err := tx.Exec(ctx, insertQuery, name); err != nil {
			return nil, mapDBError("failed to seed inventory line "+name, err)
		}
	}

	lockQuery := `
		SELECT item_name, quantity_in, quantity_out
		FROM inventory_lines
		WHERE item_name = ANY($1)
		ORDER BY item_name
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, sorted)
	if err != nil {
		return nil, mapDBError("failed to lock inventory lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.InventoryLine
		if err := rows.Scan(&m.ItemName, &m.QuantityIn, &m.QuantityOut); err != nil {
			return nil, mapDBError("failed to scan locked inventory line row", err)
		}
		result[m.ItemName] = domain.InventoryLine{ItemName: m.ItemName, QuantityIn: m.QuantityIn, QuantityOut: m.QuantityOut}
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError("error iterating locked inventory line rows", err)
	}
	return result, nil
}

// ApplyDeltasInTx adds the given quantities to quantity_in/quantity_out of
// already-locked lines. Deltas may be negative when a receipt is shrunk or
// deleted.
func (r *PgxInventoryRepository) ApplyDeltasInTx(ctx context.Context, tx pgx.Tx, inDeltas, outDeltas map[string]decimal.Decimal) error {
	names := make(map[string]struct{}, len(inDeltas)+len(outDeltas))
	for name := range inDeltas {
		names[name] = struct{}{}
	}
	for name := range outDeltas {
		names[name] = struct{}{}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	query := `
		UPDATE inventory_lines
		SET quantity_in = quantity_in + $2,
		    quantity_out = quantity_out + $3
		WHERE item_name = $1;
	`
	batch := &pgx.Batch{}
	for _, name := range sorted {
		inDelta := inDeltas[name]   // zero value when absent
		outDelta := outDeltas[name] // zero value when absent
		if inDelta.IsZero() && outDelta.IsZero() {
			continue
		}
		batch.Queue(query, name, inDelta, outDelta)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapDBError("failed to apply inventory deltas", err)
	}
	return nil
}
