package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata_backend/internal/core/ports/repositories"
	"github.com/shopkhata/shopkhata_backend/internal/models"
	"github.com/shopkhata/shopkhata_backend/internal/utils/accounting"
	"github.com/shopkhata/shopkhata_backend/internal/utils/mapping"
)

type PgxReceiptRepository struct {
	BaseRepository
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// newPgxReceiptRepository creates a new repository for receipts and their
// items.
func newPgxReceiptRepository(pool *pgxpool.Pool, inventoryRepo portsrepo.InventoryRepositoryFacade) portsrepo.ReceiptRepositoryFacade {
	return &PgxReceiptRepository{
		BaseRepository: BaseRepository{Pool: pool},
		inventoryRepo:  inventoryRepo,
	}
}

var _ portsrepo.ReceiptRepositoryFacade = (*PgxReceiptRepository)(nil)

// quantitiesByItem sums quantities per item name. A receipt may list the same
// item on several lines; the stock check and the deltas see the combined
// quantity.
func quantitiesByItem(items []domain.LineItem) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		out[it.ItemName] = out[it.ItemName].Add(it.Quantity)
	}
	return out
}

// SaveReceipt inserts a receipt with its items in one transaction. For
// outbound receipts the affected inventory lines are locked and availability
// is re-checked against the locked values before anything is written.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	quantities := quantitiesByItem(receipt.Items)
	itemNames := make([]string, 0, len(quantities))
	for name := range quantities {
		itemNames = append(itemNames, name)
	}

	lockedLines, err := r.inventoryRepo.FindLinesForUpdate(ctx, tx, itemNames)
	if err != nil {
		return err
	}

	inDeltas := map[string]decimal.Decimal{}
	outDeltas := map[string]decimal.Decimal{}
	for name, qty := range quantities {
		if receipt.Direction == domain.Outbound {
			if err := accounting.CheckAvailability(name, qty, lockedLines[name].Available()); err != nil {
				return err
			}
			outDeltas[name] = qty
		} else {
			inDeltas[name] = qty
		}
	}

	modelReceipt := mapping.ToModelReceipt(receipt)
	receiptQuery := `
		INSERT INTO receipts (
			receipt_id, account_id, direction, receipt_date, notes, total,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, receiptQuery,
		modelReceipt.ReceiptID,
		modelReceipt.AccountID,
		modelReceipt.Direction,
		modelReceipt.ReceiptDate,
		modelReceipt.Notes,
		modelReceipt.Total,
		modelReceipt.CreatedAt,
		modelReceipt.CreatedBy,
		modelReceipt.LastUpdatedAt,
		modelReceipt.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError("failed to insert receipt "+modelReceipt.ReceiptID, err)
	}

	if err := r.insertItemsInTx(ctx, tx, receipt.ReceiptID, receipt.Items); err != nil {
		return err
	}

	if err := r.inventoryRepo.ApplyDeltasInTx(ctx, tx, inDeltas, outDeltas); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateReceipt replaces the receipt wholesale in one transaction. Items are
// deleted and reinserted, never merged; availability is checked as if the
// receipt's previous quantities were first reverted.
func (r *PgxReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	oldDirection, err := r.lockReceiptRow(ctx, tx, receipt.ReceiptID)
	if err != nil {
		return err
	}

	// Direction is immutable after creation; the stored value wins.
	if oldDirection != string(receipt.Direction) {
		return apperrors.NewAppError(500, "direction mismatch on receipt "+receipt.ReceiptID, nil)
	}

	// A payment may have been admitted against the old total after the
	// service's pre-check; the ceiling must hold against the sum read under
	// the receipt lock.
	var settled decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE receipt_id = $1;`, receipt.ReceiptID).Scan(&settled)
	if err != nil {
		return mapDBError("failed to sum payments of receipt "+receipt.ReceiptID, err)
	}
	if receipt.Total.LessThan(settled) {
		return fmt.Errorf("%w: new total %s is below settled amount %s", apperrors.ErrConflict, receipt.Total.StringFixed(2), settled.StringFixed(2))
	}

	oldItems, err := r.findItemsInTx(ctx, tx, receipt.ReceiptID)
	if err != nil {
		return err
	}
	oldQuantities := quantitiesByItem(mapping.ToDomainLineItems(oldItems))
	newQuantities := quantitiesByItem(receipt.Items)

	names := make(map[string]struct{}, len(oldQuantities)+len(newQuantities))
	for name := range oldQuantities {
		names[name] = struct{}{}
	}
	for name := range newQuantities {
		names[name] = struct{}{}
	}
	itemNames := make([]string, 0, len(names))
	for name := range names {
		itemNames = append(itemNames, name)
	}

	lockedLines, err := r.inventoryRepo.FindLinesForUpdate(ctx, tx, itemNames)
	if err != nil {
		return err
	}

	inDeltas := map[string]decimal.Decimal{}
	outDeltas := map[string]decimal.Decimal{}
	for name := range names {
		oldQty := oldQuantities[name]
		newQty := newQuantities[name]
		available := lockedLines[name].Available()

		switch receipt.Direction {
		case domain.Outbound:
			// The receipt's own previous issue is reverted before checking, so
			// shrinking or keeping quantities never trips the guard.
			if err := accounting.CheckAvailability(name, newQty, accounting.EffectiveAvailable(available, oldQty)); err != nil {
				return err
			}
			outDeltas[name] = newQty.Sub(oldQty)
		case domain.Inbound:
			// Shrinking an inbound receipt removes stock other receipts may
			// already have issued; the removal itself must fit availability.
			if reduction := oldQty.Sub(newQty); reduction.IsPositive() {
				if err := accounting.CheckAvailability(name, reduction, available); err != nil {
					return err
				}
			}
			inDeltas[name] = newQty.Sub(oldQty)
		}
	}

	modelReceipt := mapping.ToModelReceipt(receipt)
	updateQuery := `
		UPDATE receipts
		SET receipt_date = $2,
		    notes = $3,
		    total = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE receipt_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery,
		modelReceipt.ReceiptID,
		modelReceipt.ReceiptDate,
		modelReceipt.Notes,
		modelReceipt.Total,
		modelReceipt.LastUpdatedAt,
		modelReceipt.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError("failed to update receipt "+modelReceipt.ReceiptID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM receipt_items WHERE receipt_id = $1;`, receipt.ReceiptID); err != nil {
		return mapDBError("failed to delete items of receipt "+receipt.ReceiptID, err)
	}
	if err := r.insertItemsInTx(ctx, tx, receipt.ReceiptID, receipt.Items); err != nil {
		return err
	}

	if err := r.inventoryRepo.ApplyDeltasInTx(ctx, tx, inDeltas, outDeltas); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteReceipt removes a receipt and its items, reverting its inventory
// contribution. Fails while any payment references the receipt.
func (r *PgxReceiptRepository) DeleteReceipt(ctx context.Context, receiptID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	direction, err := r.lockReceiptRow(ctx, tx, receiptID)
	if err != nil {
		return err
	}

	var paymentCount int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE receipt_id = $1;`, receiptID).Scan(&paymentCount)
	if err != nil {
		return mapDBError("failed to count payments of receipt "+receiptID, err)
	}
	if paymentCount > 0 {
		return apperrors.ErrHasSettledPayments
	}

	items, err := r.findItemsInTx(ctx, tx, receiptID)
	if err != nil {
		return err
	}
	quantities := quantitiesByItem(mapping.ToDomainLineItems(items))

	itemNames := make([]string, 0, len(quantities))
	for name := range quantities {
		itemNames = append(itemNames, name)
	}
	lockedLines, err := r.inventoryRepo.FindLinesForUpdate(ctx, tx, itemNames)
	if err != nil {
		return err
	}

	inDeltas := map[string]decimal.Decimal{}
	outDeltas := map[string]decimal.Decimal{}
	for name, qty := range quantities {
		if direction == string(domain.Outbound) {
			outDeltas[name] = qty.Neg()
		} else {
			// Removing an inbound receipt removes its stock; the removal must
			// fit what is still available.
			if err := accounting.CheckAvailability(name, qty, lockedLines[name].Available()); err != nil {
				return err
			}
			inDeltas[name] = qty.Neg()
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM receipt_items WHERE receipt_id = $1;`, receiptID); err != nil {
		return mapDBError("failed to delete items of receipt "+receiptID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM receipts WHERE receipt_id = $1;`, receiptID); err != nil {
		return mapDBError("failed to delete receipt "+receiptID, err)
	}

	if err := r.inventoryRepo.ApplyDeltasInTx(ctx, tx, inDeltas, outDeltas); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// lockReceiptRow reads the receipt's direction with SELECT ... FOR UPDATE,
// serializing concurrent mutations of the same receipt.
func (r *PgxReceiptRepository) lockReceiptRow(ctx context.Context, tx pgx.Tx, receiptID string) (string, error) {
	var direction string
	err := tx.QueryRow(ctx, `SELECT direction FROM receipts WHERE receipt_id = $1 FOR UPDATE;`, receiptID).Scan(&direction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", mapDBError("failed to lock receipt "+receiptID, err)
	}
	return direction, nil
}

// insertItemsInTx batch-inserts receipt items, assigning positions from slice
// order.
func (r *PgxReceiptRepository) insertItemsInTx(ctx context.Context, tx pgx.Tx, receiptID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO receipt_items (item_id, receipt_id, position, item_name, quantity, unit, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, m := range mapping.ToModelReceiptItems(receiptID, items) {
		batch.Queue(query, m.ItemID, m.ReceiptID, m.Position, m.ItemName, m.Quantity, m.Unit, m.UnitPrice)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapDBError("failed to insert items of receipt "+receiptID, err)
	}
	return nil
}

// findItemsInTx reads the receipt's items inside the transaction, ordered by
// position.
func (r *PgxReceiptRepository) findItemsInTx(ctx context.Context, tx pgx.Tx, receiptID string) ([]models.ReceiptItem, error) {
	query := `
		SELECT item_id, receipt_id, position, item_name, quantity, unit, unit_price
		FROM receipt_items
		WHERE receipt_id = $1
		ORDER BY position;
	`
	rows, err := tx.Query(ctx, query, receiptID)
	if err != nil {
		return nil, mapDBError("failed to query items of receipt "+receiptID, err)
	}
	defer rows.Close()

	return scanReceiptItems(rows, receiptID)
}

// FindReceiptByID retrieves a receipt with its items attached, ordered by
// their original position.
func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `
		SELECT receipt_id, account_id, direction, receipt_date, notes, total,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM receipts
		WHERE receipt_id = $1;
	`
	var m models.Receipt
	err := r.Pool.QueryRow(ctx, query, receiptID).Scan(
		&m.ReceiptID,
		&m.AccountID,
		&m.Direction,
		&m.ReceiptDate,
		&m.Notes,
		&m.Total,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapDBError("failed to find receipt "+receiptID, err)
	}

	itemsQuery := `
		SELECT item_id, receipt_id, position, item_name, quantity, unit, unit_price
		FROM receipt_items
		WHERE receipt_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, itemsQuery, receiptID)
	if err != nil {
		return nil, mapDBError("failed to query items of receipt "+receiptID, err)
	}
	defer rows.Close()

	items, err := scanReceiptItems(rows, receiptID)
	if err != nil {
		return nil, err
	}

	receipt := mapping.ToDomainReceipt(m)
	receipt.Items = mapping.ToDomainLineItems(items)
	return &receipt, nil
}

// ListReceiptsByAccount retrieves all receipts of one account, newest first.
// Items are not attached.
func (r *PgxReceiptRepository) ListReceiptsByAccount(ctx context.Context, accountID string) ([]domain.Receipt, error) {
	query := `
		SELECT receipt_id, account_id, direction, receipt_date, notes, total,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM receipts
		WHERE account_id = $1
		ORDER BY receipt_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, mapDBError("failed to query receipts for account "+accountID, err)
	}
	defer rows.Close()

	return scanReceipts(rows)
}

// ListReceipts retrieves a page of receipts, newest first. Items are not
// attached.
func (r *PgxReceiptRepository) ListReceipts(ctx context.Context, limit int, offset int) ([]domain.Receipt, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT receipt_id, account_id, direction, receipt_date, notes, total,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM receipts
		ORDER BY receipt_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapDBError("failed to query receipts", err)
	}
	defer rows.Close()

	return scanReceipts(rows)
}

func scanReceipts(rows pgx.Rows) ([]domain.Receipt, error) {
	receipts := []domain.Receipt{}
	for rows.Next() {
		var m models.Receipt
		err := rows.Scan(
			&m.ReceiptID,
			&m.AccountID,
			&m.Direction,
			&m.ReceiptDate,
			&m.Notes,
			&m.Total,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, mapDBError("failed to scan receipt row", err)
		}
		receipts = append(receipts, mapping.ToDomainReceipt(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError("error iterating receipt rows", err)
	}
	return receipts, nil
}

func scanReceiptItems(rows pgx.Rows, receiptID string) ([]models.ReceiptItem, error) {
	items := []models.ReceiptItem{}
	for rows.Next() {
		var it models.ReceiptItem
		err := rows.Scan(
			&it.ItemID,
			&it.ReceiptID,
			&it.Position,
			&it.ItemName,
			&it.Quantity,
			&it.Unit,
			&it.UnitPrice,
		)
		if err != nil {
			return nil, mapDBError("failed to scan item row of receipt "+receiptID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError("error iterating item rows of receipt "+receiptID, err)
	}
	return items, nil
}
