package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata_backend/internal/core/ports/repositories"
	"github.com/shopkhata/shopkhata_backend/internal/models"
	"github.com/shopkhata/shopkhata_backend/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payments.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// lockReceiptForSettlement locks the target receipt row and returns its total
// and account. Every payment write against the same receipt serializes here.
func (r *PgxPaymentRepository) lockReceiptForSettlement(ctx context.Context, tx pgx.Tx, receiptID string) (total decimal.Decimal, accountID string, err error) {
	query := `SELECT total, account_id FROM receipts WHERE receipt_id = $1 FOR UPDATE;`
	err = tx.QueryRow(ctx, query, receiptID).Scan(&total, &accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, "", apperrors.ErrNotFound
		}
		return decimal.Zero, "", mapDBError("failed to lock receipt "+receiptID, err)
	}
	return total, accountID, nil
}

// settledAmountInTx sums the receipt's payments under the receipt lock,
// optionally excluding one payment (the one being rewritten).
func (r *PgxPaymentRepository) settledAmountInTx(ctx context.Context, tx pgx.Tx, receiptID, excludePaymentID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE receipt_id = $1 AND payment_id != $2;
	`
	var settled decimal.Decimal
	if err := tx.QueryRow(ctx, query, receiptID, excludePaymentID).Scan(&settled); err != nil {
		return decimal.Zero, mapDBError("failed to sum payments of receipt "+receiptID, err)
	}
	return settled, nil
}

// SavePayment inserts a payment in one transaction. The receipt row is locked,
// its linked payments re-summed and the remaining-balance ceiling re-checked
// against those locked values; a rejection carries the remaining figure the
// decision was made on.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	total, accountID, err := r.lockReceiptForSettlement(ctx, tx, payment.ReceiptID)
	if err != nil {
		return err
	}
	if accountID != payment.AccountID {
		return apperrors.ErrCrossAccountMismatch
	}

	settled, err := r.settledAmountInTx(ctx, tx, payment.ReceiptID, payment.PaymentID)
	if err != nil {
		return err
	}
	remaining := total.Sub(settled)
	if payment.Amount.GreaterThan(remaining) {
		return &apperrors.AmountExceedsRemainingError{ReceiptID: payment.ReceiptID, Remaining: remaining}
	}

	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (
			payment_id, receipt_id, account_id, direction, amount, payment_date, mode, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.ReceiptID,
		m.AccountID,
		m.Direction,
		m.Amount,
		m.PaymentDate,
		m.Mode,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError("failed to insert payment "+m.PaymentID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdatePayment rewrites a payment in one transaction. The ceiling re-check
// excludes the payment's own previous amount, so raising an amount only needs
// headroom for the difference.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	total, _, err := r.lockReceiptForSettlement(ctx, tx, payment.ReceiptID)
	if err != nil {
		return err
	}

	settled, err := r.settledAmountInTx(ctx, tx, payment.ReceiptID, payment.PaymentID)
	if err != nil {
		return err
	}
	remaining := total.Sub(settled)
	if payment.Amount.GreaterThan(remaining) {
		return &apperrors.AmountExceedsRemainingError{ReceiptID: payment.ReceiptID, Remaining: remaining}
	}

	m := mapping.ToModelPayment(payment)
	query := `
		UPDATE payments
		SET amount = $2,
		    payment_date = $3,
		    mode = $4,
		    notes = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE payment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.Amount,
		m.PaymentDate,
		m.Mode,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapDBError("failed to update payment "+m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + m.PaymentID + " not found for update")
	}

	return r.Commit(ctx, tx)
}

// DeletePayment removes a payment. No ceiling check is needed: removing a
// payment only frees remaining balance.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return mapDBError("failed to delete payment "+paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + paymentID + " not found for delete")
	}
	return nil
}

const paymentColumns = `
	payment_id, receipt_id, account_id, direction, amount, payment_date, mode, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

// FindPaymentByID retrieves one payment.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	var m models.Payment
	err := r.Pool.QueryRow(ctx, query, paymentID).Scan(
		&m.PaymentID,
		&m.ReceiptID,
		&m.AccountID,
		&m.Direction,
		&m.Amount,
		&m.PaymentDate,
		&m.Mode,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapDBError("failed to find payment "+paymentID, err)
	}

	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// FindPaymentsByReceiptID retrieves all payments settling one receipt, oldest
// first.
func (r *PgxPaymentRepository) FindPaymentsByReceiptID(ctx context.Context, receiptID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE receipt_id = $1 ORDER BY payment_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, receiptID)
	if err != nil {
		return nil, mapDBError("failed to query payments for receipt "+receiptID, err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// ListPaymentsByAccount retrieves all payments of one account, newest first.
func (r *PgxPaymentRepository) ListPaymentsByAccount(ctx context.Context, accountID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE account_id = $1 ORDER BY payment_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, mapDBError("failed to query payments for account "+accountID, err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

func scanPayments(rows pgx.Rows) ([]domain.Payment, error) {
	payments := []models.Payment{}
	for rows.Next() {
		var m models.Payment
		err := rows.Scan(
			&m.PaymentID,
			&m.ReceiptID,
			&m.AccountID,
			&m.Direction,
			&m.Amount,
			&m.PaymentDate,
			&m.Mode,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, mapDBError("failed to scan payment row", err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapDBError("error iterating payment rows", err)
	}
	return mapping.ToDomainPaymentSlice(payments), nil
}
