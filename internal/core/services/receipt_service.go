package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata_backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata_backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
	"github.com/shopkhata/shopkhata_backend/internal/middleware"
	"github.com/shopkhata/shopkhata_backend/internal/utils/accounting"
)

// receiptService coordinates receipt mutations. It validates input and
// recomputes totals; the repository re-validates stock under row locks inside
// the commit transaction, so a stale read here can delay but never corrupt.
type receiptService struct {
	receiptRepo   portsrepo.ReceiptRepositoryFacade
	paymentRepo   portsrepo.PaymentRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(receiptRepo portsrepo.ReceiptRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.ReceiptSvcFacade {
	return &receiptService{
		receiptRepo:   receiptRepo,
		paymentRepo:   paymentRepo,
		accountRepo:   accountRepo,
		inventoryRepo: inventoryRepo,
	}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// buildLineItems converts request lines to domain items with fresh IDs and
// computes the receipt total. The total is always derived here; callers have
// no way to supply one.
func buildLineItems(reqItems []dto.LineItemRequest) ([]domain.LineItem, decimal.Decimal, error) {
	items := dto.ToLineItems(reqItems)
	for i := range items {
		items[i].ItemID = uuid.NewString()
	}
	total, err := accounting.ComputeReceiptTotal(items)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return items, total, nil
}

// CreateReceipt creates a receipt whole, with its items.
func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, actor domain.Actor) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanMutate() {
		return nil, fmt.Errorf("%w: role %s may not create receipts", apperrors.ErrForbidden, actor.Role)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		return nil, fmt.Errorf("account %s: %w", req.AccountID, err)
	}

	items, total, err := buildLineItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	receipt := domain.Receipt{
		ReceiptID:   uuid.NewString(),
		AccountID:   req.AccountID,
		Direction:   domain.ReceiptDirection(req.Direction),
		ReceiptDate: req.Date,
		Notes:       req.Notes,
		Items:       items,
		Total:       total,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.receiptRepo.SaveReceipt(ctx, receipt); err != nil {
		logger.Warn("Receipt create rejected", slog.String("receipt_id", receipt.ReceiptID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Receipt created", slog.String("receipt_id", receipt.ReceiptID), slog.String("direction", string(receipt.Direction)))
	return &receipt, nil
}

// UpdateReceipt edits a receipt. A provided item list replaces the old one
// wholesale; the repository deletes and reinserts items and re-checks stock
// as if the receipt's previous quantities were first reverted.
func (s *receiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest, actor domain.Actor) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanMutate() {
		return nil, fmt.Errorf("%w: role %s may not update receipts", apperrors.ErrForbidden, actor.Role)
	}

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Date != nil {
		receipt.ReceiptDate = *req.Date
		updated = true
	}
	if req.Notes != nil {
		receipt.Notes = *req.Notes
		updated = true
	}
	if req.Items != nil {
		items, total, err := buildLineItems(*req.Items)
		if err != nil {
			return nil, err
		}

		// Shrinking the total below what is already settled would break the
		// payment ceiling; reject up front with the authoritative figure. The
		// repository re-checks against the sum read under the receipt lock.
		payments, err := s.paymentRepo.FindPaymentsByReceiptID(ctx, receiptID)
		if err != nil {
			return nil, fmt.Errorf("failed to load payments for receipt %s: %w", receiptID, err)
		}
		balance := accounting.ComputeReceiptBalance(*receipt, payments, "")
		if total.LessThan(balance.Settled) {
			return nil, fmt.Errorf("%w: new total %s is below settled amount %s", apperrors.ErrConflict, total.StringFixed(2), balance.Settled.StringFixed(2))
		}

		receipt.Items = items
		receipt.Total = total
		updated = true
	}

	if !updated {
		return receipt, nil
	}

	receipt.LastUpdatedAt = time.Now().UTC()
	receipt.LastUpdatedBy = actor.UserID

	if err := s.receiptRepo.UpdateReceipt(ctx, *receipt); err != nil {
		logger.Warn("Receipt update rejected", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Receipt updated", slog.String("receipt_id", receiptID))
	return receipt, nil
}

// DeleteReceipt removes a receipt. The repository blocks the delete inside
// its transaction while payments still reference it.
func (s *receiptService) DeleteReceipt(ctx context.Context, receiptID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanMutate() {
		return fmt.Errorf("%w: role %s may not delete receipts", apperrors.ErrForbidden, actor.Role)
	}

	if err := s.receiptRepo.DeleteReceipt(ctx, receiptID); err != nil {
		logger.Warn("Receipt delete rejected", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Receipt deleted", slog.String("receipt_id", receiptID))
	return nil
}

// GetReceiptByID retrieves a receipt with its items.
func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to find receipt %s: %w", receiptID, err)
	}
	return receipt, nil
}

// ListReceipts retrieves a page of receipts.
func (s *receiptService) ListReceipts(ctx context.Context, limit int, offset int) ([]domain.Receipt, error) {
	receipts, err := s.receiptRepo.ListReceipts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}

// ListReceiptsByAccount retrieves all receipts of one account.
func (s *receiptService) ListReceiptsByAccount(ctx context.Context, accountID string) ([]domain.Receipt, error) {
	receipts, err := s.receiptRepo.ListReceiptsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts for account %s: %w", accountID, err)
	}
	return receipts, nil
}

// GetReceiptBalance returns {total, settled, remaining} for one receipt.
// Reading twice without an intervening mutation yields identical results.
func (s *receiptService) GetReceiptBalance(ctx context.Context, receiptID string) (*domain.ReceiptBalance, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindPaymentsByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments for receipt %s: %w", receiptID, err)
	}

	balance := accounting.ComputeReceiptBalance(*receipt, payments, "")
	return &balance, nil
}

// ListInventory retrieves a page of the stock projection.
func (s *receiptService) ListInventory(ctx context.Context, limit int, offset int) ([]domain.InventoryLine, error) {
	lines, err := s.inventoryRepo.ListLines(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return lines, nil
}
