package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	portsrepo "github.com/shopkhata/shopkhata_backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata_backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
	"github.com/shopkhata/shopkhata_backend/internal/middleware"
)

// paymentService coordinates payment mutations. Validation here is advisory;
// the repository re-checks the remaining-balance ceiling under a receipt row
// lock at commit time, so a concurrent writer can only turn an optimistic
// accept into a rejection, never the reverse.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	receiptRepo portsrepo.ReceiptRepositoryFacade
}

// NewPaymentService creates a new payment service.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, receiptRepo portsrepo.ReceiptRepositoryFacade) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		receiptRepo: receiptRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment records a payment against a receipt. The payment direction is
// derived from the receipt, never taken from the request.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanMutate() {
		return nil, fmt.Errorf("%w: role %s may not record payments", apperrors.ErrForbidden, actor.Role)
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}
	if !domain.ValidPaymentMode(domain.PaymentMode(req.Mode)) {
		return nil, fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, req.Mode)
	}

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, req.ReceiptID)
	if err != nil {
		return nil, fmt.Errorf("receipt %s: %w", req.ReceiptID, err)
	}
	if receipt.AccountID != req.AccountID {
		return nil, fmt.Errorf("%w: payment account %s does not match receipt account %s", apperrors.ErrCrossAccountMismatch, req.AccountID, receipt.AccountID)
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		ReceiptID:   req.ReceiptID,
		AccountID:   req.AccountID,
		Direction:   receipt.SettlingDirection(),
		Amount:      req.Amount,
		PaymentDate: req.Date,
		Mode:        domain.PaymentMode(req.Mode),
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		logger.Warn("Payment rejected", slog.String("receipt_id", req.ReceiptID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("receipt_id", payment.ReceiptID),
		slog.String("amount", payment.Amount.StringFixed(2)),
	)
	return &payment, nil
}

// UpdatePayment edits a payment. The ceiling re-check in the repository
// excludes the payment's own previous amount, so raising an amount only needs
// headroom for the difference.
func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanMutate() {
		return nil, fmt.Errorf("%w: role %s may not update payments", apperrors.ErrForbidden, actor.Role)
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
		}
		payment.Amount = *req.Amount
		updated = true
	}
	if req.Date != nil {
		payment.PaymentDate = *req.Date
		updated = true
	}
	if req.Mode != nil {
		if !domain.ValidPaymentMode(domain.PaymentMode(*req.Mode)) {
			return nil, fmt.Errorf("%w: unknown payment mode %q", apperrors.ErrValidation, *req.Mode)
		}
		payment.Mode = domain.PaymentMode(*req.Mode)
		updated = true
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
		updated = true
	}

	if !updated {
		return payment, nil
	}

	payment.LastUpdatedAt = time.Now().UTC()
	payment.LastUpdatedBy = actor.UserID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		logger.Warn("Payment update rejected", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment updated", slog.String("payment_id", paymentID))
	return payment, nil
}

// DeletePayment removes a payment, freeing remaining balance on its receipt.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanMutate() {
		return fmt.Errorf("%w: role %s may not delete payments", apperrors.ErrForbidden, actor.Role)
	}

	if err := s.paymentRepo.DeletePayment(ctx, paymentID); err != nil {
		logger.Warn("Payment delete rejected", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

// GetPaymentByID retrieves one payment.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return payment, nil
}

// ListPaymentsByReceipt retrieves all payments settling one receipt.
func (s *paymentService) ListPaymentsByReceipt(ctx context.Context, receiptID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.FindPaymentsByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for receipt %s: %w", receiptID, err)
	}
	return payments, nil
}

// ListPaymentsByAccount retrieves all payments of one account.
func (s *paymentService) ListPaymentsByAccount(ctx context.Context, accountID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPaymentsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for account %s: %w", accountID, err)
	}
	return payments, nil
}
