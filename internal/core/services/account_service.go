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
	"github.com/shopkhata/shopkhata_backend/internal/utils/accounting"
)

// accountService provides trading-party account operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	receiptRepo portsrepo.ReceiptRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, receiptRepo portsrepo.ReceiptRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		receiptRepo: receiptRepo,
		paymentRepo: paymentRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new trading-party account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanMutate() {
		return nil, fmt.Errorf("%w: role %s may not create accounts", apperrors.ErrForbidden, actor.Role)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      req.Name,
		Kind:      domain.PartyKind(req.Kind),
		Phone:     req.Phone,
		Address:   req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves an account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a page of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount edits the contact fields of an account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanMutate() {
		return nil, fmt.Errorf("%w: role %s may not update accounts", apperrors.ErrForbidden, actor.Role)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
		updated = true
	}
	if req.Address != nil {
		account.Address = *req.Address
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = actor.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account. The repository rejects the delete inside
// its transaction while receipts still reference the account.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.CanDeleteAccount() {
		return fmt.Errorf("%w: role %s may not delete accounts", apperrors.ErrForbidden, actor.Role)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Warn("Account delete rejected", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// GetAccountBalance derives {toCollect, toPay} across all the account's
// receipts and payments. The figures are advisory and may be negative; only
// per-receipt ceilings are enforced at commit time.
func (s *accountService) GetAccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.ListReceiptsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts for account %s: %w", accountID, err)
	}
	payments, err := s.paymentRepo.ListPaymentsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for account %s: %w", accountID, err)
	}

	balance := accounting.ComputeAccountBalance(receipts, payments)
	return &balance, nil
}
