package services

import (
	"context"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
)

// AccountSvcFacade defines account operations. Every mutation takes the
// caller's Actor explicitly; authorization is never ambient.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string, actor domain.Actor) error

	// GetAccountBalance derives the net receivable/payable position across
	// all the account's receipts and payments. Values are not clamped to
	// zero.
	GetAccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error)
}
