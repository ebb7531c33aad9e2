package repositories

import (
	"context"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for trading-party
// accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. It fails with apperrors.ErrConflict
	// when any receipt still references the account; the check and the delete
	// run in one transaction so a racing receipt insert cannot slip through.
	DeleteAccount(ctx context.Context, accountID string) error
}
