package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/shopkhata/shopkhata_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	receiptRepo := newPgxReceiptRepository(dbPool, inventoryRepo)
	paymentRepo := newPgxPaymentRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		ReceiptRepo:   receiptRepo,
		PaymentRepo:   paymentRepo,
		InventoryRepo: inventoryRepo,
		UserRepo:      userRepo,
	}
}
