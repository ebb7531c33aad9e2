package services

import (
	portsrepo "github.com/shopkhata/shopkhata_backend/internal/core/ports/repositories"
	portssvc "github.com/shopkhata/shopkhata_backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata_backend/pkg/config"
)

// NewServicesContainer wires every service from the repository provider.
func NewServicesContainer(repos *portsrepo.RepositoryProvider, cfg *config.AppConfig) *portssvc.ServicesProvider {
	return &portssvc.ServicesProvider{
		AccountSvc: NewAccountService(repos.AccountRepo, repos.ReceiptRepo, repos.PaymentRepo),
		ReceiptSvc: NewReceiptService(repos.ReceiptRepo, repos.PaymentRepo, repos.AccountRepo, repos.InventoryRepo),
		PaymentSvc: NewPaymentService(repos.PaymentRepo, repos.ReceiptRepo),
		UserSvc:    NewUserService(repos.UserRepo),
		AuthSvc:    NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry),
	}
}
