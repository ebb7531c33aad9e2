package services

import (
	"context"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
)

// PaymentSvcFacade defines payment operations. Admission is decided at
// commit time against the receipt's remaining balance read under lock; a
// rejection is terminal for the request and carries the authoritative
// remaining value.
type PaymentSvcFacade interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, actor domain.Actor) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actor domain.Actor) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID string, actor domain.Actor) error
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPaymentsByReceipt(ctx context.Context, receiptID string) ([]domain.Payment, error)
	ListPaymentsByAccount(ctx context.Context, accountID string) ([]domain.Payment, error)
}
