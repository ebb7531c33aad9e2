package repositories

import (
	"context"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// PaymentRepositoryFacade defines the transactional storage operations for
// payments. SavePayment and UpdatePayment are the storage half of the payment
// coordinator: they lock the target receipt row, re-sum its linked payments,
// re-check the remaining-balance ceiling and the account link, then write and
// commit. Rejections carry *apperrors.AmountExceedsRemainingError with the
// remaining value read under lock.
type PaymentRepositoryFacade interface {
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment rewrites the payment; the ceiling check excludes the
	// payment's own previous amount.
	UpdatePayment(ctx context.Context, payment domain.Payment) error

	// DeletePayment always succeeds for an existing payment and frees up
	// remaining balance on its receipt.
	DeletePayment(ctx context.Context, paymentID string) error

	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	FindPaymentsByReceiptID(ctx context.Context, receiptID string) ([]domain.Payment, error)
	ListPaymentsByAccount(ctx context.Context, accountID string) ([]domain.Payment, error)
}
