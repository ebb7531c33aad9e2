package mapping

import (
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	"github.com/shopkhata/shopkhata_backend/internal/models"
)

// ToModelPayment converts a domain payment for DB storage.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:   d.PaymentID,
		ReceiptID:   d.ReceiptID,
		AccountID:   d.AccountID,
		Direction:   string(d.Direction),
		Amount:      d.Amount,
		PaymentDate: d.PaymentDate,
		Mode:        string(d.Mode),
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a DB payment row to the domain layer.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		ReceiptID:   m.ReceiptID,
		AccountID:   m.AccountID,
		Direction:   domain.PaymentDirection(m.Direction),
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Mode:        domain.PaymentMode(m.Mode),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of DB payment rows.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	out := make([]domain.Payment, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPayment(m)
	}
	return out
}
