package mapping

import (
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	"github.com/shopkhata/shopkhata_backend/internal/models"
)

// ToModelReceipt converts a domain receipt header for DB storage.
func ToModelReceipt(d domain.Receipt) models.Receipt {
	return models.Receipt{
		ReceiptID:   d.ReceiptID,
		AccountID:   d.AccountID,
		Direction:   models.ReceiptDirection(d.Direction),
		ReceiptDate: d.ReceiptDate,
		Notes:       d.Notes,
		Total:       d.Total,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceipt converts a DB receipt row to the domain layer. Items are
// attached separately by the repository.
func ToDomainReceipt(m models.Receipt) domain.Receipt {
	return domain.Receipt{
		ReceiptID:   m.ReceiptID,
		AccountID:   m.AccountID,
		Direction:   domain.ReceiptDirection(m.Direction),
		ReceiptDate: m.ReceiptDate,
		Notes:       m.Notes,
		Total:       m.Total,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReceiptItems converts line items for DB storage, assigning positions
// from slice order.
func ToModelReceiptItems(receiptID string, items []domain.LineItem) []models.ReceiptItem {
	out := make([]models.ReceiptItem, len(items))
	for i, it := range items {
		out[i] = models.ReceiptItem{
			ItemID:    it.ItemID,
			ReceiptID: receiptID,
			Position:  i,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
		}
	}
	return out
}

// ToDomainLineItems converts DB item rows (already ordered by position) to
// domain line items.
func ToDomainLineItems(ms []models.ReceiptItem) []domain.LineItem {
	out := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		out[i] = domain.LineItem{
			ItemID:    m.ItemID,
			ItemName:  m.ItemName,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			UnitPrice: m.UnitPrice,
		}
	}
	return out
}
