package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// LineItemRequest is one line of a receipt payload. There is deliberately no
// total field anywhere in the receipt DTOs: totals are always recomputed
// server-side.
type LineItemRequest struct {
	ItemName  string          `json:"itemName" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateReceiptRequest is the payload for creating a receipt whole, with its
// items.
type CreateReceiptRequest struct {
	AccountID string            `json:"accountID" binding:"required"`
	Direction string            `json:"direction" binding:"required,oneof=INBOUND OUTBOUND"`
	Date      time.Time         `json:"date" binding:"required"`
	Notes     string            `json:"notes"`
	Items     []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateReceiptRequest edits a receipt. When Items is provided the item list
// is replaced wholesale, never merged.
type UpdateReceiptRequest struct {
	Date  *time.Time         `json:"date"`
	Notes *string            `json:"notes"`
	Items *[]LineItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// LineItemResponse is one line of a receipt as returned to callers.
type LineItemResponse struct {
	ItemName  string          `json:"itemName"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ReceiptResponse is the representation returned to callers.
type ReceiptResponse struct {
	ReceiptID string             `json:"receiptID"`
	AccountID string             `json:"accountID"`
	Direction string             `json:"direction"`
	Date      time.Time          `json:"date"`
	Notes     string             `json:"notes,omitempty"`
	Items     []LineItemResponse `json:"items,omitempty"`
	Total     decimal.Decimal    `json:"total"`
}

// ReceiptBalanceResponse carries the settlement position of one receipt.
type ReceiptBalanceResponse struct {
	ReceiptID string          `json:"receiptID"`
	Total     decimal.Decimal `json:"total"`
	Settled   decimal.Decimal `json:"settled"`
	Remaining decimal.Decimal `json:"remaining"`
}

// InventoryLineResponse is one row of the stock projection.
type InventoryLineResponse struct {
	ItemName    string          `json:"itemName"`
	QuantityIn  decimal.Decimal `json:"quantityIn"`
	QuantityOut decimal.Decimal `json:"quantityOut"`
	Available   decimal.Decimal `json:"available"`
}

// ToLineItems converts request lines to domain line items. IDs are assigned
// by the service.
func ToLineItems(items []LineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = domain.LineItem{
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
		}
	}
	return out
}

// ToReceiptResponse converts a domain receipt to its response DTO.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	items := make([]LineItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = LineItemResponse{
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
		}
	}
	return ReceiptResponse{
		ReceiptID: r.ReceiptID,
		AccountID: r.AccountID,
		Direction: string(r.Direction),
		Date:      r.ReceiptDate,
		Notes:     r.Notes,
		Items:     items,
		Total:     r.Total,
	}
}

// ToReceiptResponses converts a slice of domain receipts.
func ToReceiptResponses(receipts []domain.Receipt) []ReceiptResponse {
	out := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		out[i] = ToReceiptResponse(&receipts[i])
	}
	return out
}

// ToInventoryLineResponse converts a domain inventory line.
func ToInventoryLineResponse(l domain.InventoryLine) InventoryLineResponse {
	return InventoryLineResponse{
		ItemName:    l.ItemName,
		QuantityIn:  l.QuantityIn,
		QuantityOut: l.QuantityOut,
		Available:   l.Available(),
	}
}
