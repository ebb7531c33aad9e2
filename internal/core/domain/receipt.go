package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptDirection says which way goods moved: Inbound is goods received
// (purchases), Outbound is goods issued (sales).
type ReceiptDirection string

const (
	Inbound  ReceiptDirection = "INBOUND"
	Outbound ReceiptDirection = "OUTBOUND"
)

// LineItem is one line of a receipt. Quantity must be at least 0.01 and
// UnitPrice must be non-negative; the totaler rejects anything else.
type LineItem struct {
	ItemID    string          `json:"itemID"`
	ItemName  string          `json:"itemName"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Receipt is a goods-in or goods-out document with its line items.
// Total is derived: the sum of per-line quantity×unit_price, each line
// rounded to 2 decimal places (half-even) before summation. It is recomputed
// on every create and update and is never accepted from a caller.
type Receipt struct {
	ReceiptID   string           `json:"receiptID"`
	AccountID   string           `json:"accountID"`
	Direction   ReceiptDirection `json:"direction"`
	ReceiptDate time.Time        `json:"receiptDate"`
	Notes       string           `json:"notes"`
	Items       []LineItem       `json:"items,omitempty"`
	Total       decimal.Decimal  `json:"total"`
	AuditFields
}

// SettlingDirection returns the payment direction that settles this receipt:
// outbound receipts (sales) are settled by money coming in, inbound receipts
// (purchases) by money going out.
func (r *Receipt) SettlingDirection() PaymentDirection {
	if r.Direction == Outbound {
		return PaymentIn
	}
	return PaymentOut
}
