package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptDirection mirrors domain.ReceiptDirection at the DB layer.
type ReceiptDirection string

// Receipt is the DB representation of a receipt header.
type Receipt struct {
	ReceiptID   string
	AccountID   string
	Direction   ReceiptDirection
	ReceiptDate time.Time
	Notes       string
	Total       decimal.Decimal
	AuditFields
}

// ReceiptItem is one row of receipt_items. Position preserves the caller's
// item ordering across the delete-and-reinsert update cycle.
type ReceiptItem struct {
	ItemID    string
	ReceiptID string
	Position  int
	ItemName  string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
}
