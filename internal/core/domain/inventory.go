package domain

import "github.com/shopspring/decimal"

// InventoryLine is the derived per-item stock projection. The storage layer
// maintains it transactionally alongside receipt mutations; the core only
// reads it for validation.
type InventoryLine struct {
	ItemName    string          `json:"itemName"`
	QuantityIn  decimal.Decimal `json:"quantityIn"`
	QuantityOut decimal.Decimal `json:"quantityOut"`
}

// Available returns received minus issued stock for the line.
func (l InventoryLine) Available() decimal.Decimal {
	return l.QuantityIn.Sub(l.QuantityOut)
}
