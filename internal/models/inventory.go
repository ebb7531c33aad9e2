package models

import "github.com/shopspring/decimal"

// InventoryLine is the DB representation of the per-item stock projection.
type InventoryLine struct {
	ItemName    string
	QuantityIn  decimal.Decimal
	QuantityOut decimal.Decimal
}
