package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the DB representation of a payment row.
type Payment struct {
	PaymentID   string
	ReceiptID   string
	AccountID   string
	Direction   string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Mode        string
	Notes       string
	AuditFields
}
