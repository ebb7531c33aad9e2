package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode enumerates how money moved.
type PaymentMode string

const (
	ModeCash         PaymentMode = "CASH"
	ModeUPI          PaymentMode = "UPI"
	ModeBankTransfer PaymentMode = "BANK_TRANSFER"
	ModeCheque       PaymentMode = "CHEQUE"
	ModeCard         PaymentMode = "CARD"
)

// ValidPaymentMode reports whether m is one of the known modes.
func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case ModeCash, ModeUPI, ModeBankTransfer, ModeCheque, ModeCard:
		return true
	}
	return false
}

// PaymentDirection says which way money moved. It always mirrors the settled
// receipt: PaymentIn settles an outbound receipt, PaymentOut an inbound one.
type PaymentDirection string

const (
	PaymentIn  PaymentDirection = "IN"
	PaymentOut PaymentDirection = "OUT"
)

// Payment settles exactly one receipt. Its amount is bounded by the receipt's
// remaining balance at commit time, and its account must equal the receipt's.
type Payment struct {
	PaymentID   string           `json:"paymentID"`
	ReceiptID   string           `json:"receiptID"`
	AccountID   string           `json:"accountID"`
	Direction   PaymentDirection `json:"direction"`
	Amount      decimal.Decimal  `json:"amount"`
	PaymentDate time.Time        `json:"paymentDate"`
	Mode        PaymentMode      `json:"mode"`
	Notes       string           `json:"notes"`
	AuditFields
}
