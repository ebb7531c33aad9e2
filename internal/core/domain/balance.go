package domain

import "github.com/shopspring/decimal"

// ReceiptBalance is the settlement position of a single receipt.
// Remaining = Total − Settled and is never negative after a committed state,
// because payment admission enforces Settled ≤ Total.
type ReceiptBalance struct {
	Total     decimal.Decimal `json:"total"`
	Settled   decimal.Decimal `json:"settled"`
	Remaining decimal.Decimal `json:"remaining"`
}

// AccountBalance is the net position of a trading party across all its
// receipts and payments. ToCollect is money owed to the business (outbound
// receipt totals minus payments received); ToPay is money the business owes
// (inbound receipt totals minus payments made). Neither is clamped to zero:
// a negative value means net overpayment at the account level, which is
// legal even though per-receipt overpayment is not.
type AccountBalance struct {
	ToCollect decimal.Decimal `json:"toCollect"`
	ToPay     decimal.Decimal `json:"toPay"`
}
