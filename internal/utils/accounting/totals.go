package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// minQuantity is the smallest quantity a line item may carry.
var minQuantity = decimal.NewFromFloat(0.01)

// LineTotal returns quantity × unit_price rounded to 2 decimal places using
// banker's rounding. Each line is rounded before summation so the grand total
// matches what a printed receipt shows line by line.
func LineTotal(item domain.LineItem) decimal.Decimal {
	return item.Quantity.Mul(item.UnitPrice).RoundBank(2)
}

// ComputeReceiptTotal computes a receipt's total from its line items.
// It rejects any item with quantity below 0.01 or a negative unit price.
// The result is exact; summation order does not matter.
func ComputeReceiptTotal(items []domain.LineItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity.LessThan(minQuantity) {
			return decimal.Zero, &apperrors.InvalidLineItemError{
				ItemName: item.ItemName,
				Reason:   "quantity must be at least 0.01",
			}
		}
		if item.UnitPrice.IsNegative() {
			return decimal.Zero, &apperrors.InvalidLineItemError{
				ItemName: item.ItemName,
				Reason:   "unit price must not be negative",
			}
		}
		total = total.Add(LineTotal(item))
	}
	return total, nil
}
