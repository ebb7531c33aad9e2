package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
)

// CheckAvailability decides whether an outbound movement of requestedQty may
// proceed against currentAvailable. It is a pure decision: the caller must
// supply an availability figure read under a row lock in the same transaction
// that will apply the movement. Rejections carry the supplied availability.
func CheckAvailability(itemName string, requestedQty, currentAvailable decimal.Decimal) error {
	if requestedQty.GreaterThan(currentAvailable) {
		return &apperrors.InsufficientStockError{
			ItemName:  itemName,
			Available: currentAvailable,
		}
	}
	return nil
}

// EffectiveAvailable returns availability as if the receipt's previous
// outbound quantity for the item were first reverted. Receipt updates check
// against this figure so that shrinking or re-ordering a receipt's own items
// is never falsely rejected.
func EffectiveAvailable(currentAvailable, previousOutboundQty decimal.Decimal) decimal.Decimal {
	return currentAvailable.Add(previousOutboundQty)
}
