package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// ComputeReceiptBalance derives {total, settled, remaining} for a receipt
// from its linked payments. excludePaymentID, when non-empty, leaves that
// payment out of the settled sum; callers validating a payment update pass
// the payment being edited so its old amount does not count against itself.
func ComputeReceiptBalance(receipt domain.Receipt, payments []domain.Payment, excludePaymentID string) domain.ReceiptBalance {
	settled := decimal.Zero
	for _, p := range payments {
		if excludePaymentID != "" && p.PaymentID == excludePaymentID {
			continue
		}
		settled = settled.Add(p.Amount)
	}
	return domain.ReceiptBalance{
		Total:     receipt.Total,
		Settled:   settled,
		Remaining: receipt.Total.Sub(settled),
	}
}

// ComputeAccountBalance derives the net receivable/payable position of an
// account from all its receipts and payments:
//
//	toCollect = Σ outbound receipt totals − Σ payments received
//	toPay     = Σ inbound receipt totals  − Σ payments made
//
// Neither figure is clamped: negative values mean net overpayment at the
// account level, which is legal (a customer may pre-pay against future
// receipts) even though per-receipt overpayment is rejected.
func ComputeAccountBalance(receipts []domain.Receipt, payments []domain.Payment) domain.AccountBalance {
	outboundTotal := decimal.Zero
	inboundTotal := decimal.Zero
	for _, r := range receipts {
		if r.Direction == domain.Outbound {
			outboundTotal = outboundTotal.Add(r.Total)
		} else {
			inboundTotal = inboundTotal.Add(r.Total)
		}
	}

	received := decimal.Zero
	paid := decimal.Zero
	for _, p := range payments {
		if p.Direction == domain.PaymentIn {
			received = received.Add(p.Amount)
		} else {
			paid = paid.Add(p.Amount)
		}
	}

	return domain.AccountBalance{
		ToCollect: outboundTotal.Sub(received),
		ToPay:     inboundTotal.Sub(paid),
	}
}
