package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// CreatePaymentRequest is the payload for recording a payment against a
// receipt.
type CreatePaymentRequest struct {
	ReceiptID string          `json:"receiptID" binding:"required"`
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Mode      string          `json:"mode" binding:"required,oneof=CASH UPI BANK_TRANSFER CHEQUE CARD"`
	Notes     string          `json:"notes"`
}

// UpdatePaymentRequest edits a payment. Nil fields are left unchanged.
type UpdatePaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Date   *time.Time       `json:"date"`
	Mode   *string          `json:"mode" binding:"omitempty,oneof=CASH UPI BANK_TRANSFER CHEQUE CARD"`
	Notes  *string          `json:"notes"`
}

// PaymentResponse is the representation returned to callers.
type PaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	ReceiptID string          `json:"receiptID"`
	AccountID string          `json:"accountID"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Mode      string          `json:"mode"`
	Notes     string          `json:"notes,omitempty"`
}

// ToPaymentResponse converts a domain payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		ReceiptID: p.ReceiptID,
		AccountID: p.AccountID,
		Direction: string(p.Direction),
		Amount:    p.Amount,
		Date:      p.PaymentDate,
		Mode:      string(p.Mode),
		Notes:     p.Notes,
	}
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out
}
