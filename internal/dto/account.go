package dto

import (
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
)

// CreateAccountRequest is the payload for creating a trading-party account.
type CreateAccountRequest struct {
	Name    string `json:"name" binding:"required"`
	Kind    string `json:"kind" binding:"required,oneof=CREDITOR DEBITOR"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateAccountRequest is the payload for editing an account. Nil fields are
// left unchanged.
type UpdateAccountRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// AccountResponse is the representation returned to callers.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// AccountBalanceResponse carries the net position of an account. Values may
// be negative (account-level overpayment); clients render the sign, the
// server never treats it as an error.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	ToCollect decimal.Decimal `json:"toCollect"`
	ToPay     decimal.Decimal `json:"toPay"`
}

// ToAccountResponse converts a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Name:      a.Name,
		Kind:      string(a.Kind),
		Phone:     a.Phone,
		Address:   a.Address,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
