package domain

// PartyKind classifies a trading party. It is informational only: both kinds
// can appear on either side of a receipt, and balances are derived from the
// receipts and payments themselves, never from the kind.
type PartyKind string

const (
	Creditor PartyKind = "CREDITOR"
	Debitor  PartyKind = "DEBITOR"
)

// Account represents a trading party the business buys from or sells to.
type Account struct {
	AccountID string    `json:"accountID"`
	Name      string    `json:"name"`
	Kind      PartyKind `json:"kind"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	AuditFields
}
