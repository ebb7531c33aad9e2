package models

// PartyKind mirrors domain.PartyKind at the DB layer.
type PartyKind string

// Account is the DB representation of a trading party.
type Account struct {
	AccountID string
	Name      string
	Kind      PartyKind
	Phone     string
	Address   string
	AuditFields
}
