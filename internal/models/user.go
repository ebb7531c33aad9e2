package models

// User is the DB representation of an operator.
type User struct {
	UserID       string
	Username     string
	PasswordHash string
	Role         string
	AuditFields
}
