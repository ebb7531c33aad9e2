package domain

// UserRole is the capability level carried by an authenticated user.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
)

// User is an operator of the system.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}

// Actor is the capability passed explicitly into every coordinator call.
// Authorization is never read from ambient state.
type Actor struct {
	UserID string
	Role   UserRole
}

// CanMutate reports whether the actor may create, update or delete receipts,
// payments and accounts.
func (a Actor) CanMutate() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}

// CanDeleteAccount reports whether the actor may delete trading-party accounts.
func (a Actor) CanDeleteAccount() bool {
	return a.Role == RoleAdmin
}
