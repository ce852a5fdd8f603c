package types

import "time"

// Role is the authorization tier attached to a user record.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known tiers. Roles arriving
// from requests must be validated before they reach the store.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user, assigned at creation.
	ID string `json:"id" db:"id"`

	// Username is the unique login name. Uniqueness is enforced by the
	// database, not by callers.
	Username string `json:"name" db:"username"`

	// Role indicates the user's authorization tier.
	Role Role `json:"role" db:"role"`

	// PasswordHash stores the bcrypt verifier for the user's password.
	// Never exposed in API responses; the plaintext is never persisted.
	PasswordHash string `json:"-" db:"password_hash"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
