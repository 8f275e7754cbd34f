package identity

import (
	"time"

	"github.com/google/uuid"
)

// Account maps to the account table. It is the base authenticatable record;
// patient and staff data hang off it by reference.
type Account struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Email        string    `db:"email" json:"email"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsStaff      bool      `db:"is_staff" json:"is_staff"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LoginState codes rendered to the login page. The numeric values are a
// stable UI contract and must not change.
type LoginState int

const (
	LoginSuccess         LoginState = 0
	LoginInactive        LoginState = 1
	LoginInvalid         LoginState = 2
	LoginUnauthenticated LoginState = 3
)
