package staff

import (
	"time"

	"github.com/google/uuid"
)

// Hospital maps to the hospital table. Name is the lookup key used by
// registration.
type Hospital struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Doctor maps to the doctor table. Username is denormalized from the linked
// account on read; it is what registration forms submit.
type Doctor struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AccountID  uuid.UUID `db:"account_id" json:"account_id"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	Username   string    `db:"username" json:"username"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Nurse maps to the nurse table.
type Nurse struct {
	ID         uuid.UUID `db:"id" json:"id"`
	AccountID  uuid.UUID `db:"account_id" json:"account_id"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	Username   string    `db:"username" json:"username"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
