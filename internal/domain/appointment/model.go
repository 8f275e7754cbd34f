package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a scheduling entry. DoctorName and PatientUsername are
// free-text keys, not foreign references, and DateTime is the submitted
// date and time joined with a "T".
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	DoctorName      string    `db:"doctor_name" json:"doctor"`
	PatientUsername string    `db:"patient_username" json:"userName"`
	DateTime        string    `db:"date_time" json:"date"`
	Description     string    `db:"description" json:"description"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
