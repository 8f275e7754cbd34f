package clinical

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is a medication order written by staff for a patient,
// keyed by the patient's username.
type Prescription struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	PatientUsername    string    `db:"patient_username" json:"patientUsername"`
	MedicationCategory string    `db:"medication_category" json:"medicationCategory"`
	Medication         string    `db:"medication" json:"medication"`
	Dosage             string    `db:"dosage" json:"dosage"`
	Frequency          string    `db:"frequency" json:"frequency"`
	Directions         string    `db:"directions" json:"directions"`
	Comments           string    `db:"comments" json:"comments"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// MedTest is a lab or imaging result. Patients only see a test once a staff
// member has released it.
type MedTest struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientUsername string    `db:"patient_username" json:"patientUsername"`
	Name            string    `db:"name" json:"name"`
	DoctorName      string    `db:"doctor_name" json:"doctor"`
	Released        bool      `db:"released" json:"released"`
	DateIssued      string    `db:"date_issued" json:"dateIssued"`
	Result          string    `db:"result" json:"result"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
