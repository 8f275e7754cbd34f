package patient

import (
	"time"

	"github.com/google/uuid"
)

// InsuranceInfo carries the insurance identifiers collected at registration.
type InsuranceInfo struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PolicyNumber string    `db:"policy_number" json:"policyNumber"`
	Provider     string    `db:"provider" json:"provider"`
	GroupNumber  string    `db:"group_number" json:"groupNumber"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// ProfileInfo holds the demographic and contact details for a patient.
type ProfileInfo struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	FirstName             string    `db:"first_name" json:"firstName"`
	MiddleName            string    `db:"middle_name" json:"middleName"`
	LastName              string    `db:"last_name" json:"lastName"`
	Address               string    `db:"address" json:"address"`
	City                  string    `db:"city" json:"city"`
	State                 string    `db:"state" json:"state"`
	DateOfBirth           string    `db:"date_of_birth" json:"dateOfBirth"`
	Zipcode               string    `db:"zipcode" json:"zipcode"`
	PhoneNumber           string    `db:"phone_number" json:"phoneNumber"`
	Email                 string    `db:"email" json:"email"`
	EmergencyContactName  string    `db:"emergency_contact_name" json:"eName"`
	EmergencyContactPhone string    `db:"emergency_contact_phone" json:"ePhoneNumber"`
	CreatedAt             time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time `db:"updated_at" json:"updatedAt"`
}

// MedicalInfo is the medical-history checklist. Each flag marks a condition
// the patient has reported.
type MedicalInfo struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Allergies         bool      `db:"allergies" json:"allergies"`
	Anemia            bool      `db:"anemia" json:"anemia"`
	Arthritis         bool      `db:"arthritis" json:"arthritis"`
	Chickenpox        bool      `db:"chickenpox" json:"chickenpox"`
	Coxsackie         bool      `db:"coxsackie" json:"coxsackie"`
	Diphtheria        bool      `db:"diphtheria" json:"diphtheria"`
	Epilepsy          bool      `db:"epilepsy" json:"epilepsy"`
	FrequentColds     bool      `db:"frequent_colds" json:"frequentColds"`
	GermanMeasles     bool      `db:"german_measles" json:"germanMeasles"`
	HighBloodPressure bool      `db:"high_blood_pressure" json:"highBloodPressure"`
	Influenza         bool      `db:"influenza" json:"influenza"`
	KidneyDisease     bool      `db:"kidney_disease" json:"kidneyDisease"`
	Measles           bool      `db:"measles" json:"measles"`
	Migraines         bool      `db:"migraines" json:"migraines"`
	Mumps             bool      `db:"mumps" json:"mumps"`
	Obesity           bool      `db:"obesity" json:"obesity"`
	Pneumonia         bool      `db:"pneumonia" json:"pneumonia"`
	Polio             bool      `db:"polio" json:"polio"`
	RheumaticFever    bool      `db:"rheumatic_fever" json:"rheumaticFever"`
	Scarlatina        bool      `db:"scarlatina" json:"scarlatina"`
	ScarletFever      bool      `db:"scarlet_fever" json:"scarletFever"`
	Strokes           bool      `db:"strokes" json:"strokes"`
	Syphilis          bool      `db:"syphilis" json:"syphilis"`
	Tonsillitis       bool      `db:"tonsillitis" json:"tonsillitis"`
	Tuberculosis      bool      `db:"tuberculosis" json:"tuberculosis"`
	WhoopingCough     bool      `db:"whooping_cough" json:"whoopingCough"`
	OtherText         string    `db:"other_text" json:"otherText"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// Patient ties an account to its info records and optional care assignments.
type Patient struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	AccountID  uuid.UUID  `db:"account_id" json:"accountId"`
	Username   string     `db:"username" json:"username"`
	InsurID    uuid.UUID  `db:"insurance_id" json:"insuranceId"`
	ProfileID  uuid.UUID  `db:"profile_id" json:"profileId"`
	MedicalID  uuid.UUID  `db:"medical_id" json:"medicalId"`
	HospitalID *uuid.UUID `db:"hospital_id" json:"hospitalId,omitempty"`
	DoctorID   *uuid.UUID `db:"doctor_id" json:"doctorId,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// ChecklistItem pairs a display label with whether the condition is set.
type ChecklistItem struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Checklist renders the medical flags in their fixed display order. The
// labels match the historical export format, misspellings included, because
// downstream consumers key on them.
func (m *MedicalInfo) Checklist() []ChecklistItem {
	return []ChecklistItem{
		{"Allergies", m.Allergies},
		{"Anemia", m.Anemia},
		{"Arthritis", m.Arthritis},
		{"Chickenpox", m.Chickenpox},
		{"Coxsackie", m.Coxsackie},
		{"Diphtheria", m.Diphtheria},
		{"Epilepsy", m.Epilepsy},
		{"Frequent Colds", m.FrequentColds},
		{"German Measeles", m.GermanMeasles},
		{"High Blood Pressure", m.HighBloodPressure},
		{"Influenza", m.Influenza},
		{"Kidney Disease", m.KidneyDisease},
		{"Measles", m.Measles},
		{"Migraines", m.Migraines},
		{"Mumps", m.Mumps},
		{"Obesity", m.Obesity},
		{"Pneumonia", m.Pneumonia},
		{"Polio", m.Polio},
		{"Rheumatic Fever", m.RheumaticFever},
		{"Scarlatina", m.Scarlatina},
		{"Scarlet Fever", m.ScarletFever},
		{"Strokes", m.Strokes},
		{"Syphilis", m.Syphilis},
		{"Tonsillitis", m.Tonsillitis},
		{"Tuberculosis", m.Tuberculosis},
		{"Whooping Cough", m.WhoopingCough},
		{"Other", m.OtherText != ""},
	}
}
