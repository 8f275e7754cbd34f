package patient

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phonePattern = regexp.MustCompile(`^[0-9()\-\s+.]{7,20}$`)
)

// RegistrationForm is the single submission that creates an account and the
// full patient record. Nothing is saved until the whole form validates.
type RegistrationForm struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Insurance
	PolicyNumber string `json:"policyNumber"`
	Provider     string `json:"provider"`
	GroupNumber  string `json:"groupNumber"`

	// Profile
	FirstName             string `json:"firstName"`
	MiddleName            string `json:"middleName"`
	LastName              string `json:"lastName"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	DateOfBirth           string `json:"dateOfBirth"`
	Zipcode               string `json:"zipcode"`
	PhoneNumber           string `json:"phoneNumber"`
	Email                 string `json:"email"`
	EmergencyContactName  string `json:"eName"`
	EmergencyContactPhone string `json:"ePhoneNumber"`

	// Medical history
	Medical MedicalForm `json:"medical"`

	// Care assignment, matched by hospital name and doctor username.
	HospitalName   string `json:"hospitalName"`
	DoctorUsername string `json:"doctorUsername"`
}

// MedicalForm mirrors the medical-history checkboxes.
type MedicalForm struct {
	Allergies         bool   `json:"allergies"`
	Anemia            bool   `json:"anemia"`
	Arthritis         bool   `json:"arthritis"`
	Chickenpox        bool   `json:"chickenpox"`
	Coxsackie         bool   `json:"coxsackie"`
	Diphtheria        bool   `json:"diphtheria"`
	Epilepsy          bool   `json:"epilepsy"`
	FrequentColds     bool   `json:"frequentColds"`
	GermanMeasles     bool   `json:"germanMeasles"`
	HighBloodPressure bool   `json:"highBloodPressure"`
	Influenza         bool   `json:"influenza"`
	KidneyDisease     bool   `json:"kidneyDisease"`
	Measles           bool   `json:"measles"`
	Migraines         bool   `json:"migraines"`
	Mumps             bool   `json:"mumps"`
	Obesity           bool   `json:"obesity"`
	Pneumonia         bool   `json:"pneumonia"`
	Polio             bool   `json:"polio"`
	RheumaticFever    bool   `json:"rheumaticFever"`
	Scarlatina        bool   `json:"scarlatina"`
	ScarletFever      bool   `json:"scarletFever"`
	Strokes           bool   `json:"strokes"`
	Syphilis          bool   `json:"syphilis"`
	Tonsillitis       bool   `json:"tonsillitis"`
	Tuberculosis      bool   `json:"tuberculosis"`
	WhoopingCough     bool   `json:"whoopingCough"`
	OtherText         string `json:"otherText"`
}

// ProfileEditForm updates the insurance and demographic records of an
// existing patient. Medical history and care assignment are not editable
// through it.
type ProfileEditForm struct {
	PolicyNumber string `json:"policyNumber"`
	Provider     string `json:"provider"`
	GroupNumber  string `json:"groupNumber"`

	FirstName             string `json:"firstName"`
	MiddleName            string `json:"middleName"`
	LastName              string `json:"lastName"`
	Address               string `json:"address"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	DateOfBirth           string `json:"dateOfBirth"`
	Zipcode               string `json:"zipcode"`
	PhoneNumber           string `json:"phoneNumber"`
	Email                 string `json:"email"`
	EmergencyContactName  string `json:"eName"`
	EmergencyContactPhone string `json:"ePhoneNumber"`
}

func (f *RegistrationForm) Validate() error {
	required := map[string]string{
		"username":     f.Username,
		"password":     f.Password,
		"policyNumber": f.PolicyNumber,
		"provider":     f.Provider,
		"firstName":    f.FirstName,
		"lastName":     f.LastName,
		"address":      f.Address,
		"city":         f.City,
		"state":        f.State,
		"dateOfBirth":  f.DateOfBirth,
		"zipcode":      f.Zipcode,
		"phoneNumber":  f.PhoneNumber,
		"email":        f.Email,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	return validateProfileFormats(f.Email, f.DateOfBirth, f.Zipcode, f.PhoneNumber)
}

func (f *ProfileEditForm) Validate() error {
	required := map[string]string{
		"policyNumber": f.PolicyNumber,
		"provider":     f.Provider,
		"firstName":    f.FirstName,
		"lastName":     f.LastName,
		"address":      f.Address,
		"city":         f.City,
		"state":        f.State,
		"dateOfBirth":  f.DateOfBirth,
		"zipcode":      f.Zipcode,
		"phoneNumber":  f.PhoneNumber,
		"email":        f.Email,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	return validateProfileFormats(f.Email, f.DateOfBirth, f.Zipcode, f.PhoneNumber)
}

func validateProfileFormats(email, dateOfBirth, zipcode, phone string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address: %s", email)
	}
	if _, err := time.Parse("2006-01-02", dateOfBirth); err != nil {
		return fmt.Errorf("invalid date of birth, expected YYYY-MM-DD: %s", dateOfBirth)
	}
	if !zipPattern.MatchString(zipcode) {
		return fmt.Errorf("invalid zipcode: %s", zipcode)
	}
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("invalid phone number: %s", phone)
	}
	return nil
}

func (f *MedicalForm) toModel() *MedicalInfo {
	return &MedicalInfo{
		Allergies:         f.Allergies,
		Anemia:            f.Anemia,
		Arthritis:         f.Arthritis,
		Chickenpox:        f.Chickenpox,
		Coxsackie:         f.Coxsackie,
		Diphtheria:        f.Diphtheria,
		Epilepsy:          f.Epilepsy,
		FrequentColds:     f.FrequentColds,
		GermanMeasles:     f.GermanMeasles,
		HighBloodPressure: f.HighBloodPressure,
		Influenza:         f.Influenza,
		KidneyDisease:     f.KidneyDisease,
		Measles:           f.Measles,
		Migraines:         f.Migraines,
		Mumps:             f.Mumps,
		Obesity:           f.Obesity,
		Pneumonia:         f.Pneumonia,
		Polio:             f.Polio,
		RheumaticFever:    f.RheumaticFever,
		Scarlatina:        f.Scarlatina,
		ScarletFever:      f.ScarletFever,
		Strokes:           f.Strokes,
		Syphilis:          f.Syphilis,
		Tonsillitis:       f.Tonsillitis,
		Tuberculosis:      f.Tuberculosis,
		WhoopingCough:     f.WhoopingCough,
		OtherText:         f.OtherText,
	}
}
