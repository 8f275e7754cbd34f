package patient

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthnet/healthnet/internal/domain/identity"
	"github.com/healthnet/healthnet/internal/domain/staff"
	"github.com/healthnet/healthnet/internal/platform/auth"
)

// ExportFilename is the attachment name browsers save the CSV export under.
const ExportFilename = "MedicalInformation.csv"

// AccountService is the slice of the identity service registration needs.
type AccountService interface {
	CreateAccount(ctx context.Context, username, password string, isStaff bool) (*identity.Account, error)
	SyncNames(ctx context.Context, accountID uuid.UUID, firstName, lastName, email string) error
}

// StaffDirectory resolves care assignments and staff roles.
type StaffDirectory interface {
	GetHospitalByName(ctx context.Context, name string) (*staff.Hospital, error)
	GetDoctorByUsername(ctx context.Context, username string) (*staff.Doctor, error)
	ResolveStaff(ctx context.Context, accountID uuid.UUID) (string, *staff.Doctor, *staff.Nurse)
}

// Record is the fully loaded patient view: the patient row plus the three
// info records it references.
type Record struct {
	Patient   *Patient       `json:"patient"`
	Insurance *InsuranceInfo `json:"insurance"`
	Profile   *ProfileInfo   `json:"profile"`
	Medical   *MedicalInfo   `json:"medical"`
}

type Service struct {
	accounts  AccountService
	directory StaffDirectory
	patients  PatientRepository
	insurance InsuranceRepository
	profiles  ProfileRepository
	medical   MedicalRepository
	logger    zerolog.Logger
}

func NewService(
	accounts AccountService,
	directory StaffDirectory,
	patients PatientRepository,
	insurance InsuranceRepository,
	profiles ProfileRepository,
	medical MedicalRepository,
	logger zerolog.Logger,
) *Service {
	return &Service{
		accounts:  accounts,
		directory: directory,
		patients:  patients,
		insurance: insurance,
		profiles:  profiles,
		medical:   medical,
		logger:    logger,
	}
}

// Register validates the whole form up front, then builds the patient record
// step by step: account first, then the three info records, then the patient
// row, then the care assignment, and the account name sync last. Saves made
// before a later step fails are kept; a failed hospital or doctor lookup
// leaves an unassigned patient rather than undoing the registration.
func (s *Service) Register(ctx context.Context, form *RegistrationForm) (*Patient, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	account, err := s.accounts.CreateAccount(ctx, form.Username, form.Password, false)
	if err != nil {
		return nil, err
	}

	insurance := &InsuranceInfo{
		PolicyNumber: form.PolicyNumber,
		Provider:     form.Provider,
		GroupNumber:  form.GroupNumber,
	}
	if err := s.insurance.Create(ctx, insurance); err != nil {
		return nil, fmt.Errorf("save insurance info: %w", err)
	}

	profile := &ProfileInfo{
		FirstName:             form.FirstName,
		MiddleName:            form.MiddleName,
		LastName:              form.LastName,
		Address:               form.Address,
		City:                  form.City,
		State:                 form.State,
		DateOfBirth:           form.DateOfBirth,
		Zipcode:               form.Zipcode,
		PhoneNumber:           form.PhoneNumber,
		Email:                 form.Email,
		EmergencyContactName:  form.EmergencyContactName,
		EmergencyContactPhone: form.EmergencyContactPhone,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile info: %w", err)
	}

	medical := form.Medical.toModel()
	if err := s.medical.Create(ctx, medical); err != nil {
		return nil, fmt.Errorf("save medical info: %w", err)
	}

	p := &Patient{
		AccountID: account.ID,
		Username:  account.Username,
		InsurID:   insurance.ID,
		ProfileID: profile.ID,
		MedicalID: medical.ID,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save patient: %w", err)
	}

	if form.HospitalName != "" || form.DoctorUsername != "" {
		if form.HospitalName != "" {
			hospital, err := s.directory.GetHospitalByName(ctx, form.HospitalName)
			if err != nil {
				return nil, err
			}
			p.HospitalID = &hospital.ID
		}
		if form.DoctorUsername != "" {
			doctor, err := s.directory.GetDoctorByUsername(ctx, form.DoctorUsername)
			if err != nil {
				return nil, err
			}
			p.DoctorID = &doctor.ID
		}
		if err := s.patients.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("attach care assignment: %w", err)
		}
	}

	if err := s.accounts.SyncNames(ctx, account.ID, form.FirstName, form.LastName, form.Email); err != nil {
		return nil, fmt.Errorf("sync account names: %w", err)
	}

	s.logger.Info().Str("username", form.Username).Msg("patient registered")
	return p, nil
}

// GetRecord loads the patient and all three info records for a username.
func (s *Service) GetRecord(ctx context.Context, username string) (*Record, error) {
	p, err := s.patients.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("patient %q: %w", username, err)
	}

	insurance, err := s.insurance.GetByID(ctx, p.InsurID)
	if err != nil {
		return nil, fmt.Errorf("insurance info for %q: %w", username, err)
	}
	profile, err := s.profiles.GetByID(ctx, p.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("profile info for %q: %w", username, err)
	}
	medical, err := s.medical.GetByID(ctx, p.MedicalID)
	if err != nil {
		return nil, fmt.Errorf("medical info for %q: %w", username, err)
	}

	return &Record{Patient: p, Insurance: insurance, Profile: profile, Medical: medical}, nil
}

// EditProfile rewrites the insurance and demographic records of an existing
// patient and re-syncs the account name fields afterwards.
func (s *Service) EditProfile(ctx context.Context, username string, form *ProfileEditForm) (*Record, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	record, err := s.GetRecord(ctx, username)
	if err != nil {
		return nil, err
	}

	record.Insurance.PolicyNumber = form.PolicyNumber
	record.Insurance.Provider = form.Provider
	record.Insurance.GroupNumber = form.GroupNumber
	if err := s.insurance.Update(ctx, record.Insurance); err != nil {
		return nil, fmt.Errorf("update insurance info: %w", err)
	}

	record.Profile.FirstName = form.FirstName
	record.Profile.MiddleName = form.MiddleName
	record.Profile.LastName = form.LastName
	record.Profile.Address = form.Address
	record.Profile.City = form.City
	record.Profile.State = form.State
	record.Profile.DateOfBirth = form.DateOfBirth
	record.Profile.Zipcode = form.Zipcode
	record.Profile.PhoneNumber = form.PhoneNumber
	record.Profile.Email = form.Email
	record.Profile.EmergencyContactName = form.EmergencyContactName
	record.Profile.EmergencyContactPhone = form.EmergencyContactPhone
	if err := s.profiles.Update(ctx, record.Profile); err != nil {
		return nil, fmt.Errorf("update profile info: %w", err)
	}

	if err := s.accounts.SyncNames(ctx, record.Patient.AccountID, form.FirstName, form.LastName, form.Email); err != nil {
		return nil, fmt.Errorf("sync account names: %w", err)
	}
	return record, nil
}

// PatientsForStaff lists the patients a staff member may see. Doctors see the
// patients assigned to them, nurses see every patient at their hospital.
func (s *Service) PatientsForStaff(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	role, doctor, nurse := s.directory.ResolveStaff(ctx, accountID)
	switch role {
	case auth.RoleDoctor:
		return s.patients.ListByDoctor(ctx, doctor.ID, limit, offset)
	case auth.RoleNurse:
		return s.patients.ListByHospital(ctx, nurse.HospitalID, limit, offset)
	default:
		return nil, 0, fmt.Errorf("account %s has no staff record", accountID)
	}
}

// WriteCSV writes the three-row export for a record. The labels, ordering,
// and True/False rendering are frozen for compatibility with existing
// consumers of the file.
func (s *Service) WriteCSV(w io.Writer, record *Record) error {
	cw := csv.NewWriter(w)

	userRow := []string{
		"User Info:",
		"Usename", record.Patient.Username,
		"Policy Number", record.Insurance.PolicyNumber,
		"Provider", record.Insurance.Provider,
		"Group Number", record.Insurance.GroupNumber,
	}
	if err := cw.Write(userRow); err != nil {
		return fmt.Errorf("write user row: %w", err)
	}

	profileRow := []string{
		"Profile Info:",
		"Firstname", record.Profile.FirstName,
		"Middlename", record.Profile.MiddleName,
		"LastName", record.Profile.LastName,
		"Address", record.Profile.Address,
		"City", record.Profile.City,
		"State", record.Profile.State,
		"Date of Birth", record.Profile.DateOfBirth,
		"Zipcode", record.Profile.Zipcode,
		"Phone Number", record.Profile.PhoneNumber,
		"Email", record.Profile.Email,
		"Emergency contact", record.Profile.EmergencyContactName,
		"Emergency Phone", record.Profile.EmergencyContactPhone,
	}
	if err := cw.Write(profileRow); err != nil {
		return fmt.Errorf("write profile row: %w", err)
	}

	m := record.Medical
	medicalRow := []string{
		"Medical Info:",
		"Allergies", exportBool(m.Allergies),
		"Anemia", exportBool(m.Anemia),
		"Arthritis", exportBool(m.Arthritis),
		"Chickenpox", exportBool(m.Chickenpox),
		"Coxsackie", exportBool(m.Coxsackie),
		"Diphtheria", exportBool(m.Diphtheria),
		"Epilepsy", exportBool(m.Epilepsy),
		"Frequent Colds", exportBool(m.FrequentColds),
		"German Measeles", exportBool(m.GermanMeasles),
		"High Blood Pressure", exportBool(m.HighBloodPressure),
		"Influenza", exportBool(m.Influenza),
		"Kidney Disease", exportBool(m.KidneyDisease),
		"Measles", exportBool(m.Measles),
		"Migraines", exportBool(m.Migraines),
		"Mumps", exportBool(m.Mumps),
		"Obesity", exportBool(m.Obesity),
		"Pneumonia", exportBool(m.Pneumonia),
		"Polio", exportBool(m.Polio),
		"Rheumatic Fever", exportBool(m.RheumaticFever),
		"Scarlatina", exportBool(m.Scarlatina),
		"Scarlet Fever", exportBool(m.ScarletFever),
		"Strokes", exportBool(m.Strokes),
		"Syphilis", exportBool(m.Syphilis),
		"Tonsillitis", exportBool(m.Tonsillitis),
		"Tuberculosis", exportBool(m.Tuberculosis),
		"Whooping Cough", exportBool(m.WhoopingCough),
		"Other", m.OtherText,
	}
	if err := cw.Write(medicalRow); err != nil {
		return fmt.Errorf("write medical row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// exportBool renders flags the way historical exports did.
func exportBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
