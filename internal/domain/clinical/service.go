package clinical

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("not found")

type Service struct {
	prescriptions PrescriptionRepository
	medTests      MedTestRepository
}

func NewService(prescriptions PrescriptionRepository, medTests MedTestRepository) *Service {
	return &Service{prescriptions: prescriptions, medTests: medTests}
}

// ── Prescriptions ──

func (s *Service) CreatePrescription(ctx context.Context, p *Prescription) error {
	if p.PatientUsername == "" {
		return fmt.Errorf("patientUsername is required")
	}
	if p.Medication == "" {
		return fmt.Errorf("medication is required")
	}
	if p.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	return s.prescriptions.Create(ctx, p)
}

func (s *Service) UpdatePrescription(ctx context.Context, p *Prescription) error {
	existing, err := s.prescriptions.GetByID(ctx, p.ID)
	if err != nil {
		return ErrNotFound
	}
	p.PatientUsername = existing.PatientUsername
	return s.prescriptions.Update(ctx, p)
}

func (s *Service) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	if _, err := s.prescriptions.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.prescriptions.Delete(ctx, id)
}

// PrescriptionsForPatient lists every prescription written for a username.
func (s *Service) PrescriptionsForPatient(ctx context.Context, username string) ([]*Prescription, error) {
	return s.prescriptions.ListByUsername(ctx, username)
}

// ── Med tests ──

func (s *Service) CreateMedTest(ctx context.Context, t *MedTest) error {
	if t.PatientUsername == "" {
		return fmt.Errorf("patientUsername is required")
	}
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.medTests.Create(ctx, t)
}

func (s *Service) UpdateMedTest(ctx context.Context, t *MedTest) error {
	existing, err := s.medTests.GetByID(ctx, t.ID)
	if err != nil {
		return ErrNotFound
	}
	t.PatientUsername = existing.PatientUsername
	return s.medTests.Update(ctx, t)
}

// ReleaseMedTest marks a result visible to the patient.
func (s *Service) ReleaseMedTest(ctx context.Context, id uuid.UUID) (*MedTest, error) {
	t, err := s.medTests.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	t.Released = true
	if err := s.medTests.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// MedTestsForPatient lists tests for a username. When releasedOnly is set,
// unreleased results are filtered out; that is the view patients get.
func (s *Service) MedTestsForPatient(ctx context.Context, username string, releasedOnly bool) ([]*MedTest, error) {
	tests, err := s.medTests.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !releasedOnly {
		return tests, nil
	}

	released := make([]*MedTest, 0, len(tests))
	for _, t := range tests {
		if t.Released {
			released = append(released, t)
		}
	}
	return released, nil
}
