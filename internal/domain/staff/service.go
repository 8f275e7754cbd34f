package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthnet/healthnet/internal/platform/auth"
)

// ErrNotFound is returned when a hospital, doctor, or nurse lookup misses.
var ErrNotFound = fmt.Errorf("not found")

type Service struct {
	hospitals HospitalRepository
	doctors   DoctorRepository
	nurses    NurseRepository
}

func NewService(hospitals HospitalRepository, doctors DoctorRepository, nurses NurseRepository) *Service {
	return &Service{hospitals: hospitals, doctors: doctors, nurses: nurses}
}

// -- Hospital --

func (s *Service) CreateHospital(ctx context.Context, h *Hospital) error {
	if h.Name == "" {
		return fmt.Errorf("name is required")
	}
	if existing, err := s.hospitals.GetByName(ctx, h.Name); err == nil && existing != nil {
		return fmt.Errorf("hospital already exists: %s", h.Name)
	}
	return s.hospitals.Create(ctx, h)
}

// GetHospitalByName resolves a hospital by its registration-form name.
func (s *Service) GetHospitalByName(ctx context.Context, name string) (*Hospital, error) {
	h, err := s.hospitals.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("hospital %q: %w", name, ErrNotFound)
	}
	return h, nil
}

func (s *Service) ListHospitals(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	return s.hospitals.List(ctx, limit, offset)
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.AccountID == uuid.Nil {
		return fmt.Errorf("account_id is required")
	}
	if d.HospitalID == uuid.Nil {
		return fmt.Errorf("hospital_id is required")
	}
	return s.doctors.Create(ctx, d)
}

// GetDoctorByUsername resolves a doctor by account username, the key the
// registration form submits.
func (s *Service) GetDoctorByUsername(ctx context.Context, username string) (*Doctor, error) {
	d, err := s.doctors.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("doctor %q: %w", username, ErrNotFound)
	}
	return d, nil
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

// -- Nurse --

func (s *Service) CreateNurse(ctx context.Context, n *Nurse) error {
	if n.AccountID == uuid.Nil {
		return fmt.Errorf("account_id is required")
	}
	if n.HospitalID == uuid.Nil {
		return fmt.Errorf("hospital_id is required")
	}
	return s.nurses.Create(ctx, n)
}

func (s *Service) ListNurses(ctx context.Context, limit, offset int) ([]*Nurse, int, error) {
	return s.nurses.List(ctx, limit, offset)
}

// -- Role resolution --

// ResolveStaff resolves the staff record for an account, doctor first with a
// nurse fallback. Returns the role name and whichever record matched.
func (s *Service) ResolveStaff(ctx context.Context, accountID uuid.UUID) (string, *Doctor, *Nurse) {
	if d, err := s.doctors.GetByAccountID(ctx, accountID); err == nil && d != nil {
		return auth.RoleDoctor, d, nil
	}
	if n, err := s.nurses.GetByAccountID(ctx, accountID); err == nil && n != nil {
		return auth.RoleNurse, nil, n
	}
	return "", nil, nil
}

// StaffRole reports just the role name for an account, or "" when the account
// has no staff record.
func (s *Service) StaffRole(ctx context.Context, accountID uuid.UUID) string {
	role, _, _ := s.ResolveStaff(ctx, accountID)
	return role
}
