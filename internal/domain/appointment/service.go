package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound covers both a missing appointment and one owned by another
// user. Callers cannot tell the two apart, so existence is never leaked.
var ErrNotFound = fmt.Errorf("appointment not found")

// Form is the appointment submission. Date and time arrive separately and
// are stored joined with a "T".
type Form struct {
	Doctor      string `json:"doctor"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

func (f *Form) Validate() error {
	if f.Doctor == "" {
		return fmt.Errorf("doctor is required")
	}
	if f.Date == "" {
		return fmt.Errorf("date is required")
	}
	if f.Time == "" {
		return fmt.Errorf("time is required")
	}
	return nil
}

// DateTime joins the submitted date and time into the stored form.
func (f *Form) DateTime() string {
	return f.Date + "T" + f.Time
}

type Service struct {
	appointments Repository
}

func NewService(appointments Repository) *Service {
	return &Service{appointments: appointments}
}

// Create books an appointment for the requesting user.
func (s *Service) Create(ctx context.Context, username string, form *Form) (*Appointment, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	a := &Appointment{
		DoctorName:      form.Doctor,
		PatientUsername: username,
		DateTime:        form.DateTime(),
		Description:     form.Description,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return a, nil
}

// getOwned loads an appointment only if the requester owns it.
func (s *Service) getOwned(ctx context.Context, id uuid.UUID, username string) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if a.PatientUsername != username {
		return nil, ErrNotFound
	}
	return a, nil
}

// Delete removes one of the requester's own appointments.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, username string) error {
	a, err := s.getOwned(ctx, id, username)
	if err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, a.ID); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

// Edit rewrites a single appointment the requester owns.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, username string, form *Form) (*Appointment, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	a, err := s.getOwned(ctx, id, username)
	if err != nil {
		return nil, err
	}

	a.DoctorName = form.Doctor
	a.DateTime = form.DateTime()
	a.Description = form.Description
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

// ListForUsername returns every appointment booked under a username.
func (s *Service) ListForUsername(ctx context.Context, username string) ([]*Appointment, error) {
	return s.appointments.ListByUsername(ctx, username)
}
