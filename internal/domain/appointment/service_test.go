package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// ── Mock repository ──

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, errors.New("appointment not found")
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appointments[a.ID]; !ok {
		return errors.New("appointment not found")
	}
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.appointments[id]; !ok {
		return errors.New("appointment not found")
	}
	delete(m.appointments, id)
	return nil
}

func (m *mockRepo) ListByUsername(_ context.Context, username string) ([]*Appointment, error) {
	var out []*Appointment
	for _, a := range m.appointments {
		if a.PatientUsername == username {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

// ── Create ──

func TestCreate_JoinsDateAndTime(t *testing.T) {
	svc, _ := newTestService()

	form := &Form{Doctor: "Dr. House", Date: "2026-10-01", Time: "14:30", Description: "checkup"}
	a, err := svc.Create(context.Background(), "alice", form)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.DateTime != "2026-10-01T14:30" {
		t.Errorf("expected 2026-10-01T14:30, got %q", a.DateTime)
	}
	if a.PatientUsername != "alice" {
		t.Errorf("expected owner alice, got %q", a.PatientUsername)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	cases := []Form{
		{Date: "2026-10-01", Time: "14:30"},
		{Doctor: "Dr. House", Time: "14:30"},
		{Doctor: "Dr. House", Date: "2026-10-01"},
	}
	for _, form := range cases {
		if _, err := svc.Create(context.Background(), "alice", &form); err == nil {
			t.Errorf("expected validation error for %+v", form)
		}
	}
}

// ── Delete ──

func TestDelete_RestoresCount(t *testing.T) {
	svc, repo := newTestService()

	form := &Form{Doctor: "Dr. House", Date: "2026-10-01", Time: "09:00"}
	a, err := svc.Create(context.Background(), "alice", form)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(repo.appointments) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(repo.appointments))
	}

	if err := svc.Delete(context.Background(), a.ID, "alice"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(repo.appointments) != 0 {
		t.Errorf("expected 0 appointments after delete, got %d", len(repo.appointments))
	}
}

func TestDelete_NonOwnerGetsNotFound(t *testing.T) {
	svc, repo := newTestService()

	form := &Form{Doctor: "Dr. House", Date: "2026-10-01", Time: "09:00"}
	a, err := svc.Create(context.Background(), "alice", form)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Delete(context.Background(), a.ID, "mallory")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(repo.appointments) != 1 {
		t.Error("expected the appointment to survive a non-owner delete")
	}
}

func TestDelete_MissingAppointment(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Delete(context.Background(), uuid.New(), "alice")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ── Edit ──

func TestEdit_UpdatesSingleRecord(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(context.Background(), "alice",
		&Form{Doctor: "Dr. House", Date: "2026-10-01", Time: "09:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(context.Background(), "alice",
		&Form{Doctor: "Dr. House", Date: "2026-10-02", Time: "09:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Edit(context.Background(), first.ID, "alice",
		&Form{Doctor: "Dr. Wilson", Date: "2026-10-03", Time: "11:15", Description: "follow-up"})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if updated.DoctorName != "Dr. Wilson" || updated.DateTime != "2026-10-03T11:15" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	untouched, err := svc.getOwned(context.Background(), second.ID, "alice")
	if err != nil {
		t.Fatalf("getOwned failed: %v", err)
	}
	if untouched.DoctorName != "Dr. House" || untouched.DateTime != "2026-10-02T09:00" {
		t.Error("expected the other appointment to be untouched")
	}
}

func TestEdit_NonOwnerGetsNotFound(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Create(context.Background(), "alice",
		&Form{Doctor: "Dr. House", Date: "2026-10-01", Time: "09:00"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Edit(context.Background(), a.ID, "mallory",
		&Form{Doctor: "Dr. Evil", Date: "2026-10-01", Time: "09:00"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ── List ──

func TestListForUsername_ScopedToOwner(t *testing.T) {
	svc, _ := newTestService()

	for _, owner := range []string{"alice", "alice", "bob"} {
		if _, err := svc.Create(context.Background(), owner,
			&Form{Doctor: "Dr. House", Date: "2026-10-01", Time: "09:00"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	appointments, err := svc.ListForUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListForUsername failed: %v", err)
	}
	if len(appointments) != 2 {
		t.Errorf("expected 2 appointments for alice, got %d", len(appointments))
	}
}
