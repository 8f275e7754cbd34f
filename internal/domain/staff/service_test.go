package staff

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/healthnet/healthnet/internal/platform/auth"
)

// ── Mock repositories ──

type mockHospitalRepo struct {
	hospitals map[uuid.UUID]*Hospital
}

func newMockHospitalRepo() *mockHospitalRepo {
	return &mockHospitalRepo{hospitals: make(map[uuid.UUID]*Hospital)}
}

func (m *mockHospitalRepo) Create(_ context.Context, h *Hospital) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	m.hospitals[h.ID] = h
	return nil
}

func (m *mockHospitalRepo) GetByID(_ context.Context, id uuid.UUID) (*Hospital, error) {
	h, ok := m.hospitals[id]
	if !ok {
		return nil, errors.New("hospital not found")
	}
	return h, nil
}

func (m *mockHospitalRepo) GetByName(_ context.Context, name string) (*Hospital, error) {
	for _, h := range m.hospitals {
		if h.Name == name {
			return h, nil
		}
	}
	return nil, errors.New("hospital not found")
}

func (m *mockHospitalRepo) List(_ context.Context, limit, offset int) ([]*Hospital, int, error) {
	out := make([]*Hospital, 0, len(m.hospitals))
	for _, h := range m.hospitals {
		out = append(out, h)
	}
	return out, len(out), nil
}

type mockDoctorRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, errors.New("doctor not found")
	}
	return d, nil
}

func (m *mockDoctorRepo) GetByAccountID(_ context.Context, accountID uuid.UUID) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.AccountID == accountID {
			return d, nil
		}
	}
	return nil, errors.New("doctor not found")
}

func (m *mockDoctorRepo) GetByUsername(_ context.Context, username string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.Username == username {
			return d, nil
		}
	}
	return nil, errors.New("doctor not found")
}

func (m *mockDoctorRepo) List(_ context.Context, limit, offset int) ([]*Doctor, int, error) {
	out := make([]*Doctor, 0, len(m.doctors))
	for _, d := range m.doctors {
		out = append(out, d)
	}
	return out, len(out), nil
}

type mockNurseRepo struct {
	nurses map[uuid.UUID]*Nurse
}

func newMockNurseRepo() *mockNurseRepo {
	return &mockNurseRepo{nurses: make(map[uuid.UUID]*Nurse)}
}

func (m *mockNurseRepo) Create(_ context.Context, n *Nurse) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	m.nurses[n.ID] = n
	return nil
}

func (m *mockNurseRepo) GetByID(_ context.Context, id uuid.UUID) (*Nurse, error) {
	n, ok := m.nurses[id]
	if !ok {
		return nil, errors.New("nurse not found")
	}
	return n, nil
}

func (m *mockNurseRepo) GetByAccountID(_ context.Context, accountID uuid.UUID) (*Nurse, error) {
	for _, n := range m.nurses {
		if n.AccountID == accountID {
			return n, nil
		}
	}
	return nil, errors.New("nurse not found")
}

func (m *mockNurseRepo) List(_ context.Context, limit, offset int) ([]*Nurse, int, error) {
	out := make([]*Nurse, 0, len(m.nurses))
	for _, n := range m.nurses {
		out = append(out, n)
	}
	return out, len(out), nil
}

func newTestService() (*Service, *mockHospitalRepo, *mockDoctorRepo, *mockNurseRepo) {
	hospitals := newMockHospitalRepo()
	doctors := newMockDoctorRepo()
	nurses := newMockNurseRepo()
	return NewService(hospitals, doctors, nurses), hospitals, doctors, nurses
}

// ── Hospital tests ──

func TestCreateHospital(t *testing.T) {
	svc, _, _, _ := newTestService()

	h := &Hospital{Name: "General"}
	if err := svc.CreateHospital(context.Background(), h); err != nil {
		t.Fatalf("CreateHospital failed: %v", err)
	}
	if h.ID == uuid.Nil {
		t.Error("expected hospital ID to be assigned")
	}
}

func TestCreateHospital_RequiresName(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.CreateHospital(context.Background(), &Hospital{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCreateHospital_RejectsDuplicateName(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.CreateHospital(context.Background(), &Hospital{Name: "General"}); err != nil {
		t.Fatalf("CreateHospital failed: %v", err)
	}
	if err := svc.CreateHospital(context.Background(), &Hospital{Name: "General"}); err == nil {
		t.Error("expected error for duplicate hospital name")
	}
}

func TestGetHospitalByName(t *testing.T) {
	svc, _, _, _ := newTestService()

	h := &Hospital{Name: "Strong Memorial"}
	if err := svc.CreateHospital(context.Background(), h); err != nil {
		t.Fatalf("CreateHospital failed: %v", err)
	}

	got, err := svc.GetHospitalByName(context.Background(), "Strong Memorial")
	if err != nil {
		t.Fatalf("GetHospitalByName failed: %v", err)
	}
	if got.ID != h.ID {
		t.Errorf("expected hospital %s, got %s", h.ID, got.ID)
	}
}

func TestGetHospitalByName_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetHospitalByName(context.Background(), "nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ── Doctor tests ──

func TestCreateDoctor_RequiresAccountAndHospital(t *testing.T) {
	svc, _, _, _ := newTestService()

	if err := svc.CreateDoctor(context.Background(), &Doctor{HospitalID: uuid.New()}); err == nil {
		t.Error("expected error for missing account_id")
	}
	if err := svc.CreateDoctor(context.Background(), &Doctor{AccountID: uuid.New()}); err == nil {
		t.Error("expected error for missing hospital_id")
	}
}

func TestGetDoctorByUsername(t *testing.T) {
	svc, _, doctors, _ := newTestService()

	d := &Doctor{AccountID: uuid.New(), HospitalID: uuid.New(), Username: "drhouse"}
	if err := doctors.Create(context.Background(), d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.GetDoctorByUsername(context.Background(), "drhouse")
	if err != nil {
		t.Fatalf("GetDoctorByUsername failed: %v", err)
	}
	if got.ID != d.ID {
		t.Errorf("expected doctor %s, got %s", d.ID, got.ID)
	}
}

func TestGetDoctorByUsername_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetDoctorByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// ── Role resolution tests ──

func TestResolveStaff_Doctor(t *testing.T) {
	svc, _, doctors, _ := newTestService()

	accountID := uuid.New()
	d := &Doctor{AccountID: accountID, HospitalID: uuid.New(), Username: "drwho"}
	if err := doctors.Create(context.Background(), d); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	role, doc, nurse := svc.ResolveStaff(context.Background(), accountID)
	if role != auth.RoleDoctor {
		t.Errorf("expected role %q, got %q", auth.RoleDoctor, role)
	}
	if doc == nil || doc.ID != d.ID {
		t.Error("expected the matching doctor record")
	}
	if nurse != nil {
		t.Error("expected no nurse record")
	}
}

func TestResolveStaff_NurseFallback(t *testing.T) {
	svc, _, _, nurses := newTestService()

	accountID := uuid.New()
	n := &Nurse{AccountID: accountID, HospitalID: uuid.New(), Username: "nursejoy"}
	if err := nurses.Create(context.Background(), n); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	role, doc, nurse := svc.ResolveStaff(context.Background(), accountID)
	if role != auth.RoleNurse {
		t.Errorf("expected role %q, got %q", auth.RoleNurse, role)
	}
	if doc != nil {
		t.Error("expected no doctor record")
	}
	if nurse == nil || nurse.ID != n.ID {
		t.Error("expected the matching nurse record")
	}
}

func TestResolveStaff_DoctorWinsOverNurse(t *testing.T) {
	svc, _, doctors, nurses := newTestService()

	accountID := uuid.New()
	if err := doctors.Create(context.Background(), &Doctor{AccountID: accountID, HospitalID: uuid.New()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := nurses.Create(context.Background(), &Nurse{AccountID: accountID, HospitalID: uuid.New()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if role := svc.StaffRole(context.Background(), accountID); role != auth.RoleDoctor {
		t.Errorf("expected doctor to take precedence, got %q", role)
	}
}

func TestStaffRole_NoRecord(t *testing.T) {
	svc, _, _, _ := newTestService()

	if role := svc.StaffRole(context.Background(), uuid.New()); role != "" {
		t.Errorf("expected empty role, got %q", role)
	}
}
