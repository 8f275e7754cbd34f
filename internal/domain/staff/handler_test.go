package staff

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockHospitalRepo, *mockDoctorRepo) {
	hospitals := newMockHospitalRepo()
	doctors := newMockDoctorRepo()
	nurses := newMockNurseRepo()
	svc := NewService(hospitals, doctors, nurses)
	return NewHandler(svc), hospitals, doctors
}

func TestCreateHospitalHandler(t *testing.T) {
	h, _, _ := newTestHandler()
	e := echo.New()

	body := `{"name":"General"}`
	req := httptest.NewRequest(http.MethodPost, "/hospitals", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateHospital(c); err != nil {
		t.Fatalf("CreateHospital failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var created Hospital
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if created.Name != "General" {
		t.Errorf("expected name General, got %q", created.Name)
	}
}

func TestCreateHospitalHandler_MissingName(t *testing.T) {
	h, _, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/hospitals", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateHospital(c)
	if err == nil {
		t.Fatal("expected error for missing name")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestListHospitalsHandler(t *testing.T) {
	h, hospitals, _ := newTestHandler()
	e := echo.New()

	for _, name := range []string{"General", "Strong Memorial"} {
		if err := hospitals.Create(context.Background(), &Hospital{Name: name}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/hospitals", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListHospitals(c); err != nil {
		t.Fatalf("ListHospitals failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected total 2, got %d", resp.Total)
	}
}

func TestCreateDoctorHandler(t *testing.T) {
	h, _, _ := newTestHandler()
	e := echo.New()

	body := `{"accountId":"` + uuid.NewString() + `","hospitalId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("CreateDoctor failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestListDoctorsHandler(t *testing.T) {
	h, _, doctors := newTestHandler()
	e := echo.New()

	if err := doctors.Create(context.Background(), &Doctor{AccountID: uuid.New(), HospitalID: uuid.New(), Username: "drhouse"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/doctors", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("ListDoctors failed: %v", err)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected total 1, got %d", resp.Total)
	}
}
