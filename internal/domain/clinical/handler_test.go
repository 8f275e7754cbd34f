package clinical

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnet/healthnet/internal/platform/auth"
)

type mockRecorder struct {
	actions []string
}

func (m *mockRecorder) Record(_ context.Context, _ *uuid.UUID, _ string, action string) {
	m.actions = append(m.actions, action)
}

func newTestHandler() (*Handler, *mockPrescriptionRepo, *mockMedTestRepo, *mockRecorder) {
	prescriptions := newMockPrescriptionRepo()
	medTests := newMockMedTestRepo()
	audit := &mockRecorder{}
	return NewHandler(NewService(prescriptions, medTests), audit), prescriptions, medTests, audit
}

func requestWithRoles(method, target, body, username string, roles []string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), auth.UsernameKey, username)
	ctx = context.WithValue(ctx, auth.AccountIDKey, uuid.New())
	ctx = context.WithValue(ctx, auth.RolesKey, roles)
	return req.WithContext(ctx)
}

func TestListMedTests_PatientSeesOnlyReleased(t *testing.T) {
	h, _, medTests, _ := newTestHandler()
	e := echo.New()

	for _, test := range []*MedTest{
		{PatientUsername: "alice", Name: "blood panel", Released: true},
		{PatientUsername: "alice", Name: "biopsy"},
	} {
		if err := medTests.Create(context.Background(), test); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	req := requestWithRoles(http.MethodGet, "/medtests", "", "alice", []string{auth.RolePatient})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListMedTests(c); err != nil {
		t.Fatalf("ListMedTests failed: %v", err)
	}

	var tests []*MedTest
	if err := json.Unmarshal(rec.Body.Bytes(), &tests); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(tests) != 1 || tests[0].Name != "blood panel" {
		t.Errorf("expected only the released test, got %d", len(tests))
	}
}

func TestListMedTests_StaffSeesUnreleased(t *testing.T) {
	h, _, medTests, _ := newTestHandler()
	e := echo.New()

	for _, test := range []*MedTest{
		{PatientUsername: "alice", Name: "blood panel", Released: true},
		{PatientUsername: "alice", Name: "biopsy"},
	} {
		if err := medTests.Create(context.Background(), test); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	req := requestWithRoles(http.MethodGet, "/medtests?username=alice", "", "drhouse",
		[]string{auth.RoleDoctor, auth.RoleStaff})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListMedTests(c); err != nil {
		t.Fatalf("ListMedTests failed: %v", err)
	}

	var tests []*MedTest
	if err := json.Unmarshal(rec.Body.Bytes(), &tests); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(tests) != 2 {
		t.Errorf("expected both tests for staff, got %d", len(tests))
	}
}

func TestListPrescriptions_PatientPinnedToOwnUsername(t *testing.T) {
	h, prescriptions, _, _ := newTestHandler()
	e := echo.New()

	for _, p := range []*Prescription{
		{PatientUsername: "alice", Medication: "amoxicillin", Dosage: "500mg"},
		{PatientUsername: "bob", Medication: "ibuprofen", Dosage: "200mg"},
	} {
		if err := prescriptions.Create(context.Background(), p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	// A patient asking for someone else's records still gets their own.
	req := requestWithRoles(http.MethodGet, "/prescriptions?username=bob", "", "alice",
		[]string{auth.RolePatient})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPrescriptions(c); err != nil {
		t.Fatalf("ListPrescriptions failed: %v", err)
	}

	var out []*Prescription
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(out) != 1 || out[0].PatientUsername != "alice" {
		t.Errorf("expected only alice's prescriptions, got %+v", out)
	}
}

func TestCreatePrescriptionHandler(t *testing.T) {
	h, repo, _, audit := newTestHandler()
	e := echo.New()

	body := `{"patientUsername":"alice","medicationCategory":"antibiotic",` +
		`"medication":"amoxicillin","dosage":"500mg","frequency":"3x daily"}`
	req := requestWithRoles(http.MethodPost, "/prescriptions", body, "drhouse",
		[]string{auth.RoleDoctor, auth.RoleStaff})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePrescription(c); err != nil {
		t.Fatalf("CreatePrescription failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if len(repo.prescriptions) != 1 {
		t.Errorf("expected 1 stored prescription, got %d", len(repo.prescriptions))
	}
	if len(audit.actions) != 1 || audit.actions[0] != "Prescription created" {
		t.Errorf("expected audit entry, got %v", audit.actions)
	}
}

func TestReleaseMedTestHandler(t *testing.T) {
	h, _, medTests, _ := newTestHandler()
	e := echo.New()

	test := &MedTest{PatientUsername: "alice", Name: "biopsy"}
	if err := medTests.Create(context.Background(), test); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := requestWithRoles(http.MethodPost, "/medtests/"+test.ID.String()+"/release", "",
		"drhouse", []string{auth.RoleDoctor, auth.RoleStaff})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(test.ID.String())

	if err := h.ReleaseMedTest(c); err != nil {
		t.Fatalf("ReleaseMedTest failed: %v", err)
	}
	if !medTests.tests[test.ID].Released {
		t.Error("expected the stored test to be released")
	}
}

func TestDeletePrescriptionHandler_Missing(t *testing.T) {
	h, _, _, _ := newTestHandler()
	e := echo.New()

	id := uuid.NewString()
	req := requestWithRoles(http.MethodDelete, "/prescriptions/"+id, "", "drhouse",
		[]string{auth.RoleDoctor, auth.RoleStaff})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	err := h.DeletePrescription(c)
	if err == nil {
		t.Fatal("expected error for missing prescription")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
