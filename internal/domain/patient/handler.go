package patient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnet/healthnet/internal/domain/appointment"
	"github.com/healthnet/healthnet/internal/platform/auth"
	"github.com/healthnet/healthnet/pkg/pagination"
)

// Recorder appends entries to the activity log. Failures inside it never
// surface here.
type Recorder interface {
	Record(ctx context.Context, accountID *uuid.UUID, username, action string)
}

// AppointmentLister supplies the appointments shown on a profile page.
type AppointmentLister interface {
	ListForUsername(ctx context.Context, username string) ([]*appointment.Appointment, error)
}

type Handler struct {
	svc          *Service
	appointments AppointmentLister
	audit        Recorder
}

func NewHandler(svc *Service, appointments AppointmentLister, audit Recorder) *Handler {
	return &Handler{svc: svc, appointments: appointments, audit: audit}
}

// RegisterRoutes wires the browser-facing pages onto the root router. The
// profile pages key off the session, not the URL segment, so knowing a
// username is never enough to read someone else's record.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register)
	e.GET("/:username/profile", h.Profile)
	e.GET("/:username/staffProfile", h.StaffProfile)
	e.POST("/:username/profileEdit", h.ProfileEdit)
	e.GET("/export", h.Export)
}

// RegisterPage serves the blank registration state. The form itself lives in
// the client, but the visit is still audited, attributed to the session when
// one is present.
func (h *Handler) RegisterPage(c echo.Context) error {
	ctx := c.Request().Context()

	var accountID *uuid.UUID
	if id := auth.AccountIDFromContext(ctx); id != uuid.Nil {
		accountID = &id
	}
	h.audit.Record(ctx, accountID, auth.UsernameFromContext(ctx), "Registration page accessed")

	return c.JSON(http.StatusOK, map[string]bool{"registered": false})
}

func (h *Handler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var form RegistrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, err := h.svc.Register(ctx, &form)
	if err != nil {
		h.audit.Record(ctx, nil, form.Username, "Registration failed")
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.audit.Record(ctx, &p.AccountID, p.Username, "Patient registered")
	return c.JSON(http.StatusCreated, p)
}

// profileView is the payload behind the patient profile page.
type profileView struct {
	Record       *Record                    `json:"record"`
	Checklist    []ChecklistItem            `json:"checklist"`
	Appointments []*appointment.Appointment `json:"appointments"`
}

func (h *Handler) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	username := auth.UsernameFromContext(ctx)
	if username == "" {
		h.audit.Record(ctx, nil, c.Param("username"), "Unauthenticated profile access")
		return c.Redirect(http.StatusFound, "/login")
	}

	record, err := h.svc.GetRecord(ctx, username)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no patient record for %s", username))
	}

	appointments, err := h.appointments.ListForUsername(ctx, username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load appointments")
	}

	h.audit.Record(ctx, &record.Patient.AccountID, username, "Profile viewed")
	return c.JSON(http.StatusOK, profileView{
		Record:       record,
		Checklist:    record.Medical.Checklist(),
		Appointments: appointments,
	})
}

// staffProfileView lists the patients visible to a doctor or nurse.
type staffProfileView struct {
	AccountType string     `json:"accountType"`
	Patients    []*Patient `json:"patients"`
	Total       int        `json:"total"`
}

func (h *Handler) StaffProfile(c echo.Context) error {
	ctx := c.Request().Context()

	username := auth.UsernameFromContext(ctx)
	if username == "" {
		h.audit.Record(ctx, nil, c.Param("username"), "Unauthenticated staff profile access")
		return c.Redirect(http.StatusFound, "/login")
	}
	accountID := auth.AccountIDFromContext(ctx)
	if accountID == uuid.Nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	role, _, _ := h.svc.directory.ResolveStaff(ctx, accountID)
	if role == "" {
		return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("%s has no staff record", username))
	}

	p := pagination.FromContext(c)
	patients, total, err := h.svc.PatientsForStaff(ctx, accountID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list patients")
	}

	accountType := "Doctor"
	if role == auth.RoleNurse {
		accountType = "Nurse"
	}

	h.audit.Record(ctx, &accountID, username, "Staff profile viewed")
	return c.JSON(http.StatusOK, staffProfileView{
		AccountType: accountType,
		Patients:    patients,
		Total:       total,
	})
}

func (h *Handler) ProfileEdit(c echo.Context) error {
	ctx := c.Request().Context()

	username := auth.UsernameFromContext(ctx)
	if username == "" {
		h.audit.Record(ctx, nil, c.Param("username"), "Unauthenticated profile edit")
		return c.Redirect(http.StatusFound, "/login")
	}

	var form ProfileEditForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.svc.EditProfile(ctx, username, &form)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.audit.Record(ctx, &record.Patient.AccountID, username, "Profile updated")
	return c.JSON(http.StatusOK, record)
}

func (h *Handler) Export(c echo.Context) error {
	ctx := c.Request().Context()

	username := auth.UsernameFromContext(ctx)
	if username == "" {
		h.audit.Record(ctx, nil, "", "Unauthenticated export attempt")
		return c.Redirect(http.StatusFound, "/login")
	}

	record, err := h.svc.GetRecord(ctx, username)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no patient record for %s", username))
	}

	var buf bytes.Buffer
	if err := h.svc.WriteCSV(&buf, record); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build export")
	}

	h.audit.Record(ctx, &record.Patient.AccountID, username, "Medical information exported")

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, ExportFilename))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
