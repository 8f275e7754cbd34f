package clinical

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnet/healthnet/internal/platform/auth"
)

// Recorder appends entries to the activity log.
type Recorder interface {
	Record(ctx context.Context, accountID *uuid.UUID, username, action string)
}

type Handler struct {
	svc   *Service
	audit Recorder
}

func NewHandler(svc *Service, audit Recorder) *Handler {
	return &Handler{svc: svc, audit: audit}
}

// RegisterRoutes mounts the clinical endpoints. Reads need a session and
// scope to the requester unless they hold a staff role; writes are staff only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	authed := api.Group("", auth.RequireSession())
	authed.GET("/prescriptions", h.ListPrescriptions)
	authed.GET("/medtests", h.ListMedTests)

	staffOnly := api.Group("", auth.RequireRole(auth.RoleStaff))
	staffOnly.POST("/prescriptions", h.CreatePrescription)
	staffOnly.PUT("/prescriptions/:id", h.UpdatePrescription)
	staffOnly.DELETE("/prescriptions/:id", h.DeletePrescription)
	staffOnly.POST("/medtests", h.CreateMedTest)
	staffOnly.PUT("/medtests/:id", h.UpdateMedTest)
	staffOnly.POST("/medtests/:id/release", h.ReleaseMedTest)
}

func isStaff(ctx context.Context) bool {
	for _, role := range auth.RolesFromContext(ctx) {
		if role == auth.RoleStaff {
			return true
		}
	}
	return false
}

// targetUsername resolves which patient's records a read returns. Staff may
// pass ?username=; everyone else is pinned to their own session.
func targetUsername(c echo.Context) string {
	ctx := c.Request().Context()
	if isStaff(ctx) {
		if requested := c.QueryParam("username"); requested != "" {
			return requested
		}
	}
	return auth.UsernameFromContext(ctx)
}

func (h *Handler) ListPrescriptions(c echo.Context) error {
	ctx := c.Request().Context()

	username := targetUsername(c)
	prescriptions, err := h.svc.PrescriptionsForPatient(ctx, username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list prescriptions")
	}
	return c.JSON(http.StatusOK, prescriptions)
}

func (h *Handler) CreatePrescription(c echo.Context) error {
	ctx := c.Request().Context()

	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.CreatePrescription(ctx, &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.recordAction(c, "Prescription created")
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePrescription(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid prescription id")
	}

	var p Prescription
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p.ID = id

	if err := h.svc.UpdatePrescription(ctx, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update prescription")
	}

	h.recordAction(c, "Prescription updated")
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePrescription(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid prescription id")
	}

	if err := h.svc.DeletePrescription(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "prescription not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete prescription")
	}

	h.recordAction(c, "Prescription deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListMedTests(c echo.Context) error {
	ctx := c.Request().Context()

	// Patients never see unreleased results.
	releasedOnly := !isStaff(ctx)
	tests, err := h.svc.MedTestsForPatient(ctx, targetUsername(c), releasedOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list med tests")
	}
	return c.JSON(http.StatusOK, tests)
}

func (h *Handler) CreateMedTest(c echo.Context) error {
	ctx := c.Request().Context()

	var t MedTest
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.CreateMedTest(ctx, &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.recordAction(c, "Med test created")
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateMedTest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid med test id")
	}

	var t MedTest
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	t.ID = id

	if err := h.svc.UpdateMedTest(ctx, &t); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "med test not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update med test")
	}

	h.recordAction(c, "Med test updated")
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ReleaseMedTest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid med test id")
	}

	t, err := h.svc.ReleaseMedTest(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "med test not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to release med test")
	}

	h.recordAction(c, "Med test released")
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) recordAction(c echo.Context, action string) {
	ctx := c.Request().Context()
	username := auth.UsernameFromContext(ctx)
	var accountID *uuid.UUID
	if id := auth.AccountIDFromContext(ctx); id != uuid.Nil {
		accountID = &id
	}
	h.audit.Record(ctx, accountID, username, action)
}
