package appointment

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

// RegisterRoutes mounts the appointment pages on the root router. Every
// route requires a session; the browser flow redirects to login instead of
// erroring.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/appointments/create", h.Create)
	e.POST("/appointments/delete/:id", h.Delete)
	e.POST("/appointments/edit/:id", h.Edit)
	e.GET("/appointments", h.List)
}

func (h *Handler) requester(c echo.Context) (string, *uuid.UUID, bool) {
	ctx := c.Request().Context()
	username := auth.UsernameFromContext(ctx)
	if username == "" {
		return "", nil, false
	}
	var accountID *uuid.UUID
	if id := auth.AccountIDFromContext(ctx); id != uuid.Nil {
		accountID = &id
	}
	return username, accountID, true
}

func (h *Handler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	username, accountID, ok := h.requester(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, err := h.svc.Create(ctx, username, &form)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.audit.Record(ctx, accountID, username, "Appointment created")
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	username, accountID, ok := h.requester(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}

	if err := h.svc.Delete(ctx, id, username); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete appointment")
	}

	h.audit.Record(ctx, accountID, username, "Appointment deleted")
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Edit(c echo.Context) error {
	ctx := c.Request().Context()

	username, accountID, ok := h.requester(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}

	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, err := h.svc.Edit(ctx, id, username, &form)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.audit.Record(ctx, accountID, username, "Appointment updated")
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()

	username, _, ok := h.requester(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	appointments, err := h.svc.ListForUsername(ctx, username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list appointments")
	}
	return c.JSON(http.StatusOK, appointments)
}
