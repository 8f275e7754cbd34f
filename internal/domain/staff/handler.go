package staff

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthnet/healthnet/internal/platform/auth"
	"github.com/healthnet/healthnet/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts hospital and doctor listing publicly so the
// registration form can populate its dropdowns, and gates the create
// endpoints behind staff roles.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/hospitals", h.ListHospitals)
	api.GET("/doctors", h.ListDoctors)

	staffOnly := api.Group("", auth.RequireRole(auth.RoleStaff))
	staffOnly.POST("/hospitals", h.CreateHospital)
	staffOnly.POST("/doctors", h.CreateDoctor)
	staffOnly.POST("/nurses", h.CreateNurse)
	staffOnly.GET("/nurses", h.ListNurses)
}

type createHospitalRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateHospital(c echo.Context) error {
	var req createHospitalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	hospital := &Hospital{Name: req.Name}
	if err := h.svc.CreateHospital(c.Request().Context(), hospital); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, hospital)
}

func (h *Handler) ListHospitals(c echo.Context) error {
	p := pagination.FromContext(c)
	hospitals, total, err := h.svc.ListHospitals(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list hospitals")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(hospitals, total, p.Limit, p.Offset))
}

type createStaffRequest struct {
	AccountID  uuid.UUID `json:"accountId"`
	HospitalID uuid.UUID `json:"hospitalId"`
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	doctor := &Doctor{AccountID: req.AccountID, HospitalID: req.HospitalID}
	if err := h.svc.CreateDoctor(c.Request().Context(), doctor); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, doctor)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	p := pagination.FromContext(c)
	doctors, total, err := h.svc.ListDoctors(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list doctors")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(doctors, total, p.Limit, p.Offset))
}

func (h *Handler) CreateNurse(c echo.Context) error {
	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	nurse := &Nurse{AccountID: req.AccountID, HospitalID: req.HospitalID}
	if err := h.svc.CreateNurse(c.Request().Context(), nurse); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, nurse)
}

func (h *Handler) ListNurses(c echo.Context) error {
	p := pagination.FromContext(c)
	nurses, total, err := h.svc.ListNurses(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list nurses")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(nurses, total, p.Limit, p.Offset))
}
