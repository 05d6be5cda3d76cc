package appointment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/livercare/livercare/internal/platform/apperr"
	"github.com/livercare/livercare/internal/platform/auth"
	"github.com/livercare/livercare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/appointments/me", h.ListMyAppointments, auth.RequireRole(auth.RolePatient))
	e.GET("/appointments/my", h.ListDoctorAppointments, auth.RequireRole(auth.RoleDoctor))

	read := e.Group("/appointments", auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RoleLab))
	read.GET("", h.ListAppointments)
	read.GET("/:id", h.GetAppointment)

	write := e.Group("/appointments", auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor))
	write.POST("", h.CreateAppointment)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return apperr.ToHTTP(err)
	}
	a := req.ToAppointment()
	if err := h.svc.CreateAppointment(c.Request().Context(), a); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAppointments(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	pagination.SetTotal(c, total)
	return c.JSON(http.StatusOK, items)
}

// ListMyAppointments returns the calling patient's appointments.
func (h *Handler) ListMyAppointments(c echo.Context) error {
	claim, ok := auth.ClaimFromContext(c.Request().Context())
	if !ok {
		return apperr.ToHTTP(apperr.ErrUnauthenticated)
	}
	items, err := h.svc.ListForPatient(c.Request().Context(), claim.Username)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListDoctorAppointments returns the calling doctor's appointments.
func (h *Handler) ListDoctorAppointments(c echo.Context) error {
	claim, ok := auth.ClaimFromContext(c.Request().Context())
	if !ok {
		return apperr.ToHTTP(apperr.ErrUnauthenticated)
	}
	items, err := h.svc.ListForDoctor(c.Request().Context(), claim.Username)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}
