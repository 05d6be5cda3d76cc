package patient

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
	e.GET("/patients/me", h.GetMyPatient, auth.RequireRole(auth.RolePatient))
	e.GET("/patients/my", h.ListMyPatients, auth.RequireRole(auth.RoleDoctor))

	read := e.Group("/patients", auth.RequireRole(auth.RoleDoctor, auth.RoleAdmin, auth.RoleLab, auth.RolePatient))
	read.GET("", h.ListPatients)
	read.GET("/:id", h.GetPatient)

	write := e.Group("/patients", auth.RequireRole(auth.RoleAdmin, auth.RoleDoctor, auth.RoleLab, auth.RolePatient))
	write.POST("", h.CreatePatient)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return apperr.ToHTTP(err)
	}
	p := req.ToPatient()
	if err := h.svc.CreatePatient(c.Request().Context(), p); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	pagination.SetTotal(c, total)
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMyPatient(c echo.Context) error {
	claim, ok := auth.ClaimFromContext(c.Request().Context())
	if !ok {
		return apperr.ToHTTP(apperr.ErrUnauthenticated)
	}
	p, err := h.svc.GetPatientByUsername(c.Request().Context(), claim.Username)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListMyPatients(c echo.Context) error {
	claim, ok := auth.ClaimFromContext(c.Request().Context())
	if !ok {
		return apperr.ToHTTP(apperr.ErrUnauthenticated)
	}
	items, err := h.svc.ListPatientsForDoctor(c.Request().Context(), claim.Username)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}
