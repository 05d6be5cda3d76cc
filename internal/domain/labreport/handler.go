package labreport

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
	e.GET("/labreports/me", h.ListMyReports, auth.RequireRole(auth.RolePatient))
	e.GET("/labreports/my", h.ListAuthoredReports, auth.RequireRole(auth.RoleLab))

	read := e.Group("/labreports", auth.RequireRole(auth.RoleDoctor, auth.RoleAdmin))
	read.GET("", h.ListReports)
	read.GET("/:id", h.GetReport)

	write := e.Group("/labreports", auth.RequireRole(auth.RoleLab, auth.RoleAdmin))
	write.POST("", h.CreateReport)
}

func (h *Handler) CreateReport(c echo.Context) error {
	claim, ok := auth.ClaimFromContext(c.Request().Context())
	if !ok {
		return apperr.ToHTTP(apperr.ErrUnauthenticated)
	}
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return apperr.ToHTTP(err)
	}
	r := req.ToLabReport()
	if err := h.svc.CreateReport(c.Request().Context(), r, claim); err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	r, err := h.svc.GetReport(c.Request().Context(), id)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListReports(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListReports(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	pagination.SetTotal(c, total)
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListMyReports(c echo.Context) error {
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

func (h *Handler) ListAuthoredReports(c echo.Context) error {
	claim, ok := auth.ClaimFromContext(c.Request().Context())
	if !ok {
		return apperr.ToHTTP(apperr.ErrUnauthenticated)
	}
	items, err := h.svc.ListByAuthor(c.Request().Context(), claim.Username)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, items)
}
