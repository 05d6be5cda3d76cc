package prediction

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/livercare/livercare/internal/platform/apperr"
	"github.com/livercare/livercare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/predict", auth.RequireRole(auth.RoleDoctor, auth.RoleLab, auth.RoleAdmin))
	g.POST("/first", h.PredictFirst)
	g.POST("/followup", h.PredictFollowup)
}

func (h *Handler) PredictFirst(c echo.Context) error {
	var in FirstReportRequest
	if err := decodeStrict(c, &in, FirstReportSchema); err != nil {
		return apperr.ToHTTP(err)
	}
	res, err := h.svc.PredictFirst(c.Request().Context(), in.features())
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) PredictFollowup(c echo.Context) error {
	var in FollowupReportRequest
	if err := decodeStrict(c, &in, FollowupReportSchema); err != nil {
		return apperr.ToHTTP(err)
	}
	res, err := h.svc.PredictFollowup(c.Request().Context(), in.features())
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, res)
}
