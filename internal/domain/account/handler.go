package account

import (
	"fmt"
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
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.GET("/protected-test", h.ProtectedTest, auth.RequireAuthenticated())
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return apperr.ToHTTP(err)
	}
	u, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return apperr.ToHTTP(err)
	}
	resp, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return apperr.ToHTTP(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ProtectedTest(c echo.Context) error {
	claim, ok := auth.ClaimFromContext(c.Request().Context())
	if !ok {
		return apperr.ToHTTP(apperr.ErrUnauthenticated)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Hello, %s! You are authenticated as %s.", claim.Username, claim.Role),
	})
}
