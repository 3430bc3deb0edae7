package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-system/internal/core/ports"
	"github.com/99minutos/invoice-system/internal/pkg/metrics"
)

type AuthHandler struct {
	authService ports.AuthService
	metrics     *metrics.Metrics
}

// NewAuthHandler builds the register and login handlers. m may be nil.
func NewAuthHandler(authService ports.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// Register creates a new user account and opens its first session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) (err error) {
	defer func() { h.metrics.ObserveAuth("register", resultLabel(err)) }()

	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Company:  req.Company,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// Login authenticates a user and returns a new bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) (err error) {
	defer func() { h.metrics.ObserveAuth("login", resultLabel(err)) }()

	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuthResponse(res))
}
