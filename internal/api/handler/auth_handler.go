package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedstream/feed-api/internal/api/metrics"
	"github.com/feedstream/feed-api/internal/api/middleware"
	"github.com/feedstream/feed-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for registration, login, and the
// caller's status line.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  signupResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [put]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues("rest").Inc()
	return c.JSON(http.StatusCreated, signupResponse{Message: "user created", UserID: user.ID})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rest", "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("rest", "success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, UserID: user.ID})
}

// GetStatus returns the caller's status line.
//
// @Summary      Get the caller's status
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/status [get]
func (h *AuthHandler) GetStatus(c echo.Context) error {
	status, err := h.authService.GetStatus(c.Request().Context(), middleware.FromEcho(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: status})
}

// UpdateStatus replaces the caller's status line.
//
// @Summary      Update the caller's status
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/status [patch]
func (h *AuthHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.UpdateStatus(c.Request().Context(), middleware.FromEcho(c), req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user updated"})
}
