package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/auth"
	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/metrics"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/middleware"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	metrics      *metrics.Metrics
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session cookie Secure.
func NewAuthHandler(authService service.AuthService, m *metrics.Metrics, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m, secureCookie: secureCookie}
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// UserResponse wraps a single sanitized user.
type UserResponse struct {
	User *model.User `json:"user"`
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if h.metrics != nil {
		metrics.Observe(h.metrics.LoginsTotal, err, func(err error) bool {
			return errors.Is(err, apperrors.ErrInvalidCredentials)
		})
	}
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(token, int(auth.TokenExpiry.Seconds())))
	return c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

// Logout godoc
// @Summary Log out
// @Description Clears the session cookie. Tokens are not revoked server-side.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// CreateAdmin godoc
// @Summary Create the first admin
// @Description Only allowed while no user exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.CreateAdminInput true "Admin credentials"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/create-admin [post]
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	var req service.CreateAdminInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.CreateAdmin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, UserResponse{User: user})
}
