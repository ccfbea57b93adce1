package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/middleware"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/service"
)

// UserHandler serves user management endpoints. Every route is ADMIN only.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// AuditResponse lists audit rows about one user.
type AuditResponse struct {
	Entries []model.UserAudit `json:"entries"`
}

func actorID(c echo.Context) string {
	if user, ok := middleware.CurrentUser(c); ok {
		return user.ID
	}
	return ""
}

// queryInt reads an integer query parameter, def when absent.
func queryInt(c echo.Context, name string, def int, verr *apperrors.ValidationError) int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(name, name+" must be an integer")
		return def
	}
	return v
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param page query int false "Page, from 1" default(1)
// @Param pageSize query int false "Page size, 1 to 200" default(20)
// @Param search query string false "Case-insensitive email substring"
// @Success 200 {object} service.UserPage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	verr := apperrors.NewValidationError()
	q := service.ListUsersQuery{
		Page:     queryInt(c, "page", service.DefaultPage, verr),
		PageSize: queryInt(c, "pageSize", service.DefaultPageSize, verr),
		Search:   c.QueryParam("search"),
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	page, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// CreateUser godoc
// @Summary Create user
// @Description Role defaults to MODERATOR.
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param request body service.CreateUserInput true "User"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req service.CreateUserInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Create(c.Request().Context(), actorID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, UserResponse{User: user})
}

// UpdateUser godoc
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body service.UpdateUserInput true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req service.UpdateUserInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Update(c.Request().Context(), actorID(c), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// DeleteUser godoc
// @Summary Delete user
// @Description The last ADMIN cannot be deleted.
// @Tags users
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), actorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// ResetPassword godoc
// @Summary Reset a user's password
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body service.ResetPasswordInput true "New password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req service.ResetPasswordInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.ResetPassword(c.Request().Context(), actorID(c), c.Param("id"), req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password reset successfully"})
}

// AuditTrail godoc
// @Summary Audit rows about a user
// @Description Newest first. Rows of deleted users remain readable.
// @Tags users
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param limit query int false "Max rows, up to 500" default(100)
// @Success 200 {object} AuditResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/{id}/audit [get]
func (h *UserHandler) AuditTrail(c echo.Context) error {
	verr := apperrors.NewValidationError()
	limit := queryInt(c, "limit", service.DefaultAuditLimit, verr)
	if err := verr.OrNil(); err != nil {
		return err
	}
	entries, err := h.svc.AuditTrail(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AuditResponse{Entries: entries})
}
