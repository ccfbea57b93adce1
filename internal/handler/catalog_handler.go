package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/service"
)

// CatalogHandler serves one catalog kind (resources or volunteer opportunities).
type CatalogHandler[T any, I any] struct {
	svc   service.CatalogService[T, I]
	label string
}

// NewCatalogHandler creates a handler. label names the entity in messages.
func NewCatalogHandler[T any, I any](svc service.CatalogService[T, I], label string) *CatalogHandler[T, I] {
	return &CatalogHandler[T, I]{svc: svc, label: label}
}

// ListPublic godoc
// @Summary List active entries
// @Tags catalog
// @Produce json
// @Param kind path string true "resources or volunteers"
// @Success 200 {array} model.Resource
// @Failure 500 {object} errors.ErrorResponse
// @Router /{kind} [get]
func (h *CatalogHandler[T, I]) ListPublic(c echo.Context) error {
	items, err := h.svc.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListByCategory godoc
// @Summary List active entries of one category
// @Description The category is case-insensitive. Unknown categories return an empty list.
// @Tags catalog
// @Produce json
// @Param kind path string true "resources or volunteers"
// @Param category path string true "Category"
// @Success 200 {array} model.Resource
// @Failure 500 {object} errors.ErrorResponse
// @Router /{kind}/category/{category} [get]
func (h *CatalogHandler[T, I]) ListByCategory(c echo.Context) error {
	items, err := h.svc.ListByCategoryPublic(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Enums godoc
// @Summary List categories and types
// @Tags catalog
// @Produce json
// @Param kind path string true "resources or volunteers"
// @Success 200 {object} service.CatalogEnums
// @Router /{kind}/categories [get]
func (h *CatalogHandler[T, I]) Enums(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Enums())
}

// ListAdmin godoc
// @Summary List all entries, including inactive ones
// @Tags catalog
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param kind path string true "resources or volunteers"
// @Success 200 {array} model.Resource
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /{kind}/admin [get]
func (h *CatalogHandler[T, I]) ListAdmin(c echo.Context) error {
	items, err := h.svc.ListAdmin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get one entry
// @Tags catalog
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param kind path string true "resources or volunteers"
// @Param id path string true "Entry ID"
// @Success 200 {object} model.Resource
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{kind}/{id} [get]
func (h *CatalogHandler[T, I]) Get(c echo.Context) error {
	item, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary Create an entry
// @Tags catalog
// @Accept json
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param kind path string true "resources or volunteers"
// @Param request body model.ResourceInput true "Entry"
// @Success 201 {object} model.Resource
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /{kind} [post]
func (h *CatalogHandler[T, I]) Create(c echo.Context) error {
	var in I
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	item, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Update an entry
// @Description Only supplied fields change. lastUpdated always advances.
// @Tags catalog
// @Accept json
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param kind path string true "resources or volunteers"
// @Param id path string true "Entry ID"
// @Param request body model.ResourceInput true "Fields to change"
// @Success 200 {object} model.Resource
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{kind}/{id} [put]
func (h *CatalogHandler[T, I]) Update(c echo.Context) error {
	var in I
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	item, err := h.svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete an entry
// @Tags catalog
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param kind path string true "resources or volunteers"
// @Param id path string true "Entry ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{kind}/{id} [delete]
func (h *CatalogHandler[T, I]) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: h.label + " deleted successfully"})
}

