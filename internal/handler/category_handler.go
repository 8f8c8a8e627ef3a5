package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reppi/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	base
	categories service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories service.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{base: newBase(log), categories: categories}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param type query string false "objective or note"
// @Success 200 {array} model.Category
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context(), identity(c), c.QueryParam("type"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch categories")
	}
	return c.JSON(http.StatusOK, categories)
}

// Create godoc
// @Summary Create a category
// @Description Returns the existing category with 200 when one with the same name and type exists.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateCategoryInput true "Category"
// @Success 200 {object} model.Category
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req service.CreateCategoryInput
	if err := bind(c, &req); err != nil {
		return err
	}

	category, created, err := h.categories.Create(c.Request().Context(), identity(c), req)
	if err != nil {
		return h.fail(c, err, "Failed to create category")
	}
	if created {
		return c.JSON(http.StatusCreated, category)
	}
	return c.JSON(http.StatusOK, category)
}
