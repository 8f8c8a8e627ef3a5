package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reppi/internal/model"
	"reppi/internal/service"
)

// ObjectiveHandler handles objective endpoints.
type ObjectiveHandler struct {
	base
	objectives service.ObjectiveService
}

// NewObjectiveHandler creates a new objective handler.
func NewObjectiveHandler(objectives service.ObjectiveService, log *zap.Logger) *ObjectiveHandler {
	return &ObjectiveHandler{base: newBase(log), objectives: objectives}
}

// List godoc
// @Summary List objectives
// @Description Oldest first, each with its category. date limits the list to one calendar day.
// @Tags objectives
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day as YYYY-MM-DD"
// @Success 200 {array} model.Objective
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /objectives [get]
func (h *ObjectiveHandler) List(c echo.Context) error {
	objectives, err := h.objectives.List(c.Request().Context(), identity(c), c.QueryParam("date"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch objectives")
	}
	return c.JSON(http.StatusOK, objectives)
}

// Create godoc
// @Summary Create an objective
// @Description date defaults to now.
// @Tags objectives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateObjectiveInput true "Objective"
// @Success 201 {object} model.Objective
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /objectives [post]
func (h *ObjectiveHandler) Create(c echo.Context) error {
	var req service.CreateObjectiveInput
	if err := bind(c, &req); err != nil {
		return err
	}

	objective, err := h.objectives.Create(c.Request().Context(), identity(c), req)
	if err != nil {
		return h.fail(c, err, "Failed to create objective")
	}
	return c.JSON(http.StatusCreated, objective)
}

// Update godoc
// @Summary Update an objective
// @Tags objectives
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Objective ID"
// @Param request body model.ObjectivePatch true "Fields to change"
// @Success 200 {object} model.Objective
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /objectives/{id} [patch]
func (h *ObjectiveHandler) Update(c echo.Context) error {
	var patch model.ObjectivePatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	objective, err := h.objectives.Update(c.Request().Context(), identity(c), c.Param("id"), patch)
	if err != nil {
		return h.fail(c, err, "Failed to update objective")
	}
	return c.JSON(http.StatusOK, objective)
}

// Delete godoc
// @Summary Delete an objective
// @Tags objectives
// @Security BearerAuth
// @Param id path string true "Objective ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /objectives/{id} [delete]
func (h *ObjectiveHandler) Delete(c echo.Context) error {
	if err := h.objectives.Delete(c.Request().Context(), identity(c), c.Param("id")); err != nil {
		return h.fail(c, err, "Failed to delete objective")
	}
	return c.NoContent(http.StatusNoContent)
}
