package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reppi/internal/model"
	"reppi/internal/service"
)

// GoalHandler handles goal endpoints.
type GoalHandler struct {
	base
	goals service.GoalService
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(goals service.GoalService, log *zap.Logger) *GoalHandler {
	return &GoalHandler{base: newBase(log), goals: goals}
}

// List godoc
// @Summary List goals
// @Description Newest first.
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Goal
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals [get]
func (h *GoalHandler) List(c echo.Context) error {
	goals, err := h.goals.List(c.Request().Context(), identity(c))
	if err != nil {
		return h.fail(c, err, "Failed to fetch goals")
	}
	return c.JSON(http.StatusOK, goals)
}

// Get godoc
// @Summary Get a goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} model.Goal
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals/{id} [get]
func (h *GoalHandler) Get(c echo.Context) error {
	goal, err := h.goals.Get(c.Request().Context(), identity(c), c.Param("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch goal")
	}
	return c.JSON(http.StatusOK, goal)
}

// Create godoc
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateGoalInput true "Goal"
// @Success 201 {object} model.Goal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals [post]
func (h *GoalHandler) Create(c echo.Context) error {
	var req service.CreateGoalInput
	if err := bind(c, &req); err != nil {
		return err
	}

	goal, err := h.goals.Create(c.Request().Context(), identity(c), req)
	if err != nil {
		return h.fail(c, err, "Failed to create goal")
	}
	return c.JSON(http.StatusCreated, goal)
}

// Update godoc
// @Summary Update a goal
// @Description Absent fields are left unchanged. Completion is re-derived from the new target.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param request body model.GoalPatch true "Fields to change"
// @Success 200 {object} model.Goal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals/{id} [patch]
func (h *GoalHandler) Update(c echo.Context) error {
	var patch model.GoalPatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	goal, err := h.goals.Update(c.Request().Context(), identity(c), c.Param("id"), patch)
	if err != nil {
		return h.fail(c, err, "Failed to update goal")
	}
	return c.JSON(http.StatusOK, goal)
}

// Delete godoc
// @Summary Delete a goal
// @Description Deletes the goal and its rep logs.
// @Tags goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(c echo.Context) error {
	if err := h.goals.Delete(c.Request().Context(), identity(c), c.Param("id")); err != nil {
		return h.fail(c, err, "Failed to delete goal")
	}
	return c.NoContent(http.StatusNoContent)
}

// RepLogs godoc
// @Summary List a goal's rep logs
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {array} model.RepLog
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals/{id}/repLogs [get]
func (h *GoalHandler) RepLogs(c echo.Context) error {
	logs, err := h.goals.ListRepLogs(c.Request().Context(), identity(c), c.Param("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch rep logs")
	}
	return c.JSON(http.StatusOK, logs)
}
