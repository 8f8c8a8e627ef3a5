package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reppi/internal/model"
	"reppi/internal/service"
)

// RepLogHandler records progress against goals.
type RepLogHandler struct {
	base
	progress service.ProgressService
}

// NewRepLogHandler creates a new rep log handler.
func NewRepLogHandler(progress service.ProgressService, log *zap.Logger) *RepLogHandler {
	return &RepLogHandler{base: newBase(log), progress: progress}
}

// RepLogResponse is the created log with the goal it advanced.
type RepLogResponse struct {
	RepLog      *model.RepLog `json:"repLog"`
	UpdatedGoal *model.Goal   `json:"updatedGoal"`
}

// Create godoc
// @Summary Log reps against a goal
// @Tags repLogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateRepLogInput true "Rep log"
// @Success 201 {object} RepLogResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /repLogs [post]
func (h *RepLogHandler) Create(c echo.Context) error {
	var req service.CreateRepLogInput
	if err := bind(c, &req); err != nil {
		return err
	}

	log, goal, err := h.progress.Apply(c.Request().Context(), identity(c), req)
	if err != nil {
		return h.fail(c, err, "Failed to create rep log")
	}
	return c.JSON(http.StatusCreated, RepLogResponse{RepLog: log, UpdatedGoal: goal})
}
