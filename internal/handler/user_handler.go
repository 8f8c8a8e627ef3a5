package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reppi/internal/service"
)

// UserHandler serves the signed-in user's profile.
type UserHandler struct {
	base
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{base: newBase(log), users: users}
}

// Me godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.users.ResolveOwner(c.Request().Context(), identity(c))
	if err != nil {
		return h.fail(c, err, "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}
