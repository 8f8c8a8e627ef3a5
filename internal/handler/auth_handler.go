package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reppi/internal/auth"
	apperrors "reppi/internal/errors"
	"reppi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	base
	authService  service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session
// cookie Secure and should be set whenever the API is served over TLS.
func NewAuthHandler(authService service.AuthService, secureCookie bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{base: newBase(log), authService: authService, secureCookie: secureCookie}
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates the user together with the default objective and note categories.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to register user")
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login user
// @Description Returns a token pair and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} service.TokenPair
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginInput
	if err := bind(c, &req); err != nil {
		return err
	}

	pair, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to login")
	}
	h.setSession(c, pair.AccessToken, time.Duration(pair.ExpiresIn)*time.Second)
	return c.JSON(http.StatusOK, pair)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotates the refresh token and issues a new pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} service.TokenPair
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return h.fail(c, apperrors.Validation("Refresh token is required"), "")
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return h.fail(c, err, "Failed to refresh token")
	}
	h.setSession(c, pair.AccessToken, time.Duration(pair.ExpiresIn)*time.Second)
	return c.JSON(http.StatusOK, pair)
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the refresh token, blacklists the current access token and clears the session cookie.
// @Tags auth
// @Accept json
// @Param request body LogoutRequest true "Refresh token"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return h.fail(c, apperrors.Validation("Refresh token is required"), "")
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken, auth.BearerToken(c)); err != nil {
		return h.fail(c, err, "Failed to logout")
	}
	h.setSession(c, "", -1)
	return c.NoContent(http.StatusNoContent)
}

// setSession writes the session cookie. A negative ttl deletes it.
func (h *AuthHandler) setSession(c echo.Context, token string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(ttl / time.Second)
	}
	c.SetCookie(cookie)
}
