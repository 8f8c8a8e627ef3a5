package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "reppi/internal/errors"
)

const (
	// SessionCookieName carries the access token for browser clients.
	SessionCookieName = "reppi_session"
	// IdentityContextKey is where the session middleware stores the resolved Identity.
	IdentityContextKey = "identity"
)

// Identity is the outcome of session resolution.
type Identity struct {
	Authenticated bool
	UserID        uuid.UUID
	Email         string
	TokenID       string
	ExpiresAt     time.Time
}

// SessionResolver turns a bearer token into an Identity.
type SessionResolver struct {
	jwt   *JWTService
	store TokenStoreInterface
}

// NewSessionResolver creates a resolver backed by the JWT service and token blacklist.
func NewSessionResolver(jwt *JWTService, store TokenStoreInterface) *SessionResolver {
	return &SessionResolver{jwt: jwt, store: store}
}

// Resolve validates an access token. Any failure yields an unauthenticated
// identity together with ErrNotAuthenticated.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, apperrors.ErrNotAuthenticated
	}
	claims, err := r.jwt.ValidateTokenOfType(token, TokenTypeAccess)
	if err != nil {
		return Identity{}, apperrors.ErrNotAuthenticated
	}
	if blacklisted, _ := r.store.IsAccessTokenBlacklisted(ctx, claims.ID); blacklisted {
		return Identity{}, apperrors.ErrNotAuthenticated
	}

	id := Identity{
		Authenticated: true,
		UserID:        claims.UserID,
		Email:         claims.Email,
		TokenID:       claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Middleware rejects requests without a valid session before any handler runs
// and stores the Identity on the context under IdentityContextKey.
func (r *SessionResolver) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  IdentityContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + SessionCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return r.Resolve(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "Not authenticated",
				Code:  "NOT_AUTHENTICATED",
			})
		},
	})
}

// IdentityFrom returns the identity stored by Middleware.
func IdentityFrom(c echo.Context) Identity {
	id, _ := c.Get(IdentityContextKey).(Identity)
	return id
}

// BearerToken returns the raw access token sent with the request, if any.
func BearerToken(c echo.Context) string {
	const prefix = "Bearer "
	if h := c.Request().Header.Get(echo.HeaderAuthorization); len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
