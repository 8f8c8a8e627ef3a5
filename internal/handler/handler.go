package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reppi/internal/auth"
	apperrors "reppi/internal/errors"
)

// base carries what every handler needs to report failures.
type base struct {
	log *zap.Logger
}

func newBase(log *zap.Logger) base {
	if log == nil {
		log = zap.NewNop()
	}
	return base{log: log}
}

// fail turns a service error into an HTTP error. Unexpected errors are logged
// and reported to the client as fallback.
func (b base) fail(c echo.Context, err error, fallback string) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.Internal() {
		b.log.Error(fallback,
			zap.Error(err),
			zap.String("rid", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
		)
		httpErr.Message = fallback
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bind decodes the request body into dst.
func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	return nil
}

func identity(c echo.Context) auth.Identity {
	return auth.IdentityFrom(c)
}
