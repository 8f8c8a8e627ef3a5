package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	apperrors "reppi/internal/errors"
)

// ConcurrencyLimit caps the number of requests handled at once. A request
// that cannot get a slot before its context ends is answered with 503.
func ConcurrencyLimit(max int64) echo.MiddlewareFunc {
	sem := semaphore.NewWeighted(max)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := sem.Acquire(c.Request().Context(), 1); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, apperrors.ErrorResponse{
					Error: "Server busy",
					Code:  "SERVER_BUSY",
				})
			}
			defer sem.Release(1)
			return next(c)
		}
	}
}
