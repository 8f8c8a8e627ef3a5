package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"reppi/internal/metrics"
)

// Metrics records request counts and latency per route.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			path := routePath(c)
			method := c.Request().Method
			metrics.HTTPRequests.WithLabelValues(path, method, strconv.Itoa(c.Response().Status)).Inc()
			metrics.HTTPLatency.WithLabelValues(path, method).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
