package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRateLimitPerIP(t *testing.T) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") }, RateLimitPerIP(1, 2))

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	rec := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests","code":"RATE_LIMITED"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code, "buckets are per IP")
}

func TestIPLimiter_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lim := newIPLimiter(1, 1)
	lim.now = func() time.Time { return now }

	assert.True(t, lim.allow("a"))
	assert.False(t, lim.allow("a"))

	now = now.Add(visitorIdle + sweepInterval + time.Second)
	assert.True(t, lim.allow("b"))
	assert.NotContains(t, lim.visitors, "a")
	assert.Contains(t, lim.visitors, "b")
}

func TestConcurrencyLimit(t *testing.T) {
	e := echo.New()
	entered := make(chan struct{})
	release := make(chan struct{})
	e.GET("/slow", func(c echo.Context) error {
		close(entered)
		<-release
		return c.NoContent(http.StatusNoContent)
	}, ConcurrencyLimit(1))

	done := make(chan int)
	go func() {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
		done <- rec.Code
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server busy")

	close(release)
	assert.Equal(t, http.StatusNoContent, <-done)
}

func TestConcurrencyLimit_QueuedRequestWaitsForSlot(t *testing.T) {
	e := echo.New()
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	e.GET("/slow", func(c echo.Context) error {
		entered <- struct{}{}
		<-release
		return c.NoContent(http.StatusNoContent)
	}, ConcurrencyLimit(1))

	done := make(chan int, 2)
	serve := func() {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
		done <- rec.Code
	}
	go serve()
	<-entered
	go serve()

	select {
	case code := <-done:
		t.Fatalf("queued request finished early with %d", code)
	case <-time.After(30 * time.Millisecond):
	}

	close(release)
	assert.Equal(t, http.StatusNoContent, <-done)
	assert.Equal(t, http.StatusNoContent, <-done)
	assert.Len(t, entered, 1)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(AccessLog(zap.New(core)))
	e.GET("/items/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "missing")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42?token=abc&page=2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "/items/:id", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])

	query := fields["query"].(map[string][]string)
	assert.Equal(t, []string{"****"}, query["token"])
	assert.Equal(t, []string{"2"}, query["page"])
}

func TestMetricsCommitsErrors(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
