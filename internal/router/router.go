package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"reppi/docs"
	"reppi/internal/auth"
	"reppi/internal/config"
	apperrors "reppi/internal/errors"
	"reppi/internal/handler"
	appmw "reppi/internal/middleware"
	"reppi/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	resolver *auth.SessionResolver,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	goalHandler *handler.GoalHandler,
	repLogHandler *handler.RepLogHandler,
	noteHandler *handler.NoteHandler,
	objectiveHandler *handler.ObjectiveHandler,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Validator = &CustomValidator{validator: service.Validator()}

	e.Use(middleware.RequestID())
	e.Use(appmw.Metrics())
	e.Use(appmw.AccessLog(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if cfg.Server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}
	if cfg.Server.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(cfg.Server.RequestTimeout))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if cfg.Swagger.Enabled {
		if cfg.Swagger.Host != "" {
			docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.Swagger.Host, "https://"), "http://")
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group("/api")
	if cfg.RateLimit.Enabled {
		api.Use(appmw.RateLimitPerIP(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	if cfg.Server.MaxInFlight > 0 {
		api.Use(appmw.ConcurrencyLimit(cfg.Server.MaxInFlight))
	}

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes
	secured := api.Group("", resolver.Middleware())

	secured.GET("/me", userHandler.Me)

	secured.GET("/categories", categoryHandler.List)
	secured.POST("/categories", categoryHandler.Create)

	secured.GET("/goals", goalHandler.List)
	secured.POST("/goals", goalHandler.Create)
	secured.GET("/goals/:id", goalHandler.Get)
	secured.PATCH("/goals/:id", goalHandler.Update)
	secured.DELETE("/goals/:id", goalHandler.Delete)
	secured.GET("/goals/:id/repLogs", goalHandler.RepLogs)

	secured.POST("/repLogs", repLogHandler.Create)

	secured.GET("/notes", noteHandler.List)
	secured.POST("/notes", noteHandler.Create)
	secured.PATCH("/notes/:id", noteHandler.Update)
	secured.DELETE("/notes/:id", noteHandler.Delete)

	secured.GET("/objectives", objectiveHandler.List)
	secured.POST("/objectives", objectiveHandler.Create)
	secured.PATCH("/objectives/:id", objectiveHandler.Update)
	secured.DELETE("/objectives/:id", objectiveHandler.Delete)
}

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			log.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
			he = echo.NewHTTPError(http.StatusInternalServerError)
		}

		var body apperrors.ErrorResponse
		switch m := he.Message.(type) {
		case apperrors.ErrorResponse:
			body = m
		case string:
			body.Error = m
		case error:
			body.Error = m.Error()
		default:
			body.Error = http.StatusText(he.Code)
		}
		if he.Code >= http.StatusInternalServerError && body.Error == http.StatusText(he.Code) {
			body.Error = "internal server error"
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
