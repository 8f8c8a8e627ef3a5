package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "reppi/docs" // swagger docs

	"reppi/internal/app"
	"reppi/internal/cache"
	"reppi/internal/config"
	"reppi/internal/db"
	"reppi/internal/logger"
	"reppi/internal/service"
)

// @title Reppi API
// @version 1.0
// @description Personal productivity API: goals with rep logs, daily objectives and notes, grouped by category.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	opts := logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Development: cfg.IsDevelopment()}
	if cfg.Log.File != "" {
		opts.Rotate = &logger.FileRotate{
			Filename:   cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		}
	}
	zl, flush := logger.New(opts)
	defer flush()
	zl = zl.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	gormDB, err := db.Open(db.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
		Writer:          logger.StdLogger(zl.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		zl.Fatal("database init", zap.Error(err))
	}
	defer func() { _ = db.Close(gormDB) }()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			zl.Fatal("auto-migrate", zap.Error(err))
		}
	}

	var cacheClient *cache.Client
	if cfg.Redis.Enabled {
		cacheClient = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() { _ = cacheClient.Close() }()
		if err := cacheClient.Ping(context.Background()); err != nil {
			zl.Warn("redis unreachable, continuing without cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
	} else {
		zl.Warn("redis disabled: tokens are kept in process memory and the user cache is off")
	}

	a := app.New(cfg, zl, gormDB, cacheClient)

	scheduler := service.NewSchedulerService(cfg.Location())
	if cfg.Reconcile.Enabled {
		if _, err := scheduler.Schedule(cfg.Reconcile.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout*6)
			defer cancel()
			_, _ = a.Reconcile.Run(ctx)
		}); err != nil {
			zl.Fatal("reconcile schedule", zap.Error(err))
		}
		scheduler.Start()
		zl.Info("reconcile job scheduled", zap.String("schedule", cfg.Reconcile.Schedule))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     logger.StdLogger(zl.Named("http"), zapcore.ErrorLevel),
	}

	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr), zap.String("db", cfg.Database.Driver))
		if cfg.Swagger.Enabled {
			zl.Info("swagger documentation available", zap.String("url", "http://localhost:"+cfg.Server.Port+"/swagger/index.html"))
		}
		if err := a.Echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(ctx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	if cfg.Reconcile.Enabled {
		scheduler.Stop()
	}
}
