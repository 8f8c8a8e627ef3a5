package app

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reppi/internal/auth"
	"reppi/internal/cache"
	"reppi/internal/config"
	"reppi/internal/handler"
	"reppi/internal/repository"
	"reppi/internal/router"
	"reppi/internal/service"
)

// App is the wired HTTP server together with the services behind it.
type App struct {
	Echo *echo.Echo

	Auth       service.AuthService
	Users      service.UserService
	Categories service.CategoryService
	Goals      service.GoalService
	Progress   service.ProgressService
	Notes      service.NoteService
	Objectives service.ObjectiveService
	Reconcile  *service.ReconcileService
}

// New wires repositories, services, handlers and routes. cacheClient may be nil.
func New(cfg *config.Config, log *zap.Logger, gdb *gorm.DB, cacheClient *cache.Client) *App {
	loc := cfg.Location()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gdb)
	categoryRepo := repository.NewCategoryRepository(gdb)
	goalRepo := repository.NewGoalRepository(gdb)
	repLogRepo := repository.NewRepLogRepository(gdb)
	noteRepo := repository.NewNoteRepository(gdb)
	objectiveRepo := repository.NewObjectiveRepository(gdb)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWT.Secret,
		auth.WithIssuer(cfg.JWT.Issuer),
		auth.WithTTL(cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL),
	)
	var tokenStore auth.TokenStoreInterface = auth.NewTokenStore(cacheClient)
	if cacheClient == nil {
		tokenStore = auth.NewMemoryTokenStore()
	}
	resolver := auth.NewSessionResolver(jwtService, tokenStore)

	// Initialize services
	users := service.NewUserService(userRepo, cacheClient)
	a := &App{
		Auth:       service.NewAuthService(userRepo, jwtService, tokenStore),
		Users:      users,
		Categories: service.NewCategoryService(users, categoryRepo),
		Goals:      service.NewGoalService(users, goalRepo, repLogRepo, loc),
		Progress:   service.NewProgressService(users, goalRepo),
		Notes:      service.NewNoteService(users, noteRepo, categoryRepo),
		Objectives: service.NewObjectiveService(users, objectiveRepo, categoryRepo, loc),
		Reconcile:  service.NewReconcileService(goalRepo, log.Named("reconcile")),
	}

	// Initialize handlers and routes
	a.Echo = echo.New()
	router.Register(
		a.Echo,
		cfg,
		log,
		resolver,
		handler.NewAuthHandler(a.Auth, !cfg.IsDevelopment(), log),
		handler.NewUserHandler(a.Users, log),
		handler.NewCategoryHandler(a.Categories, log),
		handler.NewGoalHandler(a.Goals, log),
		handler.NewRepLogHandler(a.Progress, log),
		handler.NewNoteHandler(a.Notes, log),
		handler.NewObjectiveHandler(a.Objectives, log),
	)
	return a
}
