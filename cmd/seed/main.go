package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"reppi/internal/app"
	"reppi/internal/auth"
	"reppi/internal/config"
	"reppi/internal/db"
	apperrors "reppi/internal/errors"
	"reppi/internal/logger"
	"reppi/internal/model"
	"reppi/internal/service"
)

//go:embed demo.json
var demoData []byte

// SeedData is the fixture format read by the seeder.
type SeedData struct {
	User       service.RegisterInput `json:"user"`
	Goals      []SeedGoal            `json:"goals"`
	Objectives []SeedObjective       `json:"objectives"`
	Notes      []SeedNote            `json:"notes"`
}

// SeedGoal is a goal with the rep logs to apply to it.
type SeedGoal struct {
	service.CreateGoalInput
	Reps []int `json:"reps"`
}

// SeedObjective refers to its category by name.
type SeedObjective struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

// SeedNote refers to its category by name.
type SeedNote struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	fixture := flag.String("file", "", "seed fixture (defaults to the built-in demo data)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, flush := logger.New(logger.Options{Level: cfg.Log.Level, Development: true})
	defer flush()

	raw := demoData
	if *fixture != "" {
		if raw, err = os.ReadFile(*fixture); err != nil {
			zl.Fatal("read fixture", zap.Error(err))
		}
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		zl.Fatal("parse fixture", zap.Error(err))
	}

	gormDB, err := db.Open(db.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN, LogLevel: "warn"})
	if err != nil {
		zl.Fatal("database init", zap.Error(err))
	}
	defer func() { _ = db.Close(gormDB) }()
	if err := db.Migrate(gormDB); err != nil {
		zl.Fatal("auto-migrate", zap.Error(err))
	}
	zl.Info("connected to database", zap.String("driver", cfg.Database.Driver))

	a := app.New(cfg, zl, gormDB, nil)
	if err := seed(context.Background(), a, data, zl); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
}

func seed(ctx context.Context, a *app.App, data SeedData, zl *zap.Logger) error {
	user, err := a.Auth.Register(ctx, data.User)
	if errors.Is(err, apperrors.ErrUserAlreadyExists) {
		zl.Info("seed user already exists, nothing to do", zap.String("email", data.User.Email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("register %s: %w", data.User.Email, err)
	}
	id := auth.Identity{Authenticated: true, UserID: user.ID, Email: user.Email}

	for _, g := range data.Goals {
		goal, err := a.Goals.Create(ctx, id, g.CreateGoalInput)
		if err != nil {
			return fmt.Errorf("goal %q: %w", g.Title, err)
		}
		for _, n := range g.Reps {
			if _, goal, err = a.Progress.Apply(ctx, id, service.CreateRepLogInput{GoalID: goal.ID.String(), Count: n}); err != nil {
				return fmt.Errorf("rep log for %q: %w", g.Title, err)
			}
		}
		zl.Info("seeded goal", zap.String("title", goal.Title), zap.Int("currentReps", goal.CurrentReps), zap.Bool("completed", goal.Completed))
	}

	for _, o := range data.Objectives {
		category, _, err := a.Categories.Create(ctx, id, service.CreateCategoryInput{Name: o.Category, Type: string(model.CategoryTypeObjective)})
		if err != nil {
			return fmt.Errorf("category %q: %w", o.Category, err)
		}
		objective, err := a.Objectives.Create(ctx, id, service.CreateObjectiveInput{Title: o.Title, CategoryID: category.ID.String()})
		if err != nil {
			return fmt.Errorf("objective %q: %w", o.Title, err)
		}
		if o.Completed {
			if _, err := a.Objectives.Update(ctx, id, objective.ID.String(), model.ObjectivePatch{Completed: model.Some(true)}); err != nil {
				return fmt.Errorf("complete objective %q: %w", o.Title, err)
			}
		}
	}

	for _, n := range data.Notes {
		category, _, err := a.Categories.Create(ctx, id, service.CreateCategoryInput{Name: n.Category, Type: string(model.CategoryTypeNote)})
		if err != nil {
			return fmt.Errorf("category %q: %w", n.Category, err)
		}
		if _, err := a.Notes.Create(ctx, id, service.CreateNoteInput{Title: n.Title, Content: n.Content, CategoryID: category.ID.String()}); err != nil {
			return fmt.Errorf("note %q: %w", n.Title, err)
		}
	}

	zl.Info("seed completed",
		zap.String("email", user.Email),
		zap.Int("goals", len(data.Goals)),
		zap.Int("objectives", len(data.Objectives)),
		zap.Int("notes", len(data.Notes)),
	)
	return nil
}
