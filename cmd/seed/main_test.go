package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reppi/internal/app"
	"reppi/internal/auth"
	"reppi/internal/config"
	"reppi/internal/db"
)

func TestSeedDemoData(t *testing.T) {
	var data SeedData
	require.NoError(t, json.Unmarshal(demoData, &data))

	cfg := &config.Config{
		App: config.App{Env: "test", Timezone: "UTC"},
		JWT: config.JWT{Secret: "test-secret", AccessTTL: time.Minute, RefreshTTL: time.Hour},
	}
	a := app.New(cfg, zap.NewNop(), db.NewTestDB(t), nil)
	ctx := context.Background()

	require.NoError(t, seed(ctx, a, data, zap.NewNop()))
	require.NoError(t, seed(ctx, a, data, zap.NewNop()), "seeding twice is a no-op")

	id := auth.Identity{Authenticated: true, Email: data.User.Email}
	goals, err := a.Goals.List(ctx, id)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	for _, g := range goals {
		if g.Title == "Morning runs" {
			assert.Equal(t, 12, g.CurrentReps)
			assert.True(t, g.Completed)
		}
	}

	objectives, err := a.Objectives.List(ctx, id, "")
	require.NoError(t, err)
	assert.Len(t, objectives, 3)

	notes, err := a.Notes.List(ctx, id, "")
	require.NoError(t, err)
	assert.Len(t, notes, 3)
}
