package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reppi/internal/model"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		current, target int
		want            string
	}{
		{0, 100, "[--------------------]   0%"},
		{60, 100, "[############--------]  60%"},
		{150, 100, "[####################] 100%"},
		{5, 0, "[--------------------]   0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.current, tt.target))
	}
}

func TestGoals(t *testing.T) {
	var buf bytes.Buffer
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Goals(&buf, []model.Goal{
		{ID: uuid.New(), Title: "Pushups", CurrentReps: 40, TargetReps: 100, EndDate: &end},
		{ID: uuid.New(), Title: "Squats", CurrentReps: 50, TargetReps: 50, Completed: true},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "40/100")
	assert.Contains(t, lines[1], "2024-06-30")
	assert.Contains(t, lines[2], "Squats (done)")
	assert.Contains(t, lines[2], "100%")

	buf.Reset()
	require.NoError(t, Goals(&buf, nil))
	assert.Equal(t, "No goals yet.\n", buf.String())
}

func TestObjectivesChecklist(t *testing.T) {
	var buf bytes.Buffer
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, Objectives(&buf, []model.Objective{
		{ID: uuid.New(), Title: "Read", Date: day, Category: &model.Category{Name: "Learning"}},
		{ID: uuid.New(), Title: "Run", Date: day, Completed: true},
	}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[ ]"))
	assert.Contains(t, lines[0], "Learning")
	assert.True(t, strings.HasPrefix(lines[1], "[x]"))
}

func TestNotesAndCategories(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Notes(&buf, []model.Note{
		{ID: uuid.New(), Title: "Stoic", Content: "line one\nline two\n", Category: &model.Category{Name: "Wisdom"}},
	}))
	assert.Contains(t, buf.String(), "Stoic  [Wisdom]")
	assert.Contains(t, buf.String(), "    line one\n    line two\n")

	buf.Reset()
	require.NoError(t, Categories(&buf, []model.Category{{ID: uuid.New(), Name: "Books", Type: model.CategoryTypeNote}}))
	assert.Contains(t, buf.String(), "Books")
	assert.Contains(t, buf.String(), string(model.CategoryTypeNote))
}

func TestRepLogs(t *testing.T) {
	var buf bytes.Buffer
	note := "felt strong"
	require.NoError(t, RepLogs(&buf, []model.RepLog{{Count: 25, Notes: &note, CreatedAt: time.Now()}}))
	assert.Contains(t, buf.String(), "25")
	assert.Contains(t, buf.String(), "felt strong")

	buf.Reset()
	require.NoError(t, Goal(&buf, &model.Goal{ID: uuid.New(), Title: "Pushups", CurrentReps: 10, TargetReps: 20}))
	assert.Contains(t, buf.String(), "50%")
	assert.NotContains(t, buf.String(), "Description")
}
