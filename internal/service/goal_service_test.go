package service

import (
	"context"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reppi/internal/auth"
	apperrors "reppi/internal/errors"
	"reppi/internal/model"
)

func TestGoalService_Create(t *testing.T) {
	owner := newUser("owner@example.com")
	owners := staticOwners{owner.Email: owner}
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		identity    auth.Identity
		input       CreateGoalInput
		wantStatus  int
		wantMessage string
		check       func(t *testing.T, g *model.Goal)
	}{
		{
			name:     "starts at zero progress",
			identity: identityOf(owner),
			input:    CreateGoalInput{Title: "Pushups", TargetReps: 100, EndDate: strPtr("2024-04-01")},
			check: func(t *testing.T, g *model.Goal) {
				assert.Equal(t, "Pushups", g.Title)
				assert.Equal(t, 0, g.CurrentReps)
				assert.False(t, g.Completed)
				assert.Equal(t, now, g.StartDate)
				require.NotNil(t, g.EndDate)
				assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), *g.EndDate)
				assert.Equal(t, owner.ID, g.UserID)
			},
		},
		{
			name:        "unauthenticated",
			identity:    auth.Identity{},
			input:       CreateGoalInput{Title: "Pushups", TargetReps: 100},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Not authenticated",
		},
		{
			name:        "missing title",
			identity:    identityOf(owner),
			input:       CreateGoalInput{Title: "  ", TargetReps: 10},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Title is required",
		},
		{
			name:        "zero target",
			identity:    identityOf(owner),
			input:       CreateGoalInput{Title: "Squats"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Target reps must be at least 1",
		},
		{
			name:        "bad end date",
			identity:    identityOf(owner),
			input:       CreateGoalInput{Title: "Squats", TargetReps: 5, EndDate: strPtr("next tuesday")},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid end date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals := new(MockGoalRepository)
			if tt.wantStatus == 0 {
				goals.On("Create", mock.Anything, mock.AnythingOfType("*model.Goal")).Return(nil)
			}
			svc := &goalService{owners: owners, goals: goals, loc: time.UTC, clock: func() time.Time { return now }}

			goal, err := svc.Create(context.Background(), tt.identity, tt.input)
			if tt.wantStatus != 0 {
				assertHTTP(t, err, tt.wantStatus, tt.wantMessage)
			} else {
				require.NoError(t, err)
				tt.check(t, goal)
			}
			goals.AssertExpectations(t)
		})
	}
}

func TestGoalService_Ownership(t *testing.T) {
	owner := newUser("owner@example.com")
	other := newUser("other@example.com")
	owners := staticOwners{owner.Email: owner, other.Email: other}
	goal := &model.Goal{ID: uuid.New(), Title: "Pushups", TargetReps: 10, UserID: owner.ID}
	missing := uuid.New()

	goals := new(MockGoalRepository)
	goals.On("FindByID", mock.Anything, goal.ID).Return(goal, nil)
	goals.On("FindByID", mock.Anything, missing).Return(nil, apperrors.ErrGoalNotFound)
	svc := NewGoalService(owners, goals, new(MockRepLogRepository), time.UTC)

	_, err := svc.Get(context.Background(), identityOf(other), goal.ID.String())
	assertHTTP(t, err, http.StatusForbidden, "Not authorized to access this goal")

	_, err = svc.Get(context.Background(), identityOf(owner), missing.String())
	assertHTTP(t, err, http.StatusNotFound, "Goal not found")

	_, err = svc.Get(context.Background(), identityOf(owner), "not-a-uuid")
	assertHTTP(t, err, http.StatusNotFound, "Goal not found")

	err = svc.Delete(context.Background(), identityOf(other), goal.ID.String())
	assertHTTP(t, err, http.StatusForbidden, "Not authorized to access this goal")

	got, err := svc.Get(context.Background(), identityOf(owner), goal.ID.String())
	require.NoError(t, err)
	assert.Equal(t, goal.ID, got.ID)
	goals.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGoalService_UpdateRecomputesCompletion(t *testing.T) {
	owner := newUser("owner@example.com")
	goal := &model.Goal{ID: uuid.New(), Title: "Pushups", TargetReps: 100, CurrentReps: 60, UserID: owner.ID}

	goals := new(MockGoalRepository)
	goals.On("FindByID", mock.Anything, goal.ID).Return(goal, nil)
	goals.On("Update", mock.Anything, mock.MatchedBy(func(g *model.Goal) bool {
		return g.TargetReps == 50 && g.Completed && g.CurrentReps == 60
	})).Return(goal, nil)
	svc := NewGoalService(staticOwners{owner.Email: owner}, goals, new(MockRepLogRepository), time.UTC)

	updated, err := svc.Update(context.Background(), identityOf(owner), goal.ID.String(), model.GoalPatch{TargetReps: model.Some(50)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	goals.AssertExpectations(t)
}

func TestGoalService_ListRepLogs(t *testing.T) {
	owner := newUser("owner@example.com")
	goal := &model.Goal{ID: uuid.New(), UserID: owner.ID}
	logs := []model.RepLog{{ID: uuid.New(), Count: 40, GoalID: goal.ID}, {ID: uuid.New(), Count: 60, GoalID: goal.ID}}

	goals := new(MockGoalRepository)
	goals.On("FindByID", mock.Anything, goal.ID).Return(goal, nil)
	repLogs := new(MockRepLogRepository)
	repLogs.On("ListByGoal", mock.Anything, goal.ID).Return(logs, nil)

	svc := NewGoalService(staticOwners{owner.Email: owner}, goals, repLogs, time.UTC)
	got, err := svc.ListRepLogs(context.Background(), identityOf(owner), goal.ID.String())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repLogs.AssertExpectations(t)
}

func TestProgressService_Apply(t *testing.T) {
	owner := newUser("owner@example.com")
	other := newUser("other@example.com")
	owners := staticOwners{owner.Email: owner, other.Email: other}
	goal := &model.Goal{ID: uuid.New(), Title: "Pushups", TargetReps: 100, CurrentReps: 60, UserID: owner.ID}

	tests := []struct {
		name        string
		identity    auth.Identity
		input       CreateRepLogInput
		setupMock   func(*MockGoalRepository)
		wantStatus  int
		wantMessage string
	}{
		{
			name:     "completes goal",
			identity: identityOf(owner),
			input:    CreateRepLogInput{GoalID: goal.ID.String(), Count: 40, Notes: strPtr("evening set")},
			setupMock: func(m *MockGoalRepository) {
				m.On("FindByID", mock.Anything, goal.ID).Return(goal, nil)
				m.On("ApplyRepLog", mock.Anything, mock.MatchedBy(func(l *model.RepLog) bool {
					return l.Count == 40 && l.GoalID == goal.ID && l.UserID == owner.ID
				})).Return(&model.Goal{ID: goal.ID, TargetReps: 100, CurrentReps: 100, Completed: true, UserID: owner.ID}, nil)
			},
		},
		{
			name:        "non-positive count",
			identity:    identityOf(owner),
			input:       CreateRepLogInput{GoalID: goal.ID.String(), Count: 0},
			setupMock:   func(m *MockGoalRepository) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Goal ID and a positive rep count are required",
		},
		{
			name:        "count above the per-log cap",
			identity:    identityOf(owner),
			input:       CreateRepLogInput{GoalID: goal.ID.String(), Count: 1_000_001},
			setupMock:   func(m *MockGoalRepository) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Goal ID and a positive rep count are required",
		},
		{
			name:        "count that would overflow the goal total",
			identity:    identityOf(owner),
			input:       CreateRepLogInput{GoalID: goal.ID.String(), Count: math.MaxInt64},
			setupMock:   func(m *MockGoalRepository) {},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Goal ID and a positive rep count are required",
		},
		{
			name:     "foreign goal",
			identity: identityOf(other),
			input:    CreateRepLogInput{GoalID: goal.ID.String(), Count: 5},
			setupMock: func(m *MockGoalRepository) {
				m.On("FindByID", mock.Anything, goal.ID).Return(goal, nil)
			},
			wantStatus:  http.StatusForbidden,
			wantMessage: "Not authorized to access this goal",
		},
		{
			name:     "goal deleted concurrently",
			identity: identityOf(owner),
			input:    CreateRepLogInput{GoalID: goal.ID.String(), Count: 5},
			setupMock: func(m *MockGoalRepository) {
				m.On("FindByID", mock.Anything, goal.ID).Return(goal, nil)
				m.On("ApplyRepLog", mock.Anything, mock.Anything).Return(nil, apperrors.ErrGoalNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Goal not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals := new(MockGoalRepository)
			tt.setupMock(goals)
			svc := NewProgressService(owners, goals)

			log, updated, err := svc.Apply(context.Background(), tt.identity, tt.input)
			if tt.wantStatus != 0 {
				assertHTTP(t, err, tt.wantStatus, tt.wantMessage)
				assert.Nil(t, log)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 40, log.Count)
				assert.Equal(t, "evening set", *log.Notes)
				assert.Equal(t, 100, updated.CurrentReps)
				assert.True(t, updated.Completed)
			}
			goals.AssertExpectations(t)
		})
	}
}
