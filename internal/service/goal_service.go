package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reppi/internal/auth"
	apperrors "reppi/internal/errors"
	"reppi/internal/model"
	"reppi/internal/repository"
)

const goalForbidden = "Not authorized to access this goal"

// CreateGoalInput is the goal creation payload.
type CreateGoalInput struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	TargetReps  int     `json:"targetReps" validate:"gte=1"`
	EndDate     *string `json:"endDate"`
}

// GoalService manages goals.
type GoalService interface {
	List(ctx context.Context, identity auth.Identity) ([]model.Goal, error)
	Get(ctx context.Context, identity auth.Identity, goalID string) (*model.Goal, error)
	Create(ctx context.Context, identity auth.Identity, in CreateGoalInput) (*model.Goal, error)
	Update(ctx context.Context, identity auth.Identity, goalID string, patch model.GoalPatch) (*model.Goal, error)
	Delete(ctx context.Context, identity auth.Identity, goalID string) error
	ListRepLogs(ctx context.Context, identity auth.Identity, goalID string) ([]model.RepLog, error)
}

type goalService struct {
	owners  OwnerResolver
	goals   repository.GoalRepository
	repLogs repository.RepLogRepository
	loc     *time.Location
	clock   Clock
}

// NewGoalService creates a new goal service. Dates without a zone are read in loc.
func NewGoalService(owners OwnerResolver, goals repository.GoalRepository, repLogs repository.RepLogRepository, loc *time.Location) GoalService {
	return &goalService{owners: owners, goals: goals, repLogs: repLogs, loc: loc}
}

func (s *goalService) List(ctx context.Context, identity auth.Identity) ([]model.Goal, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.List(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// owned resolves the caller and loads a goal they own.
func (s *goalService) owned(ctx context.Context, identity auth.Identity, goalID string) (*model.Goal, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}
	return loadOwnedGoal(ctx, s.goals, user, goalID)
}

func loadOwnedGoal(ctx context.Context, goals repository.GoalRepository, user *model.User, goalID string) (*model.Goal, error) {
	id, err := parseID(goalID, apperrors.ErrGoalNotFound)
	if err != nil {
		return nil, err
	}
	goal, err := goals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(user.ID, goal.UserID, goalForbidden); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) Get(ctx context.Context, identity auth.Identity, goalID string) (*model.Goal, error) {
	return s.owned(ctx, identity, goalID)
}

// Create starts a goal at zero progress.
func (s *goalService) Create(ctx context.Context, identity auth.Identity, in CreateGoalInput) (*model.Goal, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in, "Title is required", map[string]string{
		"Title":      "Title is required",
		"TargetReps": "Target reps must be at least 1",
	}); err != nil {
		return nil, err
	}

	goal := &model.Goal{
		Title:       in.Title,
		Description: in.Description,
		TargetReps:  in.TargetReps,
		CurrentReps: 0,
		StartDate:   s.clock.now(),
		Completed:   false,
		UserID:      user.ID,
	}
	if in.EndDate != nil && strings.TrimSpace(*in.EndDate) != "" {
		end, err := model.ParseDate(*in.EndDate, s.loc)
		if err != nil {
			return nil, apperrors.Validation("Invalid end date")
		}
		goal.EndDate = &end
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

func (s *goalService) Update(ctx context.Context, identity auth.Identity, goalID string, patch model.GoalPatch) (*model.Goal, error) {
	goal, err := s.owned(ctx, identity, goalID)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(goal, s.loc); err != nil {
		return nil, err
	}
	updated, err := s.goals.Update(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return updated, nil
}

func (s *goalService) Delete(ctx context.Context, identity auth.Identity, goalID string) error {
	goal, err := s.owned(ctx, identity, goalID)
	if err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, goal.ID); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// ListRepLogs returns the goal's rep logs, newest first.
func (s *goalService) ListRepLogs(ctx context.Context, identity auth.Identity, goalID string) ([]model.RepLog, error) {
	goal, err := s.owned(ctx, identity, goalID)
	if err != nil {
		return nil, err
	}
	logs, err := s.repLogs.ListByGoal(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("list rep logs: %w", err)
	}
	return logs, nil
}
