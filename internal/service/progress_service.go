package service

import (
	"context"
	"fmt"

	"reppi/internal/auth"
	"reppi/internal/metrics"
	"reppi/internal/model"
	"reppi/internal/repository"
)

// CreateRepLogInput is the rep log payload. A single log is capped at a
// million reps so a goal's running total stays far from integer overflow.
type CreateRepLogInput struct {
	GoalID string  `json:"goalId" validate:"required"`
	Count  int     `json:"count" validate:"gt=0,lte=1000000"`
	Notes  *string `json:"notes"`
}

// ProgressService records rep logs and advances their goals.
type ProgressService interface {
	Apply(ctx context.Context, identity auth.Identity, in CreateRepLogInput) (*model.RepLog, *model.Goal, error)
}

type progressService struct {
	owners OwnerResolver
	goals  repository.GoalRepository
}

// NewProgressService creates a new progress service.
func NewProgressService(owners OwnerResolver, goals repository.GoalRepository) ProgressService {
	return &progressService{owners: owners, goals: goals}
}

// Apply creates the rep log and returns it together with the updated goal.
func (s *progressService) Apply(ctx context.Context, identity auth.Identity, in CreateRepLogInput) (*model.RepLog, *model.Goal, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, nil, err
	}
	if err := validateInput(in, "Goal ID and a positive rep count are required", nil); err != nil {
		return nil, nil, err
	}

	goal, err := loadOwnedGoal(ctx, s.goals, user, in.GoalID)
	if err != nil {
		return nil, nil, err
	}

	log := &model.RepLog{
		Count:  in.Count,
		Notes:  in.Notes,
		GoalID: goal.ID,
		UserID: user.ID,
	}
	updated, err := s.goals.ApplyRepLog(ctx, log)
	if err != nil {
		return nil, nil, fmt.Errorf("apply rep log: %w", err)
	}

	metrics.RepLogs.Inc()
	metrics.Reps.Add(float64(in.Count))
	if updated.Completed && !goal.Completed {
		metrics.GoalsCompleted.Inc()
	}
	return log, updated, nil
}
