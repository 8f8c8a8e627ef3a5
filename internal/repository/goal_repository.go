package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "reppi/internal/errors"
	"reppi/internal/model"
)

// completedExpr re-derives goals.completed from the stored counters.
var completedExpr = gorm.Expr("current_reps >= target_reps")

// GoalRepository defines goal persistence operations.
type GoalRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Goal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Goal, error)
	Create(ctx context.Context, goal *model.Goal) error
	Update(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ApplyRepLog(ctx context.Context, log *model.RepLog) (*model.Goal, error)
	Reconcile(ctx context.Context) (int64, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

// List returns the user's goals, newest first.
func (r *goalRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Goal, error) {
	return findGoal(ctx, r.db, id)
}

func findGoal(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Goal, error) {
	var goal model.Goal
	if err := db.WithContext(ctx).Where("id = ?", id).First(&goal).Error; err != nil {
		return nil, notFound(err, apperrors.ErrGoalNotFound)
	}
	return &goal, nil
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// Update writes only the user-editable columns so that a concurrent progress
// increment is never overwritten, then re-derives completed in SQL.
func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	var updated *model.Goal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Goal{}).Where("id = ?", goal.ID).
			Select("title", "description", "target_reps", "end_date").
			Updates(map[string]interface{}{
				"title":       goal.Title,
				"description": goal.Description,
				"target_reps": goal.TargetReps,
				"end_date":    goal.EndDate,
			})
		if res.Error != nil {
			return fmt.Errorf("update goal: %w", res.Error)
		}
		if err := tx.Model(&model.Goal{}).Where("id = ?", goal.ID).
			Update("completed", completedExpr).Error; err != nil {
			return fmt.Errorf("derive completion: %w", err)
		}
		var err error
		updated, err = findGoal(ctx, tx, goal.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the goal together with its rep logs.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&model.RepLog{}).Error; err != nil {
			return fmt.Errorf("delete rep logs: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&model.Goal{})
		if res.Error != nil {
			return fmt.Errorf("delete goal: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrGoalNotFound
		}
		return nil
	})
}

// ApplyRepLog records the log and advances its goal in a single transaction.
// The counter is incremented in SQL, so concurrent logs for the same goal
// never overwrite each other.
func (r *goalRepository) ApplyRepLog(ctx context.Context, log *model.RepLog) (*model.Goal, error) {
	var goal *model.Goal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return fmt.Errorf("create rep log: %w", err)
		}
		res := tx.Model(&model.Goal{}).Where("id = ?", log.GoalID).
			Update("current_reps", gorm.Expr("current_reps + ?", log.Count))
		if res.Error != nil {
			return fmt.Errorf("increment goal: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrGoalNotFound
		}
		// Separate statement: MySQL evaluates SET assignments left to right.
		if err := tx.Model(&model.Goal{}).Where("id = ?", log.GoalID).
			Update("completed", completedExpr).Error; err != nil {
			return fmt.Errorf("derive completion: %w", err)
		}
		var err error
		goal, err = findGoal(ctx, tx, log.GoalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// Reconcile resets every goal's counter to the sum of its rep logs and
// re-derives completion. It returns the number of goals whose counter changed.
func (r *goalRepository) Reconcile(ctx context.Context) (int64, error) {
	const sumLogs = "(SELECT COALESCE(SUM(rep_logs.count), 0) FROM rep_logs WHERE rep_logs.goal_id = goals.id)"

	var fixed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("UPDATE goals SET current_reps = " + sumLogs + " WHERE current_reps <> " + sumLogs)
		if res.Error != nil {
			return fmt.Errorf("reconcile counters: %w", res.Error)
		}
		fixed = res.RowsAffected
		if err := tx.Exec("UPDATE goals SET completed = (current_reps >= target_reps) WHERE completed <> (current_reps >= target_reps)").Error; err != nil {
			return fmt.Errorf("reconcile completion: %w", err)
		}
		return nil
	})
	return fixed, err
}
