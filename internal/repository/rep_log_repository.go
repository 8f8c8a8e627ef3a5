package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reppi/internal/model"
)

// RepLogRepository reads rep logs. Writes go through GoalRepository.ApplyRepLog.
type RepLogRepository interface {
	ListByGoal(ctx context.Context, goalID uuid.UUID) ([]model.RepLog, error)
	SumByGoal(ctx context.Context, goalID uuid.UUID) (int64, error)
}

type repLogRepository struct {
	db *gorm.DB
}

// NewRepLogRepository creates a new rep log repository.
func NewRepLogRepository(db *gorm.DB) RepLogRepository {
	return &repLogRepository{db: db}
}

// ListByGoal returns the goal's logs, newest first.
func (r *repLogRepository) ListByGoal(ctx context.Context, goalID uuid.UUID) ([]model.RepLog, error) {
	var logs []model.RepLog
	if err := r.db.WithContext(ctx).Where("goal_id = ?", goalID).
		Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// SumByGoal returns the total reps logged against the goal.
func (r *repLogRepository) SumByGoal(ctx context.Context, goalID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.RepLog{}).
		Where("goal_id = ?", goalID).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	return total, err
}
