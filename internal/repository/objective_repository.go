package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "reppi/internal/errors"
	"reppi/internal/model"
)

// ObjectiveFilter narrows an objective listing to dates within [From, To].
type ObjectiveFilter struct {
	From *time.Time
	To   *time.Time
}

// ObjectiveRepository defines objective persistence operations.
type ObjectiveRepository interface {
	List(ctx context.Context, userID uuid.UUID, filter ObjectiveFilter) ([]model.Objective, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Objective, error)
	Create(ctx context.Context, objective *model.Objective) error
	Update(ctx context.Context, objective *model.Objective) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type objectiveRepository struct {
	db *gorm.DB
}

// NewObjectiveRepository creates a new objective repository.
func NewObjectiveRepository(db *gorm.DB) ObjectiveRepository {
	return &objectiveRepository{db: db}
}

// List returns the user's objectives with their category, oldest first.
func (r *objectiveRepository) List(ctx context.Context, userID uuid.UUID, filter ObjectiveFilter) ([]model.Objective, error) {
	q := r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID)
	if filter.From != nil {
		q = q.Where("date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("date <= ?", filter.To.UTC())
	}
	var objectives []model.Objective
	if err := q.Order("created_at ASC").Find(&objectives).Error; err != nil {
		return nil, err
	}
	return objectives, nil
}

// FindByID loads an objective with its category.
func (r *objectiveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Objective, error) {
	var objective model.Objective
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&objective).Error; err != nil {
		return nil, notFound(err, apperrors.ErrObjectiveNotFound)
	}
	return &objective, nil
}

// Create inserts the objective and loads its category.
func (r *objectiveRepository) Create(ctx context.Context, objective *model.Objective) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(objective).Error; err != nil {
		return err
	}
	return r.loadCategory(db, objective)
}

// Update writes the editable columns and reloads the category.
func (r *objectiveRepository) Update(ctx context.Context, objective *model.Objective) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(objective).Omit(clause.Associations).
		Select("title", "completed", "date", "category_id").
		Updates(map[string]interface{}{
			"title":       objective.Title,
			"completed":   objective.Completed,
			"date":        objective.Date.UTC(),
			"category_id": objective.CategoryID,
		}).Error; err != nil {
		return err
	}
	return r.loadCategory(db, objective)
}

func (r *objectiveRepository) loadCategory(db *gorm.DB, objective *model.Objective) error {
	var category model.Category
	if err := db.Where("id = ?", objective.CategoryID).First(&category).Error; err != nil {
		return fmt.Errorf("load objective category: %w", notFound(err, apperrors.ErrCategoryNotFound))
	}
	objective.Category = &category
	return nil
}

func (r *objectiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Objective{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrObjectiveNotFound
	}
	return nil
}
