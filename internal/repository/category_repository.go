package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "reppi/internal/errors"
	"reppi/internal/model"
)

// CategoryRepository manages per-user categories.
type CategoryRepository interface {
	List(ctx context.Context, userID uuid.UUID, typ model.CategoryType) ([]model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetOrCreate(ctx context.Context, category *model.Category) (*model.Category, bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns the user's categories ordered by name, optionally filtered by type.
func (r *categoryRepository) List(ctx context.Context, userID uuid.UUID, typ model.CategoryType) ([]model.Category, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	var categories []model.Category
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, notFound(err, apperrors.ErrCategoryNotFound)
	}
	return &category, nil
}

// GetOrCreate returns the category matching (user, type, name), creating it when absent.
// The bool result reports whether a row was inserted. A concurrent insert that wins the
// unique index is returned as the existing row.
func (r *categoryRepository) GetOrCreate(ctx context.Context, category *model.Category) (*model.Category, bool, error) {
	existing, err := r.findByKey(ctx, category)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, fmt.Errorf("find category: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if !isDupKey(err) {
			return nil, false, fmt.Errorf("create category: %w", err)
		}
		existing, err := r.findByKey(ctx, category)
		if err != nil {
			return nil, false, fmt.Errorf("find category after conflict: %w", err)
		}
		return existing, false, nil
	}
	return category, true, nil
}

func (r *categoryRepository) findByKey(ctx context.Context, category *model.Category) (*model.Category, error) {
	var existing model.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND name = ?", category.UserID, category.Type, category.Name).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
