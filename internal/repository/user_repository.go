package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "reppi/internal/errors"
	"reppi/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	CreateWithCategories(ctx context.Context, user *model.User, categories []model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDupKey(err) {
			return apperrors.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// CreateWithCategories inserts the user and its starter categories in one transaction.
func (r *userRepository) CreateWithCategories(ctx context.Context, user *model.User, categories []model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isDupKey(err) {
				return apperrors.ErrUserAlreadyExists
			}
			return fmt.Errorf("create user: %w", err)
		}
		if len(categories) == 0 {
			return nil
		}
		for i := range categories {
			categories[i].UserID = user.ID
		}
		if err := tx.Omit(clause.Associations).Create(&categories).Error; err != nil {
			return fmt.Errorf("create default categories: %w", err)
		}
		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}
