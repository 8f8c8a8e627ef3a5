package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"reppi/internal/auth"
	apperrors "reppi/internal/errors"
	"reppi/internal/model"
	"reppi/internal/repository"
)

// CreateCategoryInput is the category creation payload.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
}

// CategoryService manages categories.
type CategoryService interface {
	List(ctx context.Context, identity auth.Identity, typ string) ([]model.Category, error)
	Create(ctx context.Context, identity auth.Identity, in CreateCategoryInput) (*model.Category, bool, error)
}

type categoryService struct {
	owners     OwnerResolver
	categories repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(owners OwnerResolver, categories repository.CategoryRepository) CategoryService {
	return &categoryService{owners: owners, categories: categories}
}

// List returns the caller's categories, optionally restricted to one type.
func (s *categoryService) List(ctx context.Context, identity auth.Identity, typ string) ([]model.Category, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx, user.ID, model.CategoryType(strings.TrimSpace(typ)))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Create returns the existing category with the same name and type, or
// creates it. The bool result reports whether a new category was created.
func (s *categoryService) Create(ctx context.Context, identity auth.Identity, in CreateCategoryInput) (*model.Category, bool, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, false, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in, "Name and type are required", nil); err != nil {
		return nil, false, err
	}
	typ := model.CategoryType(in.Type)
	if !typ.Valid() {
		return nil, false, apperrors.Validation("Type must be objective or note")
	}

	category, created, err := s.categories.GetOrCreate(ctx, &model.Category{
		Name:   in.Name,
		Type:   typ,
		UserID: user.ID,
	})
	if err != nil {
		return nil, false, fmt.Errorf("get or create category: %w", err)
	}
	return category, created, nil
}

// categoryGuard checks that a referenced category exists, belongs to the
// user and has the expected type.
type categoryGuard struct {
	categories repository.CategoryRepository
}

func (g categoryGuard) check(ctx context.Context, userID, categoryID uuid.UUID, typ model.CategoryType) (*model.Category, error) {
	category, err := g.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := authorize(userID, category.UserID, "Not authorized to use this category"); err != nil {
		return nil, err
	}
	if category.Type != typ {
		return nil, apperrors.Validation("Category type does not match")
	}
	return category, nil
}

func (g categoryGuard) checkRaw(ctx context.Context, userID uuid.UUID, raw string, typ model.CategoryType) (*model.Category, error) {
	id, err := parseID(raw, apperrors.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}
	return g.check(ctx, userID, id, typ)
}
