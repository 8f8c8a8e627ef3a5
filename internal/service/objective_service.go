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

// CreateObjectiveInput is the objective creation payload.
type CreateObjectiveInput struct {
	Title      string  `json:"title" validate:"required"`
	CategoryID string  `json:"categoryId" validate:"required"`
	Date       *string `json:"date"`
}

// ObjectiveService manages objectives.
type ObjectiveService interface {
	List(ctx context.Context, identity auth.Identity, day string) ([]model.Objective, error)
	Create(ctx context.Context, identity auth.Identity, in CreateObjectiveInput) (*model.Objective, error)
	Update(ctx context.Context, identity auth.Identity, objectiveID string, patch model.ObjectivePatch) (*model.Objective, error)
	Delete(ctx context.Context, identity auth.Identity, objectiveID string) error
}

type objectiveService struct {
	owners     OwnerResolver
	objectives repository.ObjectiveRepository
	guard      categoryGuard
	loc        *time.Location
	clock      Clock
}

// NewObjectiveService creates a new objective service. Calendar days are interpreted in loc.
func NewObjectiveService(owners OwnerResolver, objectives repository.ObjectiveRepository, categories repository.CategoryRepository, loc *time.Location) ObjectiveService {
	return &objectiveService{
		owners:     owners,
		objectives: objectives,
		guard:      categoryGuard{categories: categories},
		loc:        loc,
	}
}

// List returns the caller's objectives. A non-empty day (YYYY-MM-DD) limits
// the result to objectives dated within that calendar day.
func (s *objectiveService) List(ctx context.Context, identity auth.Identity, day string) ([]model.Objective, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}

	var filter repository.ObjectiveFilter
	if day = strings.TrimSpace(day); day != "" {
		from, to, err := model.DayBounds(day, s.loc)
		if err != nil {
			return nil, apperrors.Validation("Invalid date")
		}
		filter.From, filter.To = &from, &to
	}

	objectives, err := s.objectives.List(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list objectives: %w", err)
	}
	return objectives, nil
}

func (s *objectiveService) Create(ctx context.Context, identity auth.Identity, in CreateObjectiveInput) (*model.Objective, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(in, "Title and category are required", nil); err != nil {
		return nil, err
	}

	date := s.clock.now()
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		date, err = model.ParseDate(*in.Date, s.loc)
		if err != nil {
			return nil, apperrors.Validation("Invalid date")
		}
	}

	category, err := s.guard.checkRaw(ctx, user.ID, in.CategoryID, model.CategoryTypeObjective)
	if err != nil {
		return nil, err
	}

	objective := &model.Objective{
		Title:      in.Title,
		Completed:  false,
		Date:       date,
		CategoryID: category.ID,
		UserID:     user.ID,
	}
	if err := s.objectives.Create(ctx, objective); err != nil {
		return nil, fmt.Errorf("create objective: %w", err)
	}
	return objective, nil
}

// owned resolves the caller and loads an objective they own.
func (s *objectiveService) owned(ctx context.Context, identity auth.Identity, objectiveID, forbidden string) (*model.User, *model.Objective, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, nil, err
	}
	id, err := parseID(objectiveID, apperrors.ErrObjectiveNotFound)
	if err != nil {
		return nil, nil, err
	}
	objective, err := s.objectives.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := authorize(user.ID, objective.UserID, forbidden); err != nil {
		return nil, nil, err
	}
	return user, objective, nil
}

func (s *objectiveService) Update(ctx context.Context, identity auth.Identity, objectiveID string, patch model.ObjectivePatch) (*model.Objective, error) {
	user, objective, err := s.owned(ctx, identity, objectiveID, "Not authorized to modify this objective")
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(objective, s.loc); err != nil {
		return nil, err
	}
	if categoryID, moving, _ := patch.CategoryRef(); moving {
		if _, err := s.guard.check(ctx, user.ID, categoryID, model.CategoryTypeObjective); err != nil {
			return nil, err
		}
	}

	if err := s.objectives.Update(ctx, objective); err != nil {
		return nil, fmt.Errorf("update objective: %w", err)
	}
	return objective, nil
}

func (s *objectiveService) Delete(ctx context.Context, identity auth.Identity, objectiveID string) error {
	_, objective, err := s.owned(ctx, identity, objectiveID, "Not authorized to delete this objective")
	if err != nil {
		return err
	}
	if err := s.objectives.Delete(ctx, objective.ID); err != nil {
		return fmt.Errorf("delete objective: %w", err)
	}
	return nil
}
