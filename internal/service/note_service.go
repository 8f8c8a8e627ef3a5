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

// CreateNoteInput is the note creation payload.
type CreateNoteInput struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	CategoryID string `json:"categoryId" validate:"required"`
}

// NoteService manages notes.
type NoteService interface {
	List(ctx context.Context, identity auth.Identity, categoryID string) ([]model.Note, error)
	Create(ctx context.Context, identity auth.Identity, in CreateNoteInput) (*model.Note, error)
	Update(ctx context.Context, identity auth.Identity, noteID string, patch model.NotePatch) (*model.Note, error)
	Delete(ctx context.Context, identity auth.Identity, noteID string) error
}

type noteService struct {
	owners OwnerResolver
	notes  repository.NoteRepository
	guard  categoryGuard
}

// NewNoteService creates a new note service.
func NewNoteService(owners OwnerResolver, notes repository.NoteRepository, categories repository.CategoryRepository) NoteService {
	return &noteService{owners: owners, notes: notes, guard: categoryGuard{categories: categories}}
}

// List returns the caller's notes, optionally restricted to one category.
func (s *noteService) List(ctx context.Context, identity auth.Identity, categoryID string) ([]model.Note, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}

	var filter repository.NoteFilter
	if categoryID = strings.TrimSpace(categoryID); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			return []model.Note{}, nil
		}
		filter.CategoryID = &id
	}

	notes, err := s.notes.List(ctx, user.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) Create(ctx context.Context, identity auth.Identity, in CreateNoteInput) (*model.Note, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if err := validateInput(in, "Title, content, and category are required", nil); err != nil {
		return nil, err
	}
	category, err := s.guard.checkRaw(ctx, user.ID, in.CategoryID, model.CategoryTypeNote)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		Title:      in.Title,
		Content:    in.Content,
		CategoryID: category.ID,
		UserID:     user.ID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// owned resolves the caller and loads a note they own.
func (s *noteService) owned(ctx context.Context, identity auth.Identity, noteID, forbidden string) (*model.User, *model.Note, error) {
	user, err := s.owners.ResolveOwner(ctx, identity)
	if err != nil {
		return nil, nil, err
	}
	id, err := parseID(noteID, apperrors.ErrNoteNotFound)
	if err != nil {
		return nil, nil, err
	}
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := authorize(user.ID, note.UserID, forbidden); err != nil {
		return nil, nil, err
	}
	return user, note, nil
}

func (s *noteService) Update(ctx context.Context, identity auth.Identity, noteID string, patch model.NotePatch) (*model.Note, error) {
	user, note, err := s.owned(ctx, identity, noteID, "Not authorized to modify this note")
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(note); err != nil {
		return nil, err
	}
	if categoryID, moving, _ := patch.CategoryRef(); moving {
		if _, err := s.guard.check(ctx, user.ID, categoryID, model.CategoryTypeNote); err != nil {
			return nil, err
		}
	}

	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, identity auth.Identity, noteID string) error {
	_, note, err := s.owned(ctx, identity, noteID, "Not authorized to delete this note")
	if err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}
