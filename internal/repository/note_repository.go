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

// NoteFilter narrows a note listing.
type NoteFilter struct {
	CategoryID *uuid.UUID
}

// NoteRepository defines note persistence operations.
type NoteRepository interface {
	List(ctx context.Context, userID uuid.UUID, filter NoteFilter) ([]model.Note, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Note, error)
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// List returns the user's notes with their category, newest first.
func (r *noteRepository) List(ctx context.Context, userID uuid.UUID, filter NoteFilter) ([]model.Note, error) {
	q := r.db.WithContext(ctx).Preload("Category").Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	var notes []model.Note
	if err := q.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// FindByID loads a note with its category.
func (r *noteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&note).Error; err != nil {
		return nil, notFound(err, apperrors.ErrNoteNotFound)
	}
	return &note, nil
}

// Create inserts the note and loads its category.
func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(note).Error; err != nil {
		return err
	}
	return r.loadCategory(db, note)
}

// Update writes the editable columns and reloads the category.
func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(note).Omit(clause.Associations).
		Select("title", "content", "category_id").
		Updates(map[string]interface{}{
			"title":       note.Title,
			"content":     note.Content,
			"category_id": note.CategoryID,
		}).Error; err != nil {
		return err
	}
	return r.loadCategory(db, note)
}

func (r *noteRepository) loadCategory(db *gorm.DB, note *model.Note) error {
	var category model.Category
	if err := db.Where("id = ?", note.CategoryID).First(&category).Error; err != nil {
		return fmt.Errorf("load note category: %w", notFound(err, apperrors.ErrCategoryNotFound))
	}
	note.Category = &category
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}
