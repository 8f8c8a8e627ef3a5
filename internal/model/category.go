package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryType separates objective categories from note categories.
type CategoryType string

const (
	CategoryTypeObjective CategoryType = "objective"
	CategoryTypeNote      CategoryType = "note"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeObjective || t == CategoryTypeNote
}

// DefaultCategories are created for every new user.
var DefaultCategories = map[CategoryType][]string{
	CategoryTypeObjective: {"Fitness", "Work", "Learning", "Personal"},
	CategoryTypeNote:      {"Wisdom", "Meals", "Books", "Energy"},
}

// Category groups objectives or notes for a single user.
// (user_id, type, name) is unique.
type Category struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string       `json:"name" gorm:"size:191;not null;uniqueIndex:idx_category_owner_type_name,priority:3"`
	Type      CategoryType `json:"type" gorm:"type:varchar(20);not null;uniqueIndex:idx_category_owner_type_name,priority:2"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_category_owner_type_name,priority:1"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
