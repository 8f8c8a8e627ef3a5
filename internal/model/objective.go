package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Objective is a task scheduled for a calendar day.
type Objective struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Completed  bool      `json:"completed" gorm:"not null;default:false"`
	Date       time.Time `json:"date" gorm:"not null;index"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:char(36);not null;index"`
	UserID     uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Objective) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
