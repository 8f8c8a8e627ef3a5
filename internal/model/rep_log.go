package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RepLog is an append-only progress event against a goal.
type RepLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Count     int       `json:"count" gorm:"not null"`
	Notes     *string   `json:"notes" gorm:"type:text"`
	GoalID    uuid.UUID `json:"goalId" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (l *RepLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
