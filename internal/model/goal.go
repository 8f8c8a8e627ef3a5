package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal tracks progress towards a target number of reps.
// Completed always equals CurrentReps >= TargetReps.
type Goal struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description *string    `json:"description" gorm:"type:text"`
	TargetReps  int        `json:"targetReps" gorm:"not null"`
	CurrentReps int        `json:"currentReps" gorm:"not null;default:0"`
	StartDate   time.Time  `json:"startDate" gorm:"not null"`
	EndDate     *time.Time `json:"endDate"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Progress returns the completed share of the goal, capped at 1.
func (g *Goal) Progress() float64 {
	if g.TargetReps <= 0 {
		return 0
	}
	p := float64(g.CurrentReps) / float64(g.TargetReps)
	if p > 1 {
		return 1
	}
	return p
}
