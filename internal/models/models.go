package models

import (
	"time"
)

// Model is the base model with common fields for all database entities.
// Rows are hard-deleted; referential actions on foreign keys are the only
// automatic lifecycle transitions, so there is no soft-delete column.
type Model struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
