package models

import "time"

// EditorConfig stores per-user editor preferences (palette types etc.) as a
// JSON blob.
type EditorConfig struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:36;uniqueIndex;not null"`
	Config    string `gorm:"type:text"`
	UpdatedAt time.Time
}
