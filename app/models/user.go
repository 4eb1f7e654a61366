package models

import "time"

type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null;default:user"`
	Email        string `gorm:"size:255"`
	CreatedAt    time.Time
	LastLogin    *time.Time
}
