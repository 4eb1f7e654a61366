package models

import "time"

// AccessGrant shares a network beyond its owner. A public grant carries no
// user id; a private grant with a user id targets that user; a private grant
// without a user id is the owner-only marker written at network creation.
type AccessGrant struct {
	ID         string  `gorm:"primaryKey;size:36"`
	NetworkID  string  `gorm:"size:36;index;not null"`
	AccessType string  `gorm:"size:16;not null"`
	UserID     *string `gorm:"size:36;index"`
	CreatedAt  time.Time
}
