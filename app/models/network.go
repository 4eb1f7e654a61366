package models

import "time"

type Network struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"size:1024"`
	Type        string `gorm:"size:64"`
	OwnerID     string `gorm:"size:36;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Node struct {
	ID        string `gorm:"primaryKey;size:36"`
	NetworkID string `gorm:"size:36;index;not null"`
	Type      string `gorm:"size:64;not null"`
	Name      string `gorm:"size:255"`
	IP        string `gorm:"size:64"`
	X         float64
	Y         float64
	// Properties holds a JSON object as text; empty means no properties.
	Properties string `gorm:"type:text"`
}

type Connection struct {
	ID         string `gorm:"primaryKey;size:36"`
	NetworkID  string `gorm:"size:36;index;not null"`
	FromNodeID string `gorm:"size:36;not null"`
	ToNodeID   string `gorm:"size:36;not null"`
	Type       string `gorm:"size:64;not null;default:ethernet"`
	Properties string `gorm:"type:text"`
}
