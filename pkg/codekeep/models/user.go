package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents the owner of this personal instance. Registration is
// closed once a user exists.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	Name         string         `gorm:"not null" json:"name"`

	// Relationships
	APIKeys []APIKey `gorm:"foreignKey:UserID" json:"api_keys,omitempty"`
}
