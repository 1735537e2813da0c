package models

import (
	"time"

	"github.com/codekeep/codekeep/pkg/codekeep/content"
	"gorm.io/gorm"
)

// Barcode represents a captured and saved barcode/QR code
type Barcode struct {
	ID            uint              `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
	CapturedAt    time.Time         `gorm:"not null;index" json:"captured_at"`
	ValueType     content.ValueType `gorm:"type:varchar(20);not null" json:"value_type"`
	Symbology     content.Symbology `gorm:"type:varchar(20);not null" json:"symbology"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	RawContent    string            `gorm:"not null" json:"raw_content"`
	AiDescription string            `json:"ai_description"`
	IsFavorite    bool              `gorm:"default:false" json:"is_favorite"`
	IsLocked      bool              `gorm:"default:false" json:"is_locked"`

	// Relationships
	Tags []Tag `gorm:"many2many:barcode_tags;" json:"tags,omitempty"`
}
