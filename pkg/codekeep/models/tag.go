package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultTagColor is used for tags created without an explicit color
// (Material Blue 500).
const DefaultTagColor = "#2196F3"

// Tag represents a tag that can be applied to barcodes. The NOCASE collation
// on the name makes the unique index case-insensitive, which is the
// authoritative guard for the tag-namespace invariant; in-process checks are
// only an optimization.
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"type:TEXT COLLATE NOCASE;uniqueIndex;not null" json:"name"`
	Color     string         `gorm:"not null;default:'#2196F3'" json:"color"`

	// Relationships
	Barcodes []Barcode `gorm:"many2many:barcode_tags;" json:"barcodes,omitempty"`
}
