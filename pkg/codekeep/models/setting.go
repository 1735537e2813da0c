package models

import "time"

// Setting is a single key/value preference row. Booleans are stored as
// "true"/"false" strings; the settings package owns typed access.
type Setting struct {
	Key       string    `gorm:"primarykey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
