package barcodes

import (
	"errors"

	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"github.com/codekeep/codekeep/pkg/codekeep/tags"
	"gorm.io/gorm"
)

// FindDuplicate returns the most recently captured barcode whose raw content
// matches case-insensitively after trimming, or nil if none exists. Read
// only; the caller decides what to do with a match.
func FindDuplicate(db *gorm.DB, rawContent string) (*models.Barcode, error) {
	var barcode models.Barcode
	err := db.Where("LOWER(TRIM(raw_content)) = LOWER(TRIM(?))", rawContent).
		Order("captured_at DESC, id DESC").
		Preload("Tags").
		First(&barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &barcode, nil
}

// SaveWithTags persists a barcode, reconciles the tag names, and links the
// resulting tags. If linking fails after the record is persisted, the record
// stays saved untagged and the link error is returned alongside it.
func SaveWithTags(db *gorm.DB, barcode *models.Barcode, tagNames []string, tagColors map[string]string) error {
	if err := db.Create(barcode).Error; err != nil {
		return err
	}

	if len(tagNames) == 0 {
		return nil
	}

	resolved, err := tags.Reconcile(db, tagNames, tagColors)
	if err != nil {
		return &TagLinkError{BarcodeID: barcode.ID, Err: err}
	}

	for i := range resolved {
		if err := db.Model(barcode).Association("Tags").Append(&resolved[i]); err != nil {
			return &TagLinkError{BarcodeID: barcode.ID, Err: err}
		}
	}

	return nil
}

// TagLinkError reports that a barcode was persisted but its tags could not
// be attached. The record exists untagged; nothing is rolled back.
type TagLinkError struct {
	BarcodeID uint
	Err       error
}

func (e *TagLinkError) Error() string {
	return "barcode saved but tag linking failed: " + e.Err.Error()
}

func (e *TagLinkError) Unwrap() error {
	return e.Err
}

// ToggleTag adds the tag to the barcode's currently loaded tag set if
// absent, or removes it if present. The decision is made against the
// caller's loaded set, not re-derived from the store.
func ToggleTag(db *gorm.DB, barcode *models.Barcode, tag *models.Tag) (added bool, err error) {
	for _, t := range barcode.Tags {
		if t.ID == tag.ID {
			if err := db.Model(barcode).Association("Tags").Delete(tag); err != nil {
				return false, err
			}
			return false, nil
		}
	}
	if err := db.Model(barcode).Association("Tags").Append(tag); err != nil {
		return false, err
	}
	return true, nil
}

// SetFavorite updates the favorite flag without touching any other field.
func SetFavorite(db *gorm.DB, id uint, value bool) error {
	return db.Model(&models.Barcode{}).Where("id = ?", id).
		Update("is_favorite", value).Error
}

// SetLocked updates the locked flag without touching any other field.
func SetLocked(db *gorm.DB, id uint, value bool) error {
	return db.Model(&models.Barcode{}).Where("id = ?", id).
		Update("is_locked", value).Error
}

// Delete removes a barcode and its tag links.
func Delete(db *gorm.DB, barcode *models.Barcode) error {
	if err := db.Model(barcode).Association("Tags").Clear(); err != nil {
		return err
	}
	return db.Delete(barcode).Error
}

// Stats holds aggregate counts over the stored barcodes.
type Stats struct {
	Total     int64 `json:"total"`
	Favorites int64 `json:"favorites"`
	Locked    int64 `json:"locked"`
}

// CountStats returns total, favorite, and locked barcode counts.
func CountStats(db *gorm.DB) (Stats, error) {
	var stats Stats
	if err := db.Model(&models.Barcode{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Barcode{}).Where("is_favorite = ?", true).Count(&stats.Favorites).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Barcode{}).Where("is_locked = ?", true).Count(&stats.Locked).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
