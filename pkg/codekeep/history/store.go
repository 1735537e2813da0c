package history

import (
	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"gorm.io/gorm"
)

// Search runs an EffectiveQuery against the barcode history.
//
// The text filter is a case-insensitive substring match over title,
// description, and raw content. Hide-tagged exclusion applies only while
// browsing with no tag selected and no query active; once either is in
// play, tagged matches are kept. Results carry their tag sets and come
// back newest capture first, id ascending on ties.
func Search(db *gorm.DB, q EffectiveQuery) ([]models.Barcode, error) {
	query := db.Model(&models.Barcode{})

	if q.TagID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM barcode_tags WHERE barcode_tags.barcode_id = barcodes.id AND barcode_tags.tag_id = ?)",
			*q.TagID)
	}

	if q.Query != nil {
		pattern := "%" + *q.Query + "%"
		query = query.Where(
			"(title LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE OR raw_content LIKE ? COLLATE NOCASE)",
			pattern, pattern, pattern)
	}

	if q.HideTagged && q.TagID == nil && q.Query == nil {
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM barcode_tags WHERE barcode_tags.barcode_id = barcodes.id)")
	}

	if q.OnlyFavorites {
		query = query.Where("is_favorite = ?", true)
	}

	var barcodes []models.Barcode
	err := query.Preload("Tags").
		Order("captured_at DESC, id ASC").
		Find(&barcodes).Error
	if err != nil {
		return nil, err
	}

	return barcodes, nil
}
