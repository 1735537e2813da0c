package tags

import (
	"strings"

	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"gorm.io/gorm"
)

// Reconcile maps desired tag names to existing-or-newly-created tags.
// Names are trimmed; empty names are skipped. Matching against the current
// tag set is case-insensitive, so "work" resolves to an existing "Work"
// unchanged. Misses are created with the suggested color for that normalized
// name, or the default color. The result preserves input order.
//
// The tag set is fetched once per call; the NOCASE unique index on tag names
// is the real guard against concurrent duplicate creation, this check only
// avoids the common case.
func Reconcile(db *gorm.DB, names []string, suggestedColors map[string]string) ([]models.Tag, error) {
	var existing []models.Tag
	if err := db.Find(&existing).Error; err != nil {
		return nil, err
	}

	result := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if found, ok := findByName(existing, name); ok {
			result = append(result, found)
			continue
		}

		color := suggestedColors[name]
		if !IsValidHexColor(color) {
			color = models.DefaultTagColor
		}
		tag := models.Tag{Name: name, Color: color}
		if err := db.Create(&tag).Error; err != nil {
			return nil, err
		}
		// Keep the working set current so a later case-variant of this
		// name resolves here instead of violating the unique index.
		existing = append(existing, tag)
		result = append(result, tag)
	}

	return result, nil
}

// normalizeName trims surrounding whitespace; tag names have no other
// canonical form (case is preserved as entered).
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

func findByName(tags []models.Tag, name string) (models.Tag, bool) {
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return models.Tag{}, false
}
