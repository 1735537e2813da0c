package settings

import (
	"errors"

	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"gorm.io/gorm"
)

// Setting keys. Values are stored as strings; booleans are "true"/"false".
const (
	KeyHideTaggedWhenNoTagSelected = "hide_tagged_when_no_tag_selected"
	KeySearchAcrossAllTags         = "search_across_all_tags_when_filtering"
	KeyAiGenerationEnabled         = "ai_generation_enabled"
	KeyAiTagSuggestionsEnabled     = "ai_tag_suggestions_enabled"
	KeyAiDescriptionsEnabled       = "ai_descriptions_enabled"
	KeyAiHumorousDescriptions      = "ai_humorous_descriptions"
	KeyAiLanguage                  = "ai_language"
	KeyDuplicateCheckEnabled       = "duplicate_check_enabled"
	KeyShowTagCounters             = "show_tag_counters"
)

// Defaults holds the seed value for every known setting key.
var Defaults = map[string]string{
	KeyHideTaggedWhenNoTagSelected: "false",
	KeySearchAcrossAllTags:         "true",
	KeyAiGenerationEnabled:         "false",
	KeyAiTagSuggestionsEnabled:     "true",
	KeyAiDescriptionsEnabled:       "true",
	KeyAiHumorousDescriptions:      "false",
	KeyAiLanguage:                  "en",
	KeyDuplicateCheckEnabled:       "true",
	KeyShowTagCounters:             "true",
}

// Store provides typed access to the settings table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a settings store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// EnsureDefaults seeds any missing setting keys with their default values.
// Existing values are left untouched.
func (s *Store) EnsureDefaults() error {
	for key, value := range Defaults {
		var existing models.Setting
		err := s.db.Where("key = ?", key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetString returns the stored value for a key, or the key's default if the
// row is missing.
func (s *Store) GetString(key string) (string, error) {
	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Defaults[key], nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// GetBool returns a boolean setting. Anything other than "true" is false.
func (s *Store) GetBool(key string) (bool, error) {
	value, err := s.GetString(key)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// Set stores a value, creating or updating the row as needed.
func (s *Store) Set(key, value string) error {
	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return s.db.Save(&setting).Error
}

// All returns every stored setting as a key → value map, with defaults
// filled in for any missing keys.
func (s *Store) All() (map[string]string, error) {
	result := make(map[string]string, len(Defaults))
	for key, value := range Defaults {
		result[key] = value
	}

	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.Key] = row.Value
	}
	return result, nil
}

// IsKnownKey reports whether a key is one of the recognized setting keys.
func IsKnownKey(key string) bool {
	_, ok := Defaults[key]
	return ok
}
