package importexport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codekeep/codekeep/pkg/codekeep/barcodes"
	"github.com/codekeep/codekeep/pkg/codekeep/content"
	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"github.com/codekeep/codekeep/pkg/codekeep/tags"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles import/export requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ExportTag represents a tag in the export format
type ExportTag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ExportBarcode represents a barcode in the export format
type ExportBarcode struct {
	CapturedAt    string      `json:"captured_at"`
	ValueType     string      `json:"value_type"`
	Symbology     string      `json:"symbology"`
	Title         string      `json:"title,omitempty"`
	Description   string      `json:"description,omitempty"`
	RawContent    string      `json:"raw_content"`
	AiDescription string      `json:"ai_description,omitempty"`
	IsFavorite    bool        `json:"is_favorite"`
	IsLocked      bool        `json:"is_locked"`
	Tags          []ExportTag `json:"tags,omitempty"`
}

// ImportRequest represents an import request
type ImportRequest struct {
	Barcodes []ExportBarcode `json:"barcodes" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Export exports all barcodes with their tags
func (h *Handler) Export(c *gin.Context) {
	var stored []models.Barcode
	if err := h.db.Preload("Tags").Order("captured_at DESC, id ASC").Find(&stored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch barcodes"})
		return
	}

	exported := make([]ExportBarcode, len(stored))
	for i, barcode := range stored {
		exportTags := make([]ExportTag, len(barcode.Tags))
		for j, tag := range barcode.Tags {
			exportTags[j] = ExportTag{Name: tag.Name, Color: tag.Color}
		}

		exported[i] = ExportBarcode{
			CapturedAt:    barcode.CapturedAt.Format(time.RFC3339),
			ValueType:     string(barcode.ValueType),
			Symbology:     string(barcode.Symbology),
			Title:         barcode.Title,
			Description:   barcode.Description,
			RawContent:    barcode.RawContent,
			AiDescription: barcode.AiDescription,
			IsFavorite:    barcode.IsFavorite,
			IsLocked:      barcode.IsLocked,
			Tags:          exportTags,
		}
	}

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename=codekeep-export.json")
	}

	c.JSON(http.StatusOK, exported)
}

// Import imports barcodes, skipping duplicates and reconciling tags
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{Errors: []string{}}

	for i, entry := range req.Barcodes {
		if entry.RawContent == "" {
			result.Errors = append(result.Errors, "barcode "+strconv.Itoa(i)+": raw_content is required")
			result.Skipped++
			continue
		}

		existing, err := barcodes.FindDuplicate(h.db, entry.RawContent)
		if err != nil {
			result.Errors = append(result.Errors, "barcode "+strconv.Itoa(i)+": "+err.Error())
			result.Skipped++
			continue
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		capturedAt := time.Now().UTC()
		if entry.CapturedAt != "" {
			parsed, err := time.Parse(time.RFC3339, entry.CapturedAt)
			if err != nil {
				result.Errors = append(result.Errors, "barcode "+strconv.Itoa(i)+": invalid captured_at format")
				result.Skipped++
				continue
			}
			capturedAt = parsed
		}

		barcode := models.Barcode{
			CapturedAt:    capturedAt,
			ValueType:     content.ParseValueType(entry.ValueType),
			Symbology:     content.ParseSymbology(entry.Symbology),
			Title:         entry.Title,
			Description:   entry.Description,
			RawContent:    entry.RawContent,
			AiDescription: entry.AiDescription,
		}

		if err := h.db.Create(&barcode).Error; err != nil {
			result.Errors = append(result.Errors, "barcode "+strconv.Itoa(i)+": "+err.Error())
			result.Skipped++
			continue
		}

		// Flags are set explicitly so GORM's false defaults don't mask
		// imported true values
		h.db.Model(&barcode).Updates(map[string]interface{}{
			"is_favorite": entry.IsFavorite,
			"is_locked":   entry.IsLocked,
		})

		if len(entry.Tags) > 0 {
			names := make([]string, len(entry.Tags))
			colors := make(map[string]string, len(entry.Tags))
			for j, tag := range entry.Tags {
				names[j] = tag.Name
				if tag.Color != "" {
					colors[tag.Name] = tag.Color
				}
			}

			resolved, err := tags.Reconcile(h.db, names, colors)
			if err == nil {
				for k := range resolved {
					h.db.Model(&barcode).Association("Tags").Append(&resolved[k])
				}
			}
		}

		result.Imported++
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import", h.Import)
	rg.GET("/export", h.Export)
}
