package barcodes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/codekeep/codekeep/pkg/codekeep/content"
	"github.com/codekeep/codekeep/pkg/codekeep/events"
	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles barcode lifecycle requests
type Handler struct {
	db      *gorm.DB
	emitter *events.Emitter
}

// NewHandler creates a new barcodes handler
func NewHandler(db *gorm.DB, emitter *events.Emitter) *Handler {
	return &Handler{db: db, emitter: emitter}
}

// ClassifyRequest represents a capture to interpret without persisting
type ClassifyRequest struct {
	ValueType  string `json:"value_type" binding:"required"`
	RawContent string `json:"raw_content" binding:"required"`
}

// CreateBarcodeRequest represents the request to save a barcode
type CreateBarcodeRequest struct {
	ValueType     string            `json:"value_type" binding:"required"`
	Symbology     string            `json:"symbology" binding:"required"`
	RawContent    string            `json:"raw_content" binding:"required"`
	CapturedAt    *time.Time        `json:"captured_at"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	AiDescription string            `json:"ai_description"`
	TagNames      []string          `json:"tag_names"`
	TagColors     map[string]string `json:"tag_colors"`
}

// UpdateBarcodeRequest represents an edit of a barcode's editable fields
type UpdateBarcodeRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	AiDescription *string `json:"ai_description"`
}

// ToggleRequest carries the target value of a boolean flag
type ToggleRequest struct {
	Value bool `json:"value"`
}

// Classify interprets a payload without saving it
// @Summary Classify a capture
// @Description Parse a decoded payload into its structured form (vCard, WIFI, product lookup)
// @Tags barcodes
// @Accept json
// @Produce json
// @Param request body ClassifyRequest true "Payload and its value type hint"
// @Success 200 {object} content.Classification
// @Security BearerAuth
// @Router /barcodes/classify [post]
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	classification := content.Classify(content.ParseValueType(req.ValueType), req.RawContent)
	c.JSON(http.StatusOK, classification)
}

// CheckDuplicate looks up an existing barcode with the same content
// @Summary Check for a duplicate
// @Description Find the most recent barcode matching this content case-insensitively
// @Tags barcodes
// @Produce json
// @Param content query string true "Raw content to check"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /barcodes/duplicate [get]
func (h *Handler) CheckDuplicate(c *gin.Context) {
	raw := c.Query("content")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content query parameter is required"})
		return
	}

	existing, err := FindDuplicate(h.db, raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for duplicates"})
		return
	}

	if existing == nil {
		c.JSON(http.StatusOK, gin.H{"duplicate": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"duplicate": true, "barcode": existing})
}

// Create saves a barcode with optional tags
// @Summary Save a barcode
// @Description Persist a barcode, reconcile its tag names, and link the tags
// @Tags barcodes
// @Accept json
// @Produce json
// @Param request body CreateBarcodeRequest true "Barcode details"
// @Success 201 {object} models.Barcode
// @Security BearerAuth
// @Router /barcodes [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capturedAt := time.Now().UTC()
	if req.CapturedAt != nil {
		capturedAt = *req.CapturedAt
	}

	barcode := models.Barcode{
		CapturedAt:    capturedAt,
		ValueType:     content.ParseValueType(req.ValueType),
		Symbology:     content.ParseSymbology(req.Symbology),
		Title:         req.Title,
		Description:   req.Description,
		RawContent:    req.RawContent,
		AiDescription: req.AiDescription,
	}

	err := SaveWithTags(h.db, &barcode, req.TagNames, req.TagColors)

	var linkErr *TagLinkError
	if errors.As(err, &linkErr) {
		// The record exists untagged; report the degraded state, not a failure
		h.emitter.Publish(events.TopicBarcodeSaved, barcode.ID)
		c.JSON(http.StatusCreated, gin.H{
			"barcode": barcode,
			"warning": "Saved, but tags could not be attached",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save barcode"})
		return
	}

	h.emitter.Publish(events.TopicBarcodeSaved, barcode.ID)

	var saved models.Barcode
	h.db.Preload("Tags").First(&saved, barcode.ID)
	c.JSON(http.StatusCreated, saved)
}

// Get returns a single barcode with its tags
func (h *Handler) Get(c *gin.Context) {
	barcode, ok := h.loadBarcode(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, barcode)
}

// Update edits a barcode's editable fields. Tag links are untouched.
func (h *Handler) Update(c *gin.Context) {
	barcode, ok := h.loadBarcode(c)
	if !ok {
		return
	}

	var req UpdateBarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		barcode.Title = *req.Title
	}
	if req.Description != nil {
		barcode.Description = *req.Description
	}
	if req.AiDescription != nil {
		barcode.AiDescription = *req.AiDescription
	}

	if err := h.db.Save(&barcode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update barcode"})
		return
	}

	c.JSON(http.StatusOK, barcode)
}

// SetFavorite sets the favorite flag
func (h *Handler) SetFavorite(c *gin.Context) {
	h.setFlag(c, SetFavorite)
}

// SetLocked sets the locked flag
func (h *Handler) SetLocked(c *gin.Context) {
	h.setFlag(c, SetLocked)
}

func (h *Handler) setFlag(c *gin.Context, update func(*gorm.DB, uint, bool) error) {
	barcode, ok := h.loadBarcode(c)
	if !ok {
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := update(h.db, barcode.ID, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update barcode"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": barcode.ID, "value": req.Value})
}

// ToggleTag adds or removes a tag link on a barcode
// @Summary Toggle a tag on a barcode
// @Description Add the tag if absent on the barcode's current tag set, remove it if present
// @Tags barcodes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /barcodes/{id}/tags/{tagId} [post]
func (h *Handler) ToggleTag(c *gin.Context) {
	barcode, ok := h.loadBarcode(c)
	if !ok {
		return
	}

	tagID, err := strconv.ParseUint(c.Param("tagId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}
	var tag models.Tag
	if err := h.db.First(&tag, tagID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	added, err := ToggleTag(h.db, &barcode, &tag)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"barcode_id": barcode.ID, "tag_id": tag.ID, "added": added})
}

// Delete removes a barcode and its tag links
func (h *Handler) Delete(c *gin.Context) {
	barcode, ok := h.loadBarcode(c)
	if !ok {
		return
	}

	if err := Delete(h.db, &barcode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete barcode"})
		return
	}

	h.emitter.Publish(events.TopicBarcodeDeleted, barcode.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Barcode deleted"})
}

// GetStats returns aggregate barcode counts
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := CountStats(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count barcodes"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) loadBarcode(c *gin.Context) (models.Barcode, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid barcode ID"})
		return models.Barcode{}, false
	}

	var barcode models.Barcode
	if err := h.db.Preload("Tags").First(&barcode, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barcode not found"})
		return models.Barcode{}, false
	}
	return barcode, true
}

// RegisterRoutes registers barcode routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/barcodes/classify", h.Classify)
	rg.GET("/barcodes/duplicate", h.CheckDuplicate)
	rg.GET("/barcodes/stats", h.GetStats)
	rg.POST("/barcodes", h.Create)
	rg.GET("/barcodes/:id", h.Get)
	rg.PUT("/barcodes/:id", h.Update)
	rg.PUT("/barcodes/:id/favorite", h.SetFavorite)
	rg.PUT("/barcodes/:id/lock", h.SetLocked)
	rg.POST("/barcodes/:id/tags/:tagId", h.ToggleTag)
	rg.DELETE("/barcodes/:id", h.Delete)
}
