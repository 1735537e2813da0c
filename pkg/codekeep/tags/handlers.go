package tags

import (
	"net/http"
	"strconv"

	"github.com/codekeep/codekeep/pkg/codekeep/events"
	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles tag-related requests
type Handler struct {
	db      *gorm.DB
	emitter *events.Emitter
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB, emitter *events.Emitter) *Handler {
	return &Handler{db: db, emitter: emitter}
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	BarcodeCount int    `json:"barcode_count,omitempty"`
}

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// UpdateTagRequest represents the request to update a tag
type UpdateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ReconcileRequest represents the request to resolve tag names to entities
type ReconcileRequest struct {
	Names  []string          `json:"names" binding:"required"`
	Colors map[string]string `json:"colors"`
}

// List returns all tags with their barcode counts
// @Summary List tags
// @Description Get all tags, each with the number of barcodes carrying it
// @Tags tags
// @Produce json
// @Success 200 {array} TagResponse
// @Security BearerAuth
// @Router /tags [get]
func (h *Handler) List(c *gin.Context) {
	type tagWithCount struct {
		ID           uint
		Name         string
		Color        string
		BarcodeCount int
	}

	var results []tagWithCount
	err := h.db.Table("tags").
		Select("tags.id, tags.name, tags.color, COUNT(DISTINCT barcode_tags.barcode_id) as barcode_count").
		Joins("LEFT JOIN barcode_tags ON tags.id = barcode_tags.tag_id").
		Where("tags.deleted_at IS NULL").
		Group("tags.id").
		Order("tags.name ASC").
		Find(&results).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	tags := make([]TagResponse, len(results))
	for i, r := range results {
		tags[i] = TagResponse{
			ID:           r.ID,
			Name:         r.Name,
			Color:        r.Color,
			BarcodeCount: r.BarcodeCount,
		}
	}

	c.JSON(http.StatusOK, tags)
}

// Create creates a new tag
// @Summary Create a tag
// @Description Create a tag with a name (unique, case-insensitive) and optional color
// @Tags tags
// @Accept json
// @Produce json
// @Param request body CreateTagRequest true "Tag details"
// @Success 201 {object} TagResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Name already in use"
// @Security BearerAuth
// @Router /tags [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := normalizeName(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tag name must not be blank"})
		return
	}

	color := req.Color
	if color == "" {
		color = models.DefaultTagColor
	}
	if !IsValidHexColor(color) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Color must be #RRGGBB or #AARRGGBB"})
		return
	}

	var existing models.Tag
	if err := h.db.Where("name = ?", name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A tag with this name already exists"})
		return
	}

	tag := models.Tag{Name: name, Color: color}
	if err := h.db.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	h.emitter.Publish(events.TopicTagCreated, tag.ID)

	c.JSON(http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
}

// Update updates a tag's name and/or color
func (h *Handler) Update(c *gin.Context) {
	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	var tag models.Tag
	if err := h.db.First(&tag, tagID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if name := normalizeName(req.Name); name != "" {
		var existing models.Tag
		if err := h.db.Where("name = ? AND id != ?", name, tag.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A tag with this name already exists"})
			return
		}
		tag.Name = name
	}
	if req.Color != "" {
		if !IsValidHexColor(req.Color) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Color must be #RRGGBB or #AARRGGBB"})
			return
		}
		tag.Color = req.Color
	}

	if err := h.db.Save(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	c.JSON(http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
}

// Delete deletes a tag and its barcode links
func (h *Handler) Delete(c *gin.Context) {
	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	var tag models.Tag
	if err := h.db.First(&tag, tagID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	// Remove links explicitly before deleting the tag itself
	if err := h.db.Model(&tag).Association("Barcodes").Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove tag links"})
		return
	}
	if err := h.db.Delete(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	h.emitter.Publish(events.TopicTagDeleted, tag.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}

// ReconcileNames resolves a list of tag names to existing-or-created tags
// @Summary Reconcile tag names
// @Description Map tag names to existing tags (case-insensitive) or create them
// @Tags tags
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Tag names and optional colors"
// @Success 200 {array} TagResponse
// @Security BearerAuth
// @Router /tags/reconcile [post]
func (h *Handler) ReconcileNames(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tags, err := Reconcile(h.db, req.Names, req.Colors)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile tags"})
		return
	}

	responses := make([]TagResponse, len(tags))
	for i, t := range tags {
		responses[i] = TagResponse{ID: t.ID, Name: t.Name, Color: t.Color}
	}

	c.JSON(http.StatusOK, responses)
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
	rg.POST("/tags", h.Create)
	rg.PUT("/tags/:id", h.Update)
	rg.DELETE("/tags/:id", h.Delete)
	rg.POST("/tags/reconcile", h.ReconcileNames)
}
