package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles settings requests
type Handler struct {
	store *Store
}

// NewHandler creates a new settings handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{store: NewStore(db)}
}

// UpdateSettingsRequest represents a partial settings update
type UpdateSettingsRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// Get returns all settings
// @Summary Get settings
// @Description Get all settings with defaults applied
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /settings [get]
func (h *Handler) Get(c *gin.Context) {
	values, err := h.store.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, values)
}

// Update stores the supplied setting values
// @Summary Update settings
// @Description Update one or more settings by key
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Settings to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Unknown setting key"
// @Security BearerAuth
// @Router /settings [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for key := range req.Values {
		if !IsKnownKey(key) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown setting key: " + key})
			return
		}
	}

	for key, value := range req.Values {
		if err := h.store.Set(key, value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}
	}

	values, err := h.store.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, values)
}

// RegisterRoutes registers settings routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.Get)
	rg.PUT("/settings", h.Update)
}
