package history

import (
	"net/http"
	"strconv"

	"github.com/codekeep/codekeep/pkg/codekeep/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles history queries
type Handler struct {
	db       *gorm.DB
	settings *settings.Store
}

// NewHandler creates a new history handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, settings: settings.NewStore(db)}
}

// List returns the filtered barcode history
// @Summary Query history
// @Description Get barcodes filtered by tag, text query, and favorites
// @Tags history
// @Produce json
// @Param tag_id query int false "Restrict to barcodes carrying this tag"
// @Param q query string false "Case-insensitive substring filter"
// @Param favorites query bool false "Only favorited barcodes"
// @Success 200 {array} models.Barcode
// @Security BearerAuth
// @Router /history [get]
func (h *Handler) List(c *gin.Context) {
	var selectedTagID *uint
	if raw := c.Query("tag_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag_id"})
			return
		}
		tagID := uint(id)
		selectedTagID = &tagID
	}

	onlyFavorites := c.Query("favorites") == "true"

	hideTagged, err := h.settings.GetBool(settings.KeyHideTaggedWhenNoTagSelected)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read settings"})
		return
	}
	searchAcrossAll, err := h.settings.GetBool(settings.KeySearchAcrossAllTags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read settings"})
		return
	}

	q := Compose(selectedTagID, c.Query("q"), hideTagged, searchAcrossAll, onlyFavorites)

	barcodes, err := Search(h.db, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query history"})
		return
	}

	c.JSON(http.StatusOK, barcodes)
}

// RegisterRoutes registers history routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.List)
}
