package suggest

import (
	"log"
	"net/http"
	"strings"

	"github.com/codekeep/codekeep/pkg/codekeep/content"
	"github.com/codekeep/codekeep/pkg/codekeep/models"
	"github.com/codekeep/codekeep/pkg/codekeep/settings"
	"github.com/codekeep/codekeep/pkg/codekeep/tags"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles suggestion requests
type Handler struct {
	db        *gorm.DB
	settings  *settings.Store
	generator Generator
}

// NewHandler creates a new suggest handler
func NewHandler(db *gorm.DB, generator Generator) *Handler {
	return &Handler{db: db, settings: settings.NewStore(db), generator: generator}
}

// SuggestRequest represents a request for AI tags and description
type SuggestRequest struct {
	RawContent  string `json:"raw_content" binding:"required"`
	ValueType   string `json:"value_type"`
	Symbology   string `json:"symbology"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestResponse carries suggestions, or an empty set plus a reason when
// generation was unavailable or unusable.
type SuggestResponse struct {
	Tags        []SuggestedTag `json:"tags"`
	Description string         `json:"description"`
	Reason      string         `json:"reason,omitempty"`
}

// Generate produces tag and description suggestions for a capture
// @Summary Suggest tags and a description
// @Description Generate up to 3 tag suggestions and a short description for a payload. Failures are non-fatal and reported as an empty suggestion set with a reason.
// @Tags suggest
// @Accept json
// @Produce json
// @Param request body SuggestRequest true "Capture to analyze"
// @Success 200 {object} SuggestResponse
// @Security BearerAuth
// @Router /suggest [post]
func (h *Handler) Generate(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled, err := h.settings.GetBool(settings.KeyAiGenerationEnabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read settings"})
		return
	}
	if !enabled {
		c.JSON(http.StatusOK, SuggestResponse{Tags: []SuggestedTag{}, Reason: "AI generation is disabled"})
		return
	}

	tagsEnabled, _ := h.settings.GetBool(settings.KeyAiTagSuggestionsEnabled)
	descEnabled, _ := h.settings.GetBool(settings.KeyAiDescriptionsEnabled)
	humorous, _ := h.settings.GetBool(settings.KeyAiHumorousDescriptions)
	language, _ := h.settings.GetString(settings.KeyAiLanguage)

	var existing []models.Tag
	if err := h.db.Order("name ASC").Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}
	existingNames := make([]string, len(existing))
	for i, t := range existing {
		existingNames[i] = t.Name
	}

	prompt := BuildPrompt(PromptInput{
		Content:         req.RawContent,
		TypeName:        content.TypeName(content.ParseValueType(req.ValueType)),
		FormatName:      content.SymbologyName(content.ParseSymbology(req.Symbology)),
		ExistingTags:    existingNames,
		Language:        language,
		Humorous:        humorous,
		UserTitle:       req.Title,
		UserDescription: req.Description,
	})

	text, err := h.generator.Generate(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("Suggestion generation failed: %v", err)
		c.JSON(http.StatusOK, SuggestResponse{Tags: []SuggestedTag{}, Reason: "Generation unavailable: " + err.Error()})
		return
	}

	parsed := ParseResponse(text)
	if len(parsed.Tags) == 0 && parsed.Description == "" {
		c.JSON(http.StatusOK, SuggestResponse{Tags: []SuggestedTag{}, Reason: "Model response could not be parsed"})
		return
	}

	resp := SuggestResponse{Tags: []SuggestedTag{}}
	if tagsEnabled {
		for _, tag := range parsed.Tags {
			// Existing tags keep their stored color; new suggestions get
			// a pastel one
			tag.Color = colorForSuggestion(existing, tag.Name)
			resp.Tags = append(resp.Tags, tag)
		}
	}
	if descEnabled {
		resp.Description = parsed.Description
	}

	c.JSON(http.StatusOK, resp)
}

func colorForSuggestion(existing []models.Tag, name string) string {
	for _, t := range existing {
		if strings.EqualFold(t.Name, name) {
			return t.Color
		}
	}
	return tags.RandomPastelColor()
}

// RegisterRoutes registers suggest routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/suggest", h.Generate)
}
