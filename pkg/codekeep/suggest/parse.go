package suggest

import (
	"encoding/json"
	"regexp"
	"strings"
)

// SuggestedTag is an ephemeral tag proposal; nothing is persisted until the
// user accepts it.
type SuggestedTag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Suggestions is the parsed outcome of one generation request.
type Suggestions struct {
	Tags        []SuggestedTag `json:"tags"`
	Description string         `json:"description"`
}

var codeFenceRegex = regexp.MustCompile("(?is)```(?:json)?\\s*([\\s\\S]*?)```")

// extractJSONObject strips markdown code fences and surrounding prose from a
// model response, returning the outermost JSON object substring. Returns the
// stripped text unchanged when no object delimiters are present.
func extractJSONObject(text string) string {
	stripped := strings.TrimSpace(codeFenceRegex.ReplaceAllString(text, "$1"))

	start := strings.Index(stripped, "{")
	end := strings.LastIndex(stripped, "}")
	if start != -1 && end > start {
		return stripped[start : end+1]
	}
	return stripped
}

type rawResponse struct {
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// ParseResponse turns raw model output into bounded suggestions. Tags fall
// back to comma-splitting the whole response when the JSON array is
// unusable; the description falls back to empty. At most MaxTags distinct
// tags of at most MaxTagLength characters are kept, and the description is
// truncated with an ellipsis past MaxDescriptionLength.
func ParseResponse(text string) Suggestions {
	jsonText := extractJSONObject(text)

	var raw rawResponse
	var tagNames []string
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil || raw.Tags == nil {
		tagNames = strings.Split(text, ",")
	} else {
		tagNames = raw.Tags
	}

	seen := make(map[string]bool)
	var tags []SuggestedTag
	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" || len([]rune(name)) > MaxTagLength {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, SuggestedTag{Name: name})
		if len(tags) == MaxTags {
			break
		}
	}

	description := strings.TrimSpace(raw.Description)
	if runes := []rune(description); len(runes) > MaxDescriptionLength {
		description = string(runes[:MaxDescriptionLength-3]) + "..."
	}

	return Suggestions{Tags: tags, Description: description}
}
