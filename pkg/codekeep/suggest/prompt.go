package suggest

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxTags is the maximum number of tag suggestions kept from a response.
	MaxTags = 3
	// MaxTagLength is the longest accepted suggested tag name.
	MaxTagLength = 30
	// MaxDescriptionLength caps generated descriptions; longer text is
	// truncated with an ellipsis.
	MaxDescriptionLength = 200

	maxUserTitleLength       = 100
	maxUserDescriptionLength = 200
)

// PromptInput carries everything the prompt builder needs about a capture.
type PromptInput struct {
	Content         string
	TypeName        string
	FormatName      string
	ExistingTags    []string
	Language        string
	Humorous        bool
	UserTitle       string
	UserDescription string
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// BuildPrompt assembles the single-request tags+description prompt.
func BuildPrompt(in PromptInput) string {
	var definition string
	if in.TypeName != "" {
		definition = "Type: " + in.TypeName
	}
	if in.FormatName != "" {
		if definition != "" {
			definition += ", "
		}
		definition += "Format: " + in.FormatName
	}

	var sections []string
	sections = append(sections,
		"Analyze this scanned barcode. Provide up to 3 short tags and a brief description.",
		"Respond in "+languageName(in.Language)+".",
		"",
		fmt.Sprintf("Barcode content: %q", in.Content))

	if definition != "" {
		sections = append(sections, "Barcode definition: "+definition)
	}
	if extracted := EnrichedContext(in.Content, in.TypeName); extracted != "" {
		sections = append(sections, "Extracted context:\n"+extracted)
	}
	if userContext := userProvidedContext(in.UserTitle, in.UserDescription); userContext != "" {
		sections = append(sections, userContext)
	}
	if len(in.ExistingTags) > 0 {
		sections = append(sections, "Existing tags you can reuse: "+strings.Join(in.ExistingTags, ", "))
	}

	sections = append(sections,
		"",
		"Tags rules:",
		"- Prefer reusing existing tags when they fit",
		"- Choose specific, meaningful categories (e.g., Work, Travel, Health, Finance, Shopping)",
		`- Capitalize each tag (e.g., "Loyalty Card", "Online Order")`,
		`- Avoid generic tags like "Barcode", "Item", or "Other"`,
		"",
		"Description rules:",
		fmt.Sprintf("- 1-2 sentences, under %d characters", MaxDescriptionLength),
		"- For URLs: name the website or service and what it offers",
		"- For products: mention the product type or brand if recognizable",
		"- For contacts, Wi-Fi, events, or other types: describe what the barcode provides access to")

	if in.Humorous {
		sections = append(sections,
			"- Use a funny, witty, and light-hearted tone — make the user smile!")
	}

	sections = append(sections,
		"",
		"Respond ONLY with valid JSON in this exact format, nothing else:",
		`{"tags": ["Tag1", "Tag2", "Tag3"], "description": "Your description here."}`)

	return strings.Join(sections, "\n")
}

// userProvidedContext normalizes and truncates the user's own title and
// description so they can refine the generation without bloating the prompt.
func userProvidedContext(title, description string) string {
	title = truncate(whitespaceRegex.ReplaceAllString(strings.TrimSpace(title), " "), maxUserTitleLength)
	description = truncate(whitespaceRegex.ReplaceAllString(strings.TrimSpace(description), " "), maxUserDescriptionLength)

	var lines []string
	if title != "" {
		lines = append(lines, "User-provided title: "+title)
	}
	if description != "" {
		lines = append(lines, "User-provided description: "+description)
	}
	if len(lines) == 0 {
		return ""
	}
	return "User-provided context (use this to refine the tags and description):\n" +
		strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// languageName converts an ISO 639-1 code to the English language name used
// in prompts.
func languageName(code string) string {
	switch code {
	case "es":
		return "Spanish"
	case "fr":
		return "French"
	case "de":
		return "German"
	case "it":
		return "Italian"
	case "pt":
		return "Portuguese"
	case "zh":
		return "Chinese"
	case "ja":
		return "Japanese"
	case "ko":
		return "Korean"
	case "ar":
		return "Arabic"
	default:
		return "English"
	}
}
