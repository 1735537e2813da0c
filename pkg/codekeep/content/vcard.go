package content

import "strings"

// ContactInfo is the structured form of a vCard payload. Empty fields were
// not present in the card (or were blank after trimming).
type ContactInfo struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// ParseVCard extracts contact fields from a vCard-formatted payload.
// FN is the preferred display name; N is used only when FN is absent,
// composed as "given family" from its semicolon-separated parts. For each
// field only the first matching line counts; later duplicates are ignored.
func ParseVCard(raw string) ContactInfo {
	var info ContactInfo
	var structuredName string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch {
		case key == "FN":
			if info.Name == "" {
				info.Name = value
			}
		case key == "N":
			if structuredName == "" {
				structuredName = value
			}
		// TEL and EMAIL lines usually carry parameters (TEL;TYPE=CELL:...),
		// so match on the key prefix.
		case strings.HasPrefix(key, "TEL"):
			if info.Phone == "" {
				info.Phone = value
			}
		case strings.HasPrefix(key, "EMAIL"):
			if info.Email == "" {
				info.Email = value
			}
		case key == "ORG":
			if info.Organization == "" {
				info.Organization = value
			}
		}
	}

	if info.Name == "" && structuredName != "" {
		info.Name = composeStructuredName(structuredName)
	}
	return info
}

// composeStructuredName turns an N: value (family;given;...) into
// "given family", skipping empty parts.
func composeStructuredName(value string) string {
	parts := strings.Split(value, ";")
	var family, given string
	if len(parts) > 0 {
		family = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		given = strings.TrimSpace(parts[1])
	}

	var words []string
	if given != "" {
		words = append(words, given)
	}
	if family != "" {
		words = append(words, family)
	}
	return strings.Join(words, " ")
}
