package suggest

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// knownServices maps lowercase hostnames to a brief service description.
var knownServices = map[string]string{
	"amazon.com":      "Amazon (online shopping)",
	"amazon.co.uk":    "Amazon UK (online shopping)",
	"amazon.de":       "Amazon DE (online shopping)",
	"amazon.es":       "Amazon ES (online shopping)",
	"amazon.fr":       "Amazon FR (online shopping)",
	"amzn.to":         "Amazon (short link)",
	"youtube.com":     "YouTube (video platform)",
	"youtu.be":        "YouTube (video platform)",
	"spotify.com":     "Spotify (music streaming)",
	"netflix.com":     "Netflix (video streaming)",
	"linkedin.com":    "LinkedIn (professional network)",
	"facebook.com":    "Facebook (social media)",
	"fb.com":          "Facebook (social media)",
	"instagram.com":   "Instagram (photo sharing)",
	"twitter.com":     "Twitter/X (social media)",
	"x.com":           "Twitter/X (social media)",
	"github.com":      "GitHub (code hosting)",
	"paypal.com":      "PayPal (payment)",
	"apple.com":       "Apple",
	"apps.apple.com":  "Apple App Store",
	"play.google.com": "Google Play Store",
	"maps.google.com": "Google Maps",
	"wa.me":           "WhatsApp (messaging)",
	"t.me":            "Telegram (messaging)",
	"bit.ly":          "Shortened URL (Bitly)",
	"tinyurl.com":     "Shortened URL (TinyURL)",
	"goo.gl":          "Shortened URL (Google)",
	"t.co":            "Shortened URL (Twitter/X)",
}

var (
	wifiSSIDRegex     = regexp.MustCompile(`S:([^;]+)`)
	wifiSecurityRegex = regexp.MustCompile(`T:([^;]+)`)
	vcardNameRegex    = regexp.MustCompile(`(?m)^FN:(.+)$`)
	vcardOrgRegex     = regexp.MustCompile(`(?m)^ORG:(.+)$`)
	vcardTitleRegex   = regexp.MustCompile(`(?m)^TITLE:(.+)$`)
	eventSummaryRegex = regexp.MustCompile(`(?m)^SUMMARY:(.+)$`)
	eventLocRegex     = regexp.MustCompile(`(?m)^LOCATION:(.+)$`)
)

// EnrichedContext extracts structured facts from a payload for richer
// prompts. Returns newline-separated bullet points, or an empty string when
// nothing useful was found. Parsing is local and best-effort.
func EnrichedContext(content, typeName string) string {
	var facts []string
	lower := strings.ToLower(content)

	switch {
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		facts = urlFacts(content)

	case strings.HasPrefix(lower, "wifi:"):
		if m := wifiSSIDRegex.FindStringSubmatch(content); m != nil {
			facts = append(facts, "Network name (SSID): "+m[1])
		}
		if m := wifiSecurityRegex.FindStringSubmatch(content); m != nil {
			facts = append(facts, "Security type: "+m[1])
		}

	case strings.HasPrefix(lower, "begin:vcard"):
		if m := vcardNameRegex.FindStringSubmatch(content); m != nil {
			facts = append(facts, "Contact name: "+strings.TrimSpace(m[1]))
		}
		if m := vcardOrgRegex.FindStringSubmatch(content); m != nil {
			facts = append(facts, "Organization: "+strings.TrimSpace(m[1]))
		}
		if m := vcardTitleRegex.FindStringSubmatch(content); m != nil {
			facts = append(facts, "Job title: "+strings.TrimSpace(m[1]))
		}

	case strings.HasPrefix(lower, "begin:vevent"):
		if m := eventSummaryRegex.FindStringSubmatch(content); m != nil {
			facts = append(facts, "Event title: "+strings.TrimSpace(m[1]))
		}
		if m := eventLocRegex.FindStringSubmatch(content); m != nil {
			facts = append(facts, "Event location: "+strings.TrimSpace(m[1]))
		}

	case strings.HasPrefix(lower, "mailto:"):
		addr := strings.TrimPrefix(content, "mailto:")
		if q := strings.Index(addr, "?"); q != -1 {
			addr = addr[:q]
		}
		if at := strings.Index(addr, "@"); at != -1 && at < len(addr)-1 {
			facts = append(facts, "Email domain: "+addr[at+1:])
		}

	case strings.HasPrefix(lower, "tel:"):
		if country := countryFromPhonePrefix(strings.TrimPrefix(content, "tel:")); country != "" {
			facts = append(facts, "Country: "+country)
		}

	case isISBN(content, typeName):
		facts = append(facts, "Book (ISBN-13)")

	case typeName == "Product" && isNumericProduct(content):
		if hint := eanCountryHint(content); hint != "" {
			facts = append(facts, "Product origin: "+hint)
		}
	}

	if len(facts) == 0 {
		return ""
	}
	for i, f := range facts {
		facts[i] = "- " + f
	}
	return strings.Join(facts, "\n")
}

func urlFacts(content string) []string {
	var facts []string
	parsed, err := url.Parse(content)
	if err != nil {
		return nil
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if host == "" {
		return nil
	}
	facts = append(facts, "Domain: "+host)

	if service, ok := knownServices[strings.ToLower(host)]; ok {
		facts = append(facts, "Known service: "+service)
	} else {
		parts := strings.Split(host, ".")
		switch parts[len(parts)-1] {
		case "edu", "ac":
			facts = append(facts, "Educational institution")
		case "gov":
			facts = append(facts, "Government website")
		case "org":
			facts = append(facts, "Non-profit or open organisation")
		}
	}

	path := parsed.Path
	switch {
	case strings.Contains(path, "/dp/") || strings.Contains(path, "/product/"):
		facts = append(facts, "Likely a product page")
	case strings.Contains(path, "/invoice") || strings.Contains(path, "/receipt"):
		facts = append(facts, "Likely an invoice or receipt")
	case strings.Contains(path, "/event") || strings.Contains(path, "/ticket"):
		facts = append(facts, "Likely an event or ticket")
	case strings.Contains(path, "/menu"):
		facts = append(facts, "Likely a restaurant menu")
	case strings.Contains(path, "/watch") || strings.Contains(path, "/video"):
		facts = append(facts, "Likely a video page")
	}

	return facts
}

func isISBN(content, typeName string) bool {
	if typeName == "ISBN" {
		return true
	}
	if len(content) != 13 || !isDigits(content) {
		return false
	}
	return strings.HasPrefix(content, "978") || strings.HasPrefix(content, "979")
}

func isNumericProduct(content string) bool {
	return len(content) >= 7 && len(content) <= 14 && isDigits(content)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// countryFromPhonePrefix derives a country/region name from an E.164 prefix.
func countryFromPhonePrefix(number string) string {
	if !strings.HasPrefix(number, "+") {
		return ""
	}
	prefixes := []struct {
		prefix  string
		country string
	}{
		{"+1", "US/Canada"},
		{"+44", "UK"},
		{"+33", "France"},
		{"+34", "Spain"},
		{"+39", "Italy"},
		{"+49", "Germany"},
		{"+55", "Brazil"},
		{"+86", "China"},
		{"+81", "Japan"},
		{"+82", "South Korea"},
		{"+91", "India"},
		{"+7", "Russia"},
		{"+61", "Australia"},
		{"+52", "Mexico"},
	}
	for _, p := range prefixes {
		if strings.HasPrefix(number, p.prefix) {
			return p.country
		}
	}
	return ""
}

// eanCountryHint derives a product-origin hint from the GS1 prefix of an
// EAN barcode.
func eanCountryHint(code string) string {
	if len(code) < 3 {
		return ""
	}
	prefix, err := strconv.Atoi(code[:3])
	if err != nil {
		return ""
	}
	switch {
	case prefix <= 19:
		return "USA/Canada"
	case prefix >= 30 && prefix <= 37:
		return "France"
	case prefix >= 40 && prefix <= 44:
		return "Germany"
	case prefix >= 45 && prefix <= 49:
		return "Japan"
	case prefix >= 50 && prefix <= 59:
		return "UK"
	case prefix >= 70 && prefix <= 79:
		return "Nordic countries"
	case prefix >= 80 && prefix <= 83:
		return "Italy"
	case prefix == 84:
		return "Spain"
	case prefix >= 520 && prefix <= 521:
		return "Greece"
	case prefix == 560:
		return "Portugal"
	case prefix == 590:
		return "Poland"
	case prefix >= 600 && prefix <= 601:
		return "South Africa"
	case prefix >= 690 && prefix <= 699:
		return "China"
	}
	return ""
}
