package content

import (
	"net/url"
	"strings"
)

// ProductLookupURL builds a shopping search URL for a numeric product code
// (EAN-13/8, UPC-A/E). The code is URL-encoded into the query, which leaves
// digit strings untouched.
func ProductLookupURL(code string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(code) + "&tbm=shop"
}

// IsOpenableURL reports whether a URL payload is worth handing to an opener.
// Scheme allow-listing is a presentation concern; this only rejects blank
// content.
func IsOpenableURL(raw string) bool {
	return strings.TrimSpace(raw) != ""
}
