package tags

import (
	"fmt"
	"math/rand"
	"regexp"
)

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// IsValidHexColor reports whether a string is a #RRGGBB or #AARRGGBB color.
func IsValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// RandomPastelColor returns a random color with every channel in the pastel
// range (128-255). Intentionally non-deterministic.
func RandomPastelColor() string {
	r := 128 + rand.Intn(128)
	g := 128 + rand.Intn(128)
	b := 128 + rand.Intn(128)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
