package content

import "regexp"

// WifiInfo is the structured form of a WIFI: payload. A nil Password means
// an open network (the P: segment was empty or missing).
type WifiInfo struct {
	SSID         string  `json:"ssid,omitempty"`
	Password     *string `json:"password,omitempty"`
	SecurityType string  `json:"security_type,omitempty"`
}

var (
	wifiSSIDRe     = regexp.MustCompile(`S:([^;]*)`)
	wifiPasswordRe = regexp.MustCompile(`P:([^;]*)`)
	wifiSecurityRe = regexp.MustCompile(`T:([^;]*)`)
)

// ParseWifi extracts network fields from a WIFI:T:<type>;S:<ssid>;P:<pass>;;
// payload. Segments may appear in any order; unrecognized segments are
// ignored. Malformed input (even without the WIFI: prefix) is handled
// best-effort, degrading to absent fields.
func ParseWifi(raw string) WifiInfo {
	var info WifiInfo

	if m := wifiSSIDRe.FindStringSubmatch(raw); m != nil && m[1] != "" {
		info.SSID = m[1]
	}
	if m := wifiPasswordRe.FindStringSubmatch(raw); m != nil && m[1] != "" {
		password := m[1]
		info.Password = &password
	}
	if m := wifiSecurityRe.FindStringSubmatch(raw); m != nil && m[1] != "" {
		info.SecurityType = m[1]
	}
	return info
}
