package content

// Classification is the structured interpretation of a decoded payload.
// Exactly the fields relevant to the value type are populated; text and
// other payloads pass through with no structure.
type Classification struct {
	ValueType ValueType    `json:"value_type"`
	Contact   *ContactInfo `json:"contact,omitempty"`
	Wifi      *WifiInfo    `json:"wifi,omitempty"`
	LookupURL string       `json:"lookup_url,omitempty"`
	URL       string       `json:"url,omitempty"`
}

// Classify interprets a raw payload according to the value type hint the
// decoder assigned to it. It never fails: unparseable content yields a
// classification with absent fields.
func Classify(valueType ValueType, raw string) Classification {
	c := Classification{ValueType: valueType}

	switch valueType {
	case ValueTypeContact:
		info := ParseVCard(raw)
		c.Contact = &info
	case ValueTypeWifi:
		info := ParseWifi(raw)
		c.Wifi = &info
	case ValueTypeProduct:
		c.LookupURL = ProductLookupURL(raw)
	case ValueTypeURL:
		c.URL = raw
	}
	return c
}
