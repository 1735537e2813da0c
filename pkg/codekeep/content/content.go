// Package content interprets raw barcode payloads into structured semantic
// models. Everything in this package is pure computation: no store access,
// no errors. Ambiguous input degrades to absent fields, never to a failure.
package content

// ValueType is the semantic category of a barcode payload, distinct from
// the symbology it was encoded with.
type ValueType string

const (
	ValueTypeURL     ValueType = "url"
	ValueTypeContact ValueType = "contact"
	ValueTypeWifi    ValueType = "wifi"
	ValueTypeProduct ValueType = "product"
	ValueTypeText    ValueType = "text"
	ValueTypeOther   ValueType = "other"
)

// Symbology is the barcode encoding format.
type Symbology string

const (
	SymbologyQR         Symbology = "qr"
	SymbologyEAN13      Symbology = "ean13"
	SymbologyEAN8       Symbology = "ean8"
	SymbologyUPCA       Symbology = "upca"
	SymbologyUPCE       Symbology = "upce"
	SymbologyCode128    Symbology = "code128"
	SymbologyCode39     Symbology = "code39"
	SymbologyCode93     Symbology = "code93"
	SymbologyCodabar    Symbology = "codabar"
	SymbologyITF        Symbology = "itf"
	SymbologyPDF417     Symbology = "pdf417"
	SymbologyAztec      Symbology = "aztec"
	SymbologyDataMatrix Symbology = "datamatrix"
	SymbologyOther      Symbology = "other"
)

// TypeName converts a value type to a human-readable name.
func TypeName(t ValueType) string {
	switch t {
	case ValueTypeURL:
		return "URL"
	case ValueTypeContact:
		return "Contact"
	case ValueTypeWifi:
		return "Wi-Fi"
	case ValueTypeProduct:
		return "Product"
	case ValueTypeText:
		return "Text"
	case ValueTypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// SymbologyName converts a symbology to a human-readable name.
func SymbologyName(s Symbology) string {
	switch s {
	case SymbologyQR:
		return "QR Code"
	case SymbologyEAN13:
		return "EAN-13"
	case SymbologyEAN8:
		return "EAN-8"
	case SymbologyUPCA:
		return "UPC-A"
	case SymbologyUPCE:
		return "UPC-E"
	case SymbologyCode128:
		return "Code 128"
	case SymbologyCode39:
		return "Code 39"
	case SymbologyCode93:
		return "Code 93"
	case SymbologyCodabar:
		return "Codabar"
	case SymbologyITF:
		return "ITF"
	case SymbologyPDF417:
		return "PDF417"
	case SymbologyAztec:
		return "Aztec"
	case SymbologyDataMatrix:
		return "Data Matrix"
	case SymbologyOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// ParseValueType maps an arbitrary string to a known ValueType,
// falling back to ValueTypeOther.
func ParseValueType(s string) ValueType {
	switch ValueType(s) {
	case ValueTypeURL, ValueTypeContact, ValueTypeWifi, ValueTypeProduct, ValueTypeText, ValueTypeOther:
		return ValueType(s)
	default:
		return ValueTypeOther
	}
}

// ParseSymbology maps an arbitrary string to a known Symbology,
// falling back to SymbologyOther.
func ParseSymbology(s string) Symbology {
	switch Symbology(s) {
	case SymbologyQR, SymbologyEAN13, SymbologyEAN8, SymbologyUPCA, SymbologyUPCE,
		SymbologyCode128, SymbologyCode39, SymbologyCode93, SymbologyCodabar,
		SymbologyITF, SymbologyPDF417, SymbologyAztec, SymbologyDataMatrix, SymbologyOther:
		return Symbology(s)
	default:
		return SymbologyOther
	}
}
