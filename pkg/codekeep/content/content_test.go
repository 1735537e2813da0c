package content

import (
	"strings"
	"testing"
)

func TestProductLookupURLContainsCodeVerbatim(t *testing.T) {
	code := "012345678905"
	u := ProductLookupURL(code)
	if !strings.Contains(u, code) {
		t.Errorf("Lookup URL %q should contain the code %q verbatim", u, code)
	}
	if !strings.Contains(u, "tbm=shop") {
		t.Errorf("Lookup URL %q should target the shopping search", u)
	}
}

func TestIsOpenableURL(t *testing.T) {
	if !IsOpenableURL("https://example.com") {
		t.Error("Expected non-empty URL to be openable")
	}
	if IsOpenableURL("   ") {
		t.Error("Expected blank content to not be openable")
	}
}

func TestClassifyDispatch(t *testing.T) {
	contact := Classify(ValueTypeContact, "FN:Jane Doe")
	if contact.Contact == nil || contact.Contact.Name != "Jane Doe" {
		t.Errorf("Expected parsed contact, got %+v", contact)
	}

	wifi := Classify(ValueTypeWifi, "WIFI:T:WPA;S:Net;P:pw;;")
	if wifi.Wifi == nil || wifi.Wifi.SSID != "Net" {
		t.Errorf("Expected parsed wifi, got %+v", wifi)
	}

	product := Classify(ValueTypeProduct, "4006381333931")
	if !strings.Contains(product.LookupURL, "4006381333931") {
		t.Errorf("Expected product lookup URL, got %+v", product)
	}

	u := Classify(ValueTypeURL, "https://example.com/x")
	if u.URL != "https://example.com/x" {
		t.Errorf("Expected URL pass-through, got %+v", u)
	}

	text := Classify(ValueTypeText, "hello")
	if text.Contact != nil || text.Wifi != nil || text.LookupURL != "" || text.URL != "" {
		t.Errorf("Expected no structure for text, got %+v", text)
	}
}

func TestTypeNameFallback(t *testing.T) {
	if TypeName(ValueTypeWifi) != "Wi-Fi" {
		t.Errorf("Expected 'Wi-Fi', got %q", TypeName(ValueTypeWifi))
	}
	if TypeName(ValueType("bogus")) != "Unknown" {
		t.Errorf("Expected 'Unknown' fallback, got %q", TypeName(ValueType("bogus")))
	}
}

func TestSymbologyNameFallback(t *testing.T) {
	if SymbologyName(SymbologyEAN13) != "EAN-13" {
		t.Errorf("Expected 'EAN-13', got %q", SymbologyName(SymbologyEAN13))
	}
	if SymbologyName(Symbology("bogus")) != "Unknown" {
		t.Errorf("Expected 'Unknown' fallback, got %q", SymbologyName(Symbology("bogus")))
	}
}

func TestParseValueTypeFallback(t *testing.T) {
	if ParseValueType("wifi") != ValueTypeWifi {
		t.Error("Expected wifi to round-trip")
	}
	if ParseValueType("nonsense") != ValueTypeOther {
		t.Error("Expected unknown value type to fall back to other")
	}
	if ParseSymbology("ean13") != SymbologyEAN13 {
		t.Error("Expected ean13 to round-trip")
	}
	if ParseSymbology("nonsense") != SymbologyOther {
		t.Error("Expected unknown symbology to fall back to other")
	}
}
