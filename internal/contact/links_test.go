package contact

import (
	"net/url"
	"strings"
	"testing"

	"showroom-gallery/internal/manifest"
)

func TestDigitsOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"International format", "+966 50 123 4567", "966501234567"},
		{"Dashes and parens", "(050) 123-4567", "0501234567"},
		{"Already digits", "966501234567", "966501234567"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DigitsOnly(tt.input); got != tt.expected {
				t.Errorf("DigitsOnly(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWhatsAppQuoteLink(t *testing.T) {
	t.Parallel()

	c := New("+966 50 123 4567")
	item := manifest.Item{ID: 7, RID: "A-100", Src: "/media/a.jpg"}

	link := c.WhatsAppQuoteLink(item)

	if !strings.HasPrefix(link, "https://wa.me/966501234567?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	text := u.Query().Get("text")
	// The message names the item by its display identifier and source path.
	if !strings.Contains(text, "A-100") || !strings.Contains(text, "/media/a.jpg") {
		t.Errorf("message missing item reference: %q", text)
	}
}

func TestWhatsAppQuoteLinkNumericIDFallback(t *testing.T) {
	t.Parallel()

	c := New("966501234567")
	link := c.WhatsAppQuoteLink(manifest.Item{ID: 42, Src: "/x.jpg"})

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if !strings.Contains(u.Query().Get("text"), "42") {
		t.Errorf("message missing numeric id: %q", u.Query().Get("text"))
	}
}

func TestWhatsAppInquiryLink(t *testing.T) {
	t.Parallel()

	c := New("966501234567")
	link := c.WhatsAppInquiryLink("هل يتوفر رخام أبيض؟")

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if !strings.Contains(u.Query().Get("text"), "هل يتوفر رخام أبيض؟") {
		t.Errorf("message missing inquiry text: %q", u.Query().Get("text"))
	}
}

func TestTelLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		phone    string
		expected string
	}{
		{"Plus preserved", "+966501234567", "tel:+966501234567"},
		{"Plus added with formatting stripped", "966 50 123 4567", "tel:+966501234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.phone)
			if got := c.TelLink(); got != tt.expected {
				t.Errorf("TelLink() = %q, want %q", got, tt.expected)
			}
		})
	}
}
