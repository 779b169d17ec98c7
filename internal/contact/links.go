package contact

import (
	"fmt"
	"net/url"
	"strings"

	"showroom-gallery/internal/manifest"
	"showroom-gallery/internal/metrics"
)

// Default message templates. %s placeholders are filled with the item's
// display identifier and source path.
const (
	defaultQuoteTemplate   = "السلام عليكم، أرغب بطلب عرض سعر للمنتج: %s (%s)"
	defaultInquiryTemplate = "السلام عليكم، لدي استفسار: %s"
)

// Contact builds outbound deep links for the showroom's messaging and
// calling channels. All purchase intent routes through these links; there is
// no cart or checkout.
type Contact struct {
	Phone           string `yaml:"phone"`
	QuoteTemplate   string `yaml:"quoteTemplate"`
	InquiryTemplate string `yaml:"inquiryTemplate"`
}

// New returns a Contact for the given phone number with default templates.
func New(phone string) Contact {
	return Contact{
		Phone:           phone,
		QuoteTemplate:   defaultQuoteTemplate,
		InquiryTemplate: defaultInquiryTemplate,
	}
}

// WhatsAppQuoteLink builds a wa.me link carrying a quote request for one
// gallery item. The message names the item by its display identifier and
// source path.
func (c Contact) WhatsAppQuoteLink(it manifest.Item) string {
	template := c.QuoteTemplate
	if template == "" {
		template = defaultQuoteTemplate
	}
	text := fmt.Sprintf(template, it.DisplayID(), it.Src)
	return c.whatsAppLink(text)
}

// WhatsAppInquiryLink builds a wa.me link carrying a free-form inquiry, such
// as a contact-form message.
func (c Contact) WhatsAppInquiryLink(message string) string {
	template := c.InquiryTemplate
	if template == "" {
		template = defaultInquiryTemplate
	}
	return c.whatsAppLink(fmt.Sprintf(template, message))
}

func (c Contact) whatsAppLink(text string) string {
	metrics.ContactLinksTotal.WithLabelValues("whatsapp").Inc()
	return fmt.Sprintf("https://wa.me/%s?text=%s", DigitsOnly(c.Phone), url.QueryEscape(text))
}

// TelLink builds a tel: URI for the showroom's phone number.
func (c Contact) TelLink() string {
	metrics.ContactLinksTotal.WithLabelValues("call").Inc()
	phone := c.Phone
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + DigitsOnly(phone)
	}
	return "tel:" + phone
}

// DigitsOnly strips every non-digit character from a phone number, as wa.me
// requires.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
