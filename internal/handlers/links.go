package handlers

import (
	"net/http"
	"strings"
)

// LinkResponse carries one outbound deep link.
type LinkResponse struct {
	URL string `json:"url"`
}

// GetWhatsAppLink builds a wa.me deep link. With an `item` parameter the
// message is a quote request naming that item; with a `message` parameter it
// is a free-form inquiry. One of the two is required.
func (h *Handlers) GetWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	itemKey := r.URL.Query().Get("item")
	message := strings.TrimSpace(r.URL.Query().Get("message"))

	var link string
	switch {
	case itemKey != "":
		item, ok := h.catalog.FindItem(itemKey)
		if !ok {
			writeJSONError(w, "item not found", http.StatusNotFound)
			return
		}
		link = h.contact.WhatsAppQuoteLink(item)
	case message != "":
		link = h.contact.WhatsAppInquiryLink(message)
	default:
		writeJSONError(w, "either item or message is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, LinkResponse{URL: link})
}

// GetCallLink builds the showroom's tel: link.
func (h *Handlers) GetCallLink(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, LinkResponse{URL: h.contact.TelLink()})
}
