package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"showroom-gallery/internal/manifest"
	"showroom-gallery/internal/metrics"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// ItemsResult is the paginated response of a filtered item listing.
type ItemsResult struct {
	Items      []manifest.Item `json:"items"`
	Query      string          `json:"query"`
	Tags       []string        `json:"tags,omitempty"`
	Categories []string        `json:"categories,omitempty"`
	TotalItems int             `json:"totalItems"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
	Source     manifest.Source `json:"source"`
	Degraded   bool            `json:"degraded"`
}

// ListItems returns the filtered, paginated view of the current snapshot.
// With no query, tags, or categories selected, every item passes through in
// manifest order.
func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	snap := h.catalog.Snapshot()

	query := r.URL.Query().Get("q")
	tags := r.URL.Query()["tag"]
	categories := r.URL.Query()["category"]

	metrics.FilterRequestsTotal.Inc()
	filtered := manifest.Filter(snap.Items, query, tags, categories)

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := defaultPageSize
	if ps, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && ps > 0 {
		pageSize = ps
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ItemsResult{
		Items:      filtered[start:end],
		Query:      query,
		Tags:       tags,
		Categories: categories,
		TotalItems: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Source:     snap.Source,
		Degraded:   snap.Degraded,
	})
}

// GetItem returns a single item by rid or numeric id.
func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["id"]

	item, ok := h.catalog.FindItem(key)
	if !ok {
		writeJSONError(w, "item not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, item)
}
