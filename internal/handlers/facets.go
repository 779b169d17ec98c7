package handlers

import (
	"net/http"

	"showroom-gallery/internal/metrics"
)

// GetFacets returns the distinct tags, colors, and categories of the current
// snapshot. Facets are computed once per load, not per request.
func (h *Handlers) GetFacets(w http.ResponseWriter, _ *http.Request) {
	metrics.FacetRequestsTotal.Inc()

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.catalog.Snapshot().Facets)
}
