package handlers

import (
	"net/http"
	"strconv"
	"time"

	"showroom-gallery/internal/catalog"
	"showroom-gallery/internal/manifest"
)

// ManifestStatus describes the provenance of the current snapshot.
type ManifestStatus struct {
	Source    manifest.Source `json:"source"`
	Degraded  bool            `json:"degraded"`
	ItemCount int             `json:"itemCount"`
	LoadedAt  time.Time       `json:"loadedAt"`
}

// GetManifestStatus reports which source served the current snapshot and
// whether the load was degraded.
func (h *Handlers) GetManifestStatus(w http.ResponseWriter, _ *http.Request) {
	snap := h.catalog.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ManifestStatus{
		Source:    snap.Source,
		Degraded:  snap.Degraded,
		ItemCount: len(snap.Items),
		LoadedAt:  snap.LoadedAt,
	})
}

// TriggerReload reloads the manifest on demand. Triggers are rate limited
// and concurrent triggers share one load.
func (h *Handlers) TriggerReload(w http.ResponseWriter, r *http.Request) {
	if !h.reloadLimiter.Allow() {
		writeJSONError(w, "reload rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	snap, err := h.reloader.Reload(r.Context())
	if err != nil {
		writeJSONError(w, "reload failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ManifestStatus{
		Source:    snap.Source,
		Degraded:  snap.Degraded,
		ItemCount: len(snap.Items),
		LoadedAt:  snap.LoadedAt,
	})
}

// GetLoadHistory returns the most recent manifest load attempts.
func (h *Handlers) GetLoadHistory(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeJSONError(w, "load history unavailable", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	records, err := h.cache.History(r.Context(), limit)
	if err != nil {
		writeJSONError(w, "failed to read load history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []catalog.LoadRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, records)
}
