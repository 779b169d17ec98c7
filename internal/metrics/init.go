package metrics

// InitializeMetrics pre-populates expected label combinations so every
// metric is exported from the first Prometheus scrape. Call once at startup.
func InitializeMetrics() {
	for _, source := range []string{"json", "csv", "cache", "none"} {
		for _, status := range []string{"success", "empty"} {
			ManifestLoadsTotal.WithLabelValues(source, status)
		}
	}

	for _, op := range []string{"store", "load", "history"} {
		CacheOperationsTotal.WithLabelValues(op, "success")
		CacheOperationsTotal.WithLabelValues(op, "error")
		CacheQueryDuration.WithLabelValues(op)
	}

	for _, channel := range []string{"whatsapp", "call"} {
		ContactLinksTotal.WithLabelValues(channel)
	}
}
