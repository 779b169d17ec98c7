// Package metrics defines the Prometheus metrics exported by the gallery
// service: HTTP request metrics, manifest load outcomes, catalog query
// counters, snapshot cache timings, and outbound contact link counts.
package metrics
