// Package middleware provides the HTTP middleware chain: request logging,
// Prometheus metrics, and gzip compression.
package middleware
