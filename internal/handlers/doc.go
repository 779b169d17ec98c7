// Package handlers implements the HTTP API: filtered item listings, facet
// extraction, manifest status and reload operations, outbound contact deep
// links, and health probes.
package handlers
