// Package storage provides a manifest fetcher for manifests hosted on
// S3-compatible object storage.
package storage
