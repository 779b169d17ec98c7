// Package catalog owns the gallery's in-memory state: an immutable snapshot
// of normalized items replaced wholesale on each manifest load, a reloader
// that keeps it fresh, and a SQLite cache of the last known good snapshot
// for when every remote source is unreachable.
package catalog
