// Package manifest implements the gallery's data pipeline: fetching the
// media manifest from its JSON source with a CSV fallback, tokenizing the
// CSV fallback format, normalizing raw entries into gallery items, deriving
// filter facets, and computing filtered views.
//
// Everything past the loader is pure: Normalize, ExtractFacets, and Filter
// are deterministic functions of their inputs with no I/O and no hidden
// state, so callers may recompute them on every request.
package manifest
