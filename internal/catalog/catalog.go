package catalog

import (
	"strconv"
	"sync/atomic"
	"time"

	"showroom-gallery/internal/manifest"
)

// Snapshot is one immutable view of the catalog: the normalized items, their
// derived facets, and the provenance of the load that produced them. A
// snapshot is never mutated after construction; reloads install a new one.
type Snapshot struct {
	Items    []manifest.Item `json:"items"`
	Facets   manifest.Facets `json:"facets"`
	Source   manifest.Source `json:"source"`
	Degraded bool            `json:"degraded"`
	LoadedAt time.Time       `json:"loadedAt"`
}

// Catalog holds the current snapshot. Readers always see a complete,
// consistent snapshot; replacement is a single atomic pointer swap.
type Catalog struct {
	current    atomic.Pointer[Snapshot]
	normalizer *manifest.Normalizer
}

// New creates an empty catalog using the given normalization rules for
// facet extraction.
func New(rules manifest.Rules) *Catalog {
	c := &Catalog{normalizer: manifest.NewNormalizer(rules)}
	c.current.Store(&Snapshot{Source: manifest.SourceNone, Degraded: true})
	return c
}

// Snapshot returns the current snapshot. The returned value must be treated
// as read-only.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Replace installs a new snapshot built from a load result, precomputing the
// facets once per load rather than per request.
func (c *Catalog) Replace(result manifest.LoadResult) *Snapshot {
	snap := &Snapshot{
		Items:    result.Items,
		Facets:   c.normalizer.ExtractFacets(result.Items),
		Source:   result.Source,
		Degraded: result.Degraded,
		LoadedAt: result.LoadedAt,
	}
	c.current.Store(snap)
	return snap
}

// FindItem returns the item whose rid or numeric id matches key, preferring
// rid matches.
func (c *Catalog) FindItem(key string) (manifest.Item, bool) {
	snap := c.Snapshot()
	for _, it := range snap.Items {
		if it.RID != "" && it.RID == key {
			return it, true
		}
	}
	for _, it := range snap.Items {
		if strconv.FormatInt(it.ID, 10) == key {
			return it, true
		}
	}
	return manifest.Item{}, false
}
