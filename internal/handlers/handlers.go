package handlers

import (
	"time"

	"golang.org/x/time/rate"

	"showroom-gallery/internal/catalog"
	"showroom-gallery/internal/contact"
)

// Handlers bundles the HTTP handlers and their dependencies.
type Handlers struct {
	catalog  *catalog.Catalog
	reloader *catalog.Reloader
	cache    *catalog.Cache // may be nil
	contact  contact.Contact

	// reloadLimiter throttles manual reload triggers so a misbehaving
	// client cannot hammer the manifest sources.
	reloadLimiter *rate.Limiter
}

// New creates the handler set.
func New(cat *catalog.Catalog, reloader *catalog.Reloader, cache *catalog.Cache, c contact.Contact) *Handlers {
	return &Handlers{
		catalog:       cat,
		reloader:      reloader,
		cache:         cache,
		contact:       c,
		reloadLimiter: rate.NewLimiter(rate.Every(10*time.Second), 2),
	}
}
