package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"showroom-gallery/internal/logging"
	"showroom-gallery/internal/manifest"
	"showroom-gallery/internal/metrics"
)

// ManifestLoader is the part of the manifest loader the reloader depends on.
type ManifestLoader interface {
	Load(ctx context.Context) (manifest.LoadResult, error)
}

// Reloader keeps the catalog snapshot fresh: an initial load at startup, a
// periodic refresh, and on-demand reloads. Concurrent reload requests are
// collapsed into a single in-flight load.
type Reloader struct {
	catalog  *Catalog
	loader   ManifestLoader
	cache    *Cache // may be nil when no cache directory is available
	interval time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
	group    singleflight.Group

	mu                  sync.Mutex
	loading             bool
	lastLoadTime        time.Time
	initialLoadComplete bool
	initialLoadError    error
	startTime           time.Time
}

// HealthStatus describes the reloader's view of service health. The service
// is ready once the initial load attempt has completed; an empty catalog is
// a valid degenerate state, not a failure.
type HealthStatus struct {
	Ready            bool            `json:"ready"`
	Loading          bool            `json:"loading"`
	Uptime           string          `json:"uptime"`
	LastLoaded       time.Time       `json:"lastLoaded,omitempty"`
	InitialLoadError string          `json:"initialLoadError,omitempty"`
	Source           manifest.Source `json:"source"`
	Degraded         bool            `json:"degraded"`
	ItemCount        int             `json:"itemCount"`
}

// NewReloader creates a Reloader. cache may be nil.
func NewReloader(cat *Catalog, loader ManifestLoader, cache *Cache, interval time.Duration) *Reloader {
	return &Reloader{
		catalog:   cat,
		loader:    loader,
		cache:     cache,
		interval:  interval,
		stopChan:  make(chan struct{}),
		startTime: time.Now(),
	}
}

// Start performs the initial load and then refreshes on the configured
// interval until Stop is called. It blocks until the initial load attempt
// completes, so callers can gate readiness on it; run it in a goroutine when
// that is not wanted.
func (r *Reloader) Start(ctx context.Context) {
	logging.Info("Starting initial manifest load...")
	_, err := r.Reload(ctx)

	r.mu.Lock()
	r.initialLoadComplete = true
	r.initialLoadError = err
	r.mu.Unlock()

	if err != nil {
		logging.Error("Initial manifest load failed: %v", err)
	}

	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := r.Reload(ctx); err != nil {
				logging.Error("Scheduled manifest reload failed: %v", err)
			}
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop halts periodic reloading. Safe to call more than once.
func (r *Reloader) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
}

// Reload loads the manifest and installs the resulting snapshot. When both
// remote sources fail, the last known good cached snapshot is served as a
// deeper degraded level before giving up with an empty set. Concurrent
// callers share one load.
func (r *Reloader) Reload(ctx context.Context) (*Snapshot, error) {
	v, err, _ := r.group.Do("reload", func() (interface{}, error) {
		return r.reload(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (r *Reloader) reload(ctx context.Context) (*Snapshot, error) {
	r.setLoading(true)
	defer r.setLoading(false)

	result, err := r.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if result.Source == manifest.SourceNone {
		result = r.cacheFallback(ctx, result)
	} else if len(result.Items) > 0 {
		r.storeCache(ctx, result)
	}

	snap := r.catalog.Replace(result)

	r.mu.Lock()
	r.lastLoadTime = snap.LoadedAt
	r.mu.Unlock()

	metrics.ManifestItems.Set(float64(len(snap.Items)))
	metrics.ManifestLastLoadTimestamp.Set(float64(snap.LoadedAt.Unix()))
	if snap.Degraded {
		metrics.ManifestDegraded.Set(1)
	} else {
		metrics.ManifestDegraded.Set(0)
	}

	logging.Info("Manifest loaded: %d items from %s (degraded=%v)",
		len(snap.Items), snap.Source, snap.Degraded)
	return snap, nil
}

// cacheFallback swaps an empty remote result for the cached snapshot when
// one exists.
func (r *Reloader) cacheFallback(ctx context.Context, result manifest.LoadResult) manifest.LoadResult {
	if r.cache == nil {
		return result
	}
	items, err := r.cache.Load(ctx)
	if err != nil {
		logging.Warn("Snapshot cache read failed: %v", err)
		return result
	}
	if len(items) == 0 {
		return result
	}
	logging.Warn("Both manifest sources failed; serving %d items from snapshot cache", len(items))
	result.Items = items
	result.Source = manifest.SourceCache
	result.Degraded = true
	return result
}

func (r *Reloader) storeCache(ctx context.Context, result manifest.LoadResult) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Store(ctx, result); err != nil {
		logging.Warn("Snapshot cache write failed: %v", err)
	}
}

func (r *Reloader) setLoading(v bool) {
	r.mu.Lock()
	r.loading = v
	r.mu.Unlock()
}

// GetHealthStatus returns the current health view.
func (r *Reloader) GetHealthStatus() HealthStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.catalog.Snapshot()
	status := HealthStatus{
		Ready:      r.initialLoadComplete,
		Loading:    r.loading,
		Uptime:     time.Since(r.startTime).String(),
		LastLoaded: r.lastLoadTime,
		Source:     snap.Source,
		Degraded:   snap.Degraded,
		ItemCount:  len(snap.Items),
	}
	if r.initialLoadError != nil {
		status.InitialLoadError = r.initialLoadError.Error()
	}
	return status
}
