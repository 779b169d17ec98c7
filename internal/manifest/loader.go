package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"showroom-gallery/internal/logging"
	"showroom-gallery/internal/metrics"
)

// Source identifies which manifest source produced a load result.
type Source string

const (
	// SourceJSON is the primary JSON manifest.
	SourceJSON Source = "json"
	// SourceCSV is the CSV fallback manifest.
	SourceCSV Source = "csv"
	// SourceCache is the last-known-good local cache.
	SourceCache Source = "cache"
	// SourceNone means no source yielded any items.
	SourceNone Source = "none"
)

// LoadResult is the outcome of one manifest load. An empty item list is a
// valid degenerate state, not an error; Degraded records that the primary
// JSON path was not the one that served the items.
type LoadResult struct {
	Items    []Item    `json:"items"`
	Source   Source    `json:"source"`
	Degraded bool      `json:"degraded"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Fetcher retrieves the raw bytes of a manifest resource.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher fetches manifests over HTTP with caching disabled.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a conservative request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch retrieves rawURL with no-store cache semantics. Non-2xx responses
// are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return body, nil
}

// Loader fetches, decodes, and normalizes the manifest, falling back from
// the JSON source to the CSV source.
type Loader struct {
	jsonURL    string
	csvURL     string
	normalizer *Normalizer
	fetchers   map[string]Fetcher
	fallback   Fetcher
}

// NewLoader creates a Loader for the given source URLs. The default HTTP
// fetcher serves every scheme until others are registered.
func NewLoader(jsonURL, csvURL string, rules Rules) *Loader {
	return &Loader{
		jsonURL:    jsonURL,
		csvURL:     csvURL,
		normalizer: NewNormalizer(rules),
		fetchers:   make(map[string]Fetcher),
		fallback:   NewHTTPFetcher(),
	}
}

// RegisterFetcher routes URLs with the given scheme (e.g. "s3") through an
// alternate fetcher.
func (l *Loader) RegisterFetcher(scheme string, f Fetcher) {
	l.fetchers[strings.ToLower(scheme)] = f
}

// Load attempts the JSON manifest first; on failure or an empty decoded
// array it falls back to the CSV manifest. Both sources failing yields an
// empty, degraded result rather than an error. Only context cancellation is
// surfaced to the caller.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	start := time.Now()

	items, source := l.loadRaw(ctx)
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}

	result := LoadResult{
		Items:    items,
		Source:   source,
		Degraded: source != SourceJSON || len(items) == 0,
		LoadedAt: time.Now(),
	}

	status := "success"
	if result.Source == SourceNone {
		status = "empty"
	}
	metrics.ManifestLoadsTotal.WithLabelValues(string(result.Source), status).Inc()
	metrics.ManifestLoadDuration.Observe(time.Since(start).Seconds())

	return result, nil
}

func (l *Loader) loadRaw(ctx context.Context) ([]Item, Source) {
	if body, err := l.fetch(ctx, l.jsonURL); err != nil {
		logging.Warn("Primary manifest fetch failed: %v", err)
	} else {
		var raw []RawItem
		if err := json.Unmarshal(body, &raw); err != nil {
			logging.Warn("Primary manifest decode failed: %v", err)
		} else if len(raw) > 0 {
			return l.normalizer.Normalize(raw), SourceJSON
		} else {
			logging.Warn("Primary manifest decoded to an empty array")
		}
	}

	if body, err := l.fetch(ctx, l.csvURL); err != nil {
		logging.Warn("Fallback manifest fetch failed: %v", err)
	} else {
		records := RecordsFromCSV(string(body))
		if len(records) > 0 {
			raw := make([]RawItem, 0, len(records))
			for i, rec := range records {
				raw = append(raw, RawItemFromRecord(rec, i+1))
			}
			return l.normalizer.Normalize(raw), SourceCSV
		}
		logging.Warn("Fallback manifest contained no records")
	}

	return nil, SourceNone
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("no manifest URL configured")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest URL %q: %w", rawURL, err)
	}
	if f, ok := l.fetchers[strings.ToLower(u.Scheme)]; ok {
		return f.Fetch(ctx, rawURL)
	}
	return l.fallback.Fetch(ctx, rawURL)
}
