package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"showroom-gallery/internal/catalog"
	"showroom-gallery/internal/contact"
	"showroom-gallery/internal/manifest"
)

// staticLoader serves a fixed result for handler tests.
type staticLoader struct {
	result manifest.LoadResult
}

func (s *staticLoader) Load(_ context.Context) (manifest.LoadResult, error) {
	result := s.result
	result.LoadedAt = time.Now()
	return result, nil
}

func newTestHandlers(t *testing.T, items ...manifest.Item) *Handlers {
	t.Helper()

	cat := catalog.New(manifest.DefaultRules())
	loader := &staticLoader{result: manifest.LoadResult{Items: items, Source: manifest.SourceJSON}}
	reloader := catalog.NewReloader(cat, loader, nil, 0)
	reloader.Start(context.Background())

	return New(cat, reloader, nil, contact.New("966501234567"))
}

func testItems() []manifest.Item {
	return []manifest.Item{
		{ID: 1, RID: "A-100", Name: "grey slab", DisplayName: "رخام و سيراميك رمادي",
			Category: "رخام و سيراميك", ColorName: "رمادي", Tags: "لامع", Src: "/a.jpg", Type: manifest.ItemTypeImage},
		{ID: 2, Name: "basin", DisplayName: "مغاسل", Category: "مغاسل", Src: "/b.jpg", Type: manifest.ItemTypeImage},
		{ID: 3, Name: "tour video", DisplayName: "tour", Src: "/c.mp4", Type: manifest.ItemTypeVideo},
	}
}

func doListItems(t *testing.T, h *Handlers, target string) ItemsResult {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ListItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var result ItemsResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	return result
}

func TestListItemsNoFilters(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, testItems()...)
	result := doListItems(t, h, "/api/items")

	if result.TotalItems != 3 || len(result.Items) != 3 {
		t.Errorf("expected all 3 items, got total=%d len=%d", result.TotalItems, len(result.Items))
	}
	if result.Source != manifest.SourceJSON || result.Degraded {
		t.Errorf("expected healthy json source, got %s/%v", result.Source, result.Degraded)
	}
	// Original manifest order.
	if result.Items[0].ID != 1 || result.Items[2].ID != 3 {
		t.Errorf("unexpected item order: %+v", result.Items)
	}
}

func TestListItemsQueryAndChips(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, testItems()...)

	tests := []struct {
		name        string
		target      string
		expectedIDs []int64
	}{
		{"Free text query", "/api/items?q=slab", []int64{1}},
		{"Tag chip", "/api/items?tag=لامع", []int64{1}},
		{"Color as tag chip", "/api/items?tag=رمادي", []int64{1}},
		{"Category chip", "/api/items?category=مغاسل", []int64{2}},
		{"Conjunction", "/api/items?q=grey&tag=لامع", []int64{1}},
		{"Conjunction excludes partial matches", "/api/items?q=basin&tag=لامع", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := doListItems(t, h, tt.target)
			if len(result.Items) != len(tt.expectedIDs) {
				t.Fatalf("expected %d items, got %d", len(tt.expectedIDs), len(result.Items))
			}
			for i, id := range tt.expectedIDs {
				if result.Items[i].ID != id {
					t.Errorf("item %d: expected id %d, got %d", i, id, result.Items[i].ID)
				}
			}
		})
	}
}

func TestListItemsPagination(t *testing.T) {
	t.Parallel()

	var items []manifest.Item
	for i := 1; i <= 7; i++ {
		items = append(items, manifest.Item{ID: int64(i), Src: "/x.jpg", Type: manifest.ItemTypeImage})
	}
	h := newTestHandlers(t, items...)

	result := doListItems(t, h, "/api/items?page=2&pageSize=3")
	if result.TotalItems != 7 || result.TotalPages != 3 {
		t.Errorf("expected 7 items over 3 pages, got %d/%d", result.TotalItems, result.TotalPages)
	}
	if len(result.Items) != 3 || result.Items[0].ID != 4 {
		t.Errorf("unexpected page 2 contents: %+v", result.Items)
	}

	// Past-the-end page returns an empty slice, not an error.
	result = doListItems(t, h, "/api/items?page=9&pageSize=3")
	if len(result.Items) != 0 {
		t.Errorf("expected empty past-the-end page, got %d items", len(result.Items))
	}
}

func TestGetItem(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, testItems()...)
	router := mux.NewRouter()
	router.HandleFunc("/api/items/{id}", h.GetItem).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/api/items/A-100", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var item manifest.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	if item.ID != 1 {
		t.Errorf("expected item 1, got %d", item.ID)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/items/missing", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing item, got %d", rec.Code)
	}
}

func TestGetFacets(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, testItems()...)

	req := httptest.NewRequest(http.MethodGet, "/api/facets", nil)
	rec := httptest.NewRecorder()
	h.GetFacets(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var facets manifest.Facets
	if err := json.Unmarshal(rec.Body.Bytes(), &facets); err != nil {
		t.Fatalf("response does not decode: %v", err)
	}
	if len(facets.Categories) != 2 || facets.Categories[0] != "مغاسل" {
		t.Errorf("unexpected category facets: %v", facets.Categories)
	}
}

// An empty catalog renders as an empty listing, never an error.
func TestListItemsEmptyCatalog(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t)
	result := doListItems(t, h, "/api/items")
	if result.TotalItems != 0 || len(result.Items) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}
