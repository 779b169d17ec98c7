package catalog

import (
	"testing"
	"time"

	"showroom-gallery/internal/manifest"
)

func testResult(items ...manifest.Item) manifest.LoadResult {
	return manifest.LoadResult{
		Items:    items,
		Source:   manifest.SourceJSON,
		LoadedAt: time.Now(),
	}
}

func TestCatalogStartsEmpty(t *testing.T) {
	t.Parallel()

	cat := New(manifest.DefaultRules())
	snap := cat.Snapshot()

	if len(snap.Items) != 0 {
		t.Errorf("expected empty initial snapshot, got %d items", len(snap.Items))
	}
	if snap.Source != manifest.SourceNone || !snap.Degraded {
		t.Errorf("expected degraded none-source snapshot, got %s/%v", snap.Source, snap.Degraded)
	}
}

func TestCatalogReplaceInstallsNewSnapshot(t *testing.T) {
	t.Parallel()

	cat := New(manifest.DefaultRules())
	before := cat.Snapshot()

	cat.Replace(testResult(
		manifest.Item{ID: 1, Src: "/a.jpg", Category: "مغاسل"},
		manifest.Item{ID: 2, Src: "/b.jpg", Tags: "لامع"},
	))
	after := cat.Snapshot()

	if before == after {
		t.Error("Replace did not install a new snapshot")
	}
	if len(after.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(after.Items))
	}
	// Facets are computed once at install time.
	if len(after.Facets.Categories) != 1 || after.Facets.Categories[0] != "مغاسل" {
		t.Errorf("unexpected facets: %+v", after.Facets)
	}
	if len(after.Facets.Tags) != 1 || after.Facets.Tags[0] != "لامع" {
		t.Errorf("unexpected tag facets: %+v", after.Facets)
	}
}

func TestCatalogFindItem(t *testing.T) {
	t.Parallel()

	cat := New(manifest.DefaultRules())
	cat.Replace(testResult(
		manifest.Item{ID: 1, RID: "A-100", Src: "/a.jpg"},
		manifest.Item{ID: 2, Src: "/b.jpg"},
	))

	tests := []struct {
		name       string
		key        string
		expectedID int64
		found      bool
	}{
		{"By rid", "A-100", 1, true},
		{"By numeric id", "2", 2, true},
		{"Rid preferred over id text", "1", 1, true},
		{"Missing", "nope", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := cat.FindItem(tt.key)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && item.ID != tt.expectedID {
				t.Errorf("expected item %d, got %d", tt.expectedID, item.ID)
			}
		})
	}
}
