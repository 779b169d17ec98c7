package manifest

import (
	"reflect"
	"testing"
)

func filterFixture() []Item {
	return []Item{
		{ID: 1, RID: "A-100", Name: "grey slab", DisplayName: "رخام و سيراميك رمادي",
			Category: "رخام و سيراميك", ColorName: "رمادي", Tags: "لامع, مصقول", Src: "/a.jpg"},
		{ID: 2, Name: "basin white", DisplayName: "مغاسل أبيض",
			Category: "مغاسل", ColorName: "أبيض", Tags: "مطفي", Src: "/b.jpg"},
		{ID: 3, Name: "fire place", DisplayName: "مشبات",
			Category: "مشبات", Src: "/c.jpg"},
	}
}

// Empty selections pass every item through unchanged, in order.
func TestFilterEmptySelectionPassthrough(t *testing.T) {
	t.Parallel()

	items := filterFixture()
	got := Filter(items, "", nil, nil)
	if !reflect.DeepEqual(got, items) {
		t.Errorf("expected passthrough, got %v", got)
	}
}

func TestFilterQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected []int64
	}{
		{"Matches raw name", "slab", []int64{1}},
		{"Matches display identifier", "A-100", []int64{1}},
		{"Matches numeric id", "3", []int64{3}},
		{"Matches category substring", "مغاسل", []int64{2}},
		{"Matches color", "أبيض", []int64{2}},
		{"Surrounding whitespace trimmed", "  slab  ", []int64{1}},
		{"Case sensitive", "SLAB", nil},
		{"No match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(filterFixture(), tt.query, nil, nil)
			ids := itemIDs(got)
			if !reflect.DeepEqual(ids, tt.expected) {
				t.Errorf("query %q: expected %v, got %v", tt.query, tt.expected, ids)
			}
		})
	}
}

func TestFilterTagsAndColorsShareSelection(t *testing.T) {
	t.Parallel()

	// A selected value matches either a tag token or the color name.
	got := Filter(filterFixture(), "", []string{"لامع"}, nil)
	if ids := itemIDs(got); !reflect.DeepEqual(ids, []int64{1}) {
		t.Errorf("tag selection: expected [1], got %v", ids)
	}

	got = Filter(filterFixture(), "", []string{"أبيض"}, nil)
	if ids := itemIDs(got); !reflect.DeepEqual(ids, []int64{2}) {
		t.Errorf("color selection: expected [2], got %v", ids)
	}

	// Any selected value is enough (disjunctive within the tag set).
	got = Filter(filterFixture(), "", []string{"لامع", "مطفي"}, nil)
	if ids := itemIDs(got); !reflect.DeepEqual(ids, []int64{1, 2}) {
		t.Errorf("multi selection: expected [1 2], got %v", ids)
	}
}

func TestFilterCategories(t *testing.T) {
	t.Parallel()

	got := Filter(filterFixture(), "", nil, []string{"مشبات"})
	if ids := itemIDs(got); !reflect.DeepEqual(ids, []int64{3}) {
		t.Errorf("expected [3], got %v", ids)
	}

	// An item without a category matches a selected empty string.
	items := append(filterFixture(), Item{ID: 4, Src: "/d.jpg", Name: "uncategorized"})
	got = Filter(items, "", nil, []string{""})
	if ids := itemIDs(got); !reflect.DeepEqual(ids, []int64{4}) {
		t.Errorf("expected [4], got %v", ids)
	}
}

// Conjunction across dimensions: with both a query and a tag selected, only
// the item satisfying both survives.
func TestFilterConjunction(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 1, Name: "query-only match", Src: "/a.jpg"},
		{ID: 2, Name: "other", Tags: "wanted", Src: "/b.jpg"},
		{ID: 3, Name: "query match too", Tags: "wanted", Src: "/c.jpg"},
	}

	got := Filter(items, "query", []string{"wanted"}, nil)
	if ids := itemIDs(got); !reflect.DeepEqual(ids, []int64{3}) {
		t.Errorf("expected only the item matching both, got %v", ids)
	}
}

func TestFilterReentrant(t *testing.T) {
	t.Parallel()

	items := filterFixture()
	first := Filter(items, "slab", nil, nil)
	second := Filter(items, "slab", nil, nil)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated filtering of the same inputs diverged")
	}
	// The source slice is never mutated.
	if !reflect.DeepEqual(items, filterFixture()) {
		t.Error("filtering mutated its input")
	}
}

func itemIDs(items []Item) []int64 {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
