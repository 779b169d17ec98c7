package manifest

import "strings"

// Filter computes the subset of items matching every selection. It is pure
// and re-entrant: safe to call on every request with no shared state.
//
// An item is included when all of the following hold:
//   - query is empty, or the trimmed query occurs case-sensitively anywhere
//     in the space-joined concatenation of the item's display id, category,
//     color name, raw name, and display name;
//   - tags is empty, or at least one selected value appears in the item's tag
//     list or equals its color name (tags and colors share one selection);
//   - categories is empty, or the item's category (empty string when absent)
//     is one of the selected categories.
func Filter(items []Item, query string, tags, categories []string) []Item {
	query = strings.TrimSpace(query)

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !matchesQuery(it, query) {
			continue
		}
		if !matchesTags(it, tags) {
			continue
		}
		if !matchesCategories(it, categories) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesQuery(it Item, query string) bool {
	if query == "" {
		return true
	}
	haystack := strings.Join([]string{
		it.DisplayID(), it.Category, it.ColorName, it.Name, it.DisplayName,
	}, " ")
	return strings.Contains(haystack, query)
}

func matchesTags(it Item, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	itemTags := it.TagList()
	for _, want := range selected {
		if want == it.ColorName && want != "" {
			return true
		}
		for _, have := range itemTags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func matchesCategories(it Item, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, want := range selected {
		if it.Category == want {
			return true
		}
	}
	return false
}
