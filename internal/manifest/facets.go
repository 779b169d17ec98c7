package manifest

import "sort"

// ExtractFacets derives the distinct filterable values across items using the
// default rules.
func ExtractFacets(items []Item) Facets {
	return NewNormalizer(DefaultRules()).ExtractFacets(items)
}

// ExtractFacets returns the union of tag tokens, color names, and categories
// present across items. Tags and colors sort lexicographically; categories
// follow the reference order from the rules, with unknown categories after
// all reference entries.
func (n *Normalizer) ExtractFacets(items []Item) Facets {
	tagSet := make(map[string]struct{})
	colorSet := make(map[string]struct{})
	categorySet := make(map[string]struct{})

	for _, it := range items {
		for _, tag := range it.TagList() {
			tagSet[tag] = struct{}{}
		}
		if it.ColorName != "" {
			colorSet[it.ColorName] = struct{}{}
		}
		if it.Category != "" && it.Category != n.rules.Sentinel {
			categorySet[it.Category] = struct{}{}
		}
	}

	return Facets{
		Tags:       sortedKeys(tagSet),
		Colors:     sortedKeys(colorSet),
		Categories: n.orderCategories(categorySet),
	}
}

// orderCategories sorts present categories by their position in the reference
// list; categories outside the list sort after every reference entry.
func (n *Normalizer) orderCategories(present map[string]struct{}) []string {
	rank := make(map[string]int, len(n.rules.Categories))
	for i, c := range n.rules.Categories {
		rank[c.Label] = i
	}

	out := make([]string, 0, len(present))
	for c := range present {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, iKnown := rank[out[i]]
		rj, jKnown := rank[out[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
