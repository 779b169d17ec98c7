package manifest

import (
	"net/url"
	"regexp"
	"strings"
)

// CategoryRule associates a category label with the path keywords that imply
// it. Keywords are matched as substrings of the decoded folder+src text.
type CategoryRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Rules carries the reference data driving normalization and faceting. The
// zero value is not usable; start from DefaultRules.
type Rules struct {
	// Sentinel is the placeholder category meaning "uncategorized".
	Sentinel string `yaml:"sentinel"`
	// Categories is the closed category set in fixed display priority order.
	// The same order drives inference priority and facet ordering.
	Categories []CategoryRule `yaml:"categories"`
	// NamePrefixes are camera/export artifacts stripped from raw names when
	// synthesizing a display name.
	NamePrefixes []string `yaml:"namePrefixes"`
}

// DefaultRules returns the showroom's built-in reference data.
func DefaultRules() Rules {
	return Rules{
		Sentinel: SentinelCategory,
		Categories: []CategoryRule{
			{Label: "مغاسل", Keywords: []string{"مغاسل", "مغسلة"}},
			{Label: "رخام و سيراميك", Keywords: []string{"رخام", "سيراميك"}},
			{Label: "درج وطاولات", Keywords: []string{"درج", "طاولات", "طاولة"}},
			{Label: "مشبات", Keywords: []string{"مشبات", "مشب"}},
		},
		NamePrefixes: []string{
			"whatsapp image", "whatsapp video", "screenshot",
			"img-", "img_", "vid-", "vid_", "photo-", "photo_",
		},
	}
}

// CategoryLabels returns the category labels in reference order.
func (r Rules) CategoryLabels() []string {
	labels := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		labels[i] = c.Label
	}
	return labels
}

// Normalizer turns raw manifest entries into clean gallery items.
type Normalizer struct {
	rules Rules
}

// NewNormalizer creates a Normalizer with the given rules.
func NewNormalizer(rules Rules) *Normalizer {
	return &Normalizer{rules: rules}
}

// Normalize runs the default normalization pipeline.
func Normalize(raw []RawItem) []Item {
	return NewNormalizer(DefaultRules()).Normalize(raw)
}

var yearMonthPattern = regexp.MustCompile(`/(20\d{2})/(\d{2})/`)

// Normalize maps raw entries to items, dropping junk files and entries with
// an empty source path. The function is pure and deterministic; output order
// follows input order, and re-normalizing already-normalized items is a
// no-op.
func (n *Normalizer) Normalize(raw []RawItem) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		src := encodePath(r.Src)
		if strings.TrimSpace(src) == "" || isJunkPath(src) {
			continue
		}

		it := Item{
			ID:          r.ID,
			RID:         r.RID,
			Name:        r.Name,
			Category:    r.Category,
			Type:        itemType(r.Type),
			Src:         src,
			OriginalExt: r.OriginalExt,
			Folder:      r.Folder,
			Tags:        r.Tags,
			ColorName:   r.ColorName,
			ColorHex:    r.ColorHex,
			Year:        r.Year,
			Month:       r.Month,
		}

		if it.Year == "" || strings.HasPrefix(strings.ToLower(it.Year), "unknown") {
			if m := yearMonthPattern.FindStringSubmatch(src); m != nil {
				it.Year, it.Month = m[1], m[2]
			}
		}

		if it.Category == "" || it.Category == n.rules.Sentinel {
			it.Category = n.inferCategory(r.Folder, src)
		}

		it.DisplayName = n.displayName(it)

		items = append(items, it)
	}
	return items
}

// inferCategory scans the decoded folder and source path for the first
// category whose keywords occur as a substring, in reference order. Returns
// "" when nothing matches.
func (n *Normalizer) inferCategory(folder, src string) string {
	haystack := decodeLoose(folder) + "/" + decodeLoose(src)
	for _, c := range n.rules.Categories {
		for _, kw := range c.Keywords {
			if strings.Contains(haystack, kw) {
				return c.Label
			}
		}
	}
	return ""
}

// displayName synthesizes the human-facing label: category with color, then
// category alone, then color alone, then the cleaned raw name.
func (n *Normalizer) displayName(it Item) string {
	switch {
	case it.Category != "" && it.ColorName != "":
		return it.Category + " " + it.ColorName
	case it.Category != "":
		return it.Category
	case it.ColorName != "":
		return it.ColorName
	default:
		return n.cleanName(it.Name)
	}
}

var (
	mediaExtPattern  = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|bmp|heic|heif|mp4|mov|avi|mkv|webm|m4v)$`)
	timestampPattern = regexp.MustCompile(`[-_ .]?\d{6,}$`)
	separatorRuns    = regexp.MustCompile(`[-_.]+| {2,}`)
)

// cleanName strips camera-upload prefixes, media extensions, and trailing
// numeric timestamp suffixes from a raw file-derived name, then collapses
// separator runs to single spaces.
func (n *Normalizer) cleanName(name string) string {
	s := strings.TrimSpace(name)
	lower := strings.ToLower(s)
	for _, p := range n.rules.NamePrefixes {
		if strings.HasPrefix(lower, p) {
			s = s[len(p):]
			break
		}
	}
	s = mediaExtPattern.ReplaceAllString(s, "")
	for {
		stripped := timestampPattern.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = separatorRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// encodePath percent-encodes each path segment independently, leaving
// absolute http(s) URLs untouched. Already-encoded segments are decoded
// first so the operation is idempotent.
func encodePath(src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	segments := strings.Split(src, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = url.PathEscape(decodeLoose(seg))
	}
	return strings.Join(segments, "/")
}

// decodeLoose percent-decodes s, falling back to the raw string when the
// input is not valid percent-encoding.
func decodeLoose(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// junkSuffixes are lower-cased path endings for OS metadata, thumbnail
// caches, and image containers the gallery cannot render.
var junkSuffixes = []string{".ds_store", ".heic", ".heif", "thumbs.db"}

// isJunkPath reports whether a source path points at a file that should never
// appear in the gallery: macOS resource forks, OS metadata files, Windows
// thumbnail caches, and unsupported image containers.
func isJunkPath(src string) bool {
	lower := strings.ToLower(src)
	if strings.Contains(lower, "/._") || strings.HasPrefix(lower, "._") {
		return true
	}
	for _, suffix := range junkSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func itemType(raw string) ItemType {
	if strings.EqualFold(strings.TrimSpace(raw), string(ItemTypeVideo)) {
		return ItemTypeVideo
	}
	return ItemTypeImage
}

// splitTags splits a comma-separated tag string into trimmed, non-empty,
// non-sentinel tokens.
func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == SentinelCategory {
			continue
		}
		out = append(out, p)
	}
	return out
}
