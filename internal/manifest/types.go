package manifest

// ItemType represents the kind of media an item points at.
type ItemType string

const (
	// ItemTypeImage represents a still image.
	ItemTypeImage ItemType = "image"
	// ItemTypeVideo represents a video clip.
	ItemTypeVideo ItemType = "video"
)

// SentinelCategory is the placeholder value meaning "uncategorized". It is
// stripped during normalization and must never surface as a real category,
// tag, or facet.
const SentinelCategory = "غير مصنف"

// Header is the canonical CSV column order for the fallback manifest.
var Header = []string{
	"id", "rid", "name", "displayName", "category", "type", "src",
	"original_ext", "folder", "tags", "colorName", "colorHex", "year", "month",
}

// RawItem is one manifest entry as delivered by either source, before
// normalization. All fields except ID are carried as strings because the CSV
// fallback has no types; the JSON source decodes into the same shape.
type RawItem struct {
	ID          int64  `json:"id"`
	RID         string `json:"rid,omitempty"`
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Category    string `json:"category,omitempty"`
	Type        string `json:"type,omitempty"`
	Src         string `json:"src"`
	OriginalExt string `json:"original_ext,omitempty"`
	Folder      string `json:"folder,omitempty"`
	Tags        string `json:"tags,omitempty"`
	ColorName   string `json:"colorName,omitempty"`
	ColorHex    string `json:"colorHex,omitempty"`
	Year        string `json:"year,omitempty"`
	Month       string `json:"month,omitempty"`
}

// Item is one normalized gallery entry. Items are built once per load and
// replaced wholesale on reload, never mutated field by field.
type Item struct {
	ID          int64    `json:"id"`
	RID         string   `json:"rid,omitempty"`
	Name        string   `json:"name,omitempty"`
	DisplayName string   `json:"displayName"`
	Category    string   `json:"category,omitempty"`
	Type        ItemType `json:"type"`
	Src         string   `json:"src"`
	OriginalExt string   `json:"original_ext,omitempty"`
	// Folder is the original source directory. Retained on the record but
	// never surfaced in rendered output.
	Folder    string `json:"folder,omitempty"`
	Tags      string `json:"tags,omitempty"`
	ColorName string `json:"colorName,omitempty"`
	ColorHex  string `json:"colorHex,omitempty"`
	Year      string `json:"year,omitempty"`
	Month     string `json:"month,omitempty"`
}

// DisplayID returns the identifier preferred for display: rid when present,
// otherwise the numeric id.
func (it Item) DisplayID() string {
	if it.RID != "" {
		return it.RID
	}
	return formatID(it.ID)
}

// TagList returns the item's tags split on commas, trimmed, with empty and
// sentinel tokens removed.
func (it Item) TagList() []string {
	return splitTags(it.Tags)
}

// Facets is the distinct set of filterable attribute values present across a
// set of items.
type Facets struct {
	Tags       []string `json:"tags"`
	Colors     []string `json:"colors"`
	Categories []string `json:"categories"`
}
