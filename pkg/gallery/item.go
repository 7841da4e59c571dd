// Package gallery implements the state and page rendering behind a swipeable
// image gallery: a two-mode state machine (gallery / image preview), the
// index-selection protocol used by a pager, and the per-page rendering policy
// that decides which image and overlay visuals to produce.
//
// Paging mechanics and image drawing are supplied by the host through the
// Pager and ImageRenderer interfaces.
package gallery

// Source locates the image for an item.
type Source struct {
	URI string `json:"uri" yaml:"uri" toml:"uri"`
}

// Item is one entry of the gallery. Its identity is its position in the
// slice handed to New or SetItems.
type Item struct {
	Source      Source `json:"source" yaml:"source" toml:"source"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// HasSource reports whether the item carries a resolvable image URI.
func (i Item) HasSource() bool {
	return i.Source.URI != ""
}
