package gallery

// Mode is the current interaction context of a Gallery.
type Mode string

const (
	// ModeGallery is the paging mode: swipe between images, overlays visible.
	ModeGallery Mode = "gallery"
	// ModeImagePreview focuses a single image; per-image overlays are hidden.
	ModeImagePreview Mode = "imagePreview"
)

// Toggle returns the mode a tap on the image switches to.
func (m Mode) Toggle() Mode {
	if m == ModeImagePreview {
		return ModeGallery
	}
	return ModeImagePreview
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// SelectionState is the mutable state of a Gallery.
type SelectionState struct {
	SelectedIndex int
	// ImageSwitchingEnabled gates paging. Nothing in this package clears it;
	// it is forwarded to the pager as ScrollEnabled.
	ImageSwitchingEnabled bool
	Mode                  Mode
}
