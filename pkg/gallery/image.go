package gallery

// Layout describes how an image is laid out inside its page.
type Layout int

const (
	// LayoutFillParent stretches the image area to the full page.
	LayoutFillParent Layout = iota
)

// ImageProps are the display properties built for every page with a source.
type ImageProps struct {
	Source Source
	Layout Layout
	// Width and Height are the page size in cells, as last set by SetPageSize.
	Width  int
	Height int
	// Hints carries renderer-specific settings injected by a PropsTransform
	// (scaling filter, fit mode, cache policy...).
	Hints map[string]string
}

// Hint returns the hint value for key, or def when unset.
func (p ImageProps) Hint(key, def string) string {
	if v, ok := p.Hints[key]; ok && v != "" {
		return v
	}
	return def
}

// PropsTransform rewrites image props before they reach the ImageRenderer.
// It must be pure.
type PropsTransform func(ImageProps) ImageProps

// IdentityTransform returns props unchanged.
func IdentityTransform(p ImageProps) ImageProps {
	return p
}

// ImageRenderer draws the image of one page.
type ImageRenderer interface {
	RenderImage(props ImageProps, item Item, index int) string
}

// ImageRendererFunc adapts a function to ImageRenderer.
type ImageRendererFunc func(props ImageProps, item Item, index int) string

// RenderImage calls f.
func (f ImageRendererFunc) RenderImage(props ImageProps, item Item, index int) string {
	return f(props, item, index)
}

// NopImageRenderer renders nothing. It is the default when no renderer is configured.
type NopImageRenderer struct{}

// RenderImage implements ImageRenderer.
func (NopImageRenderer) RenderImage(ImageProps, Item, int) string {
	return ""
}
