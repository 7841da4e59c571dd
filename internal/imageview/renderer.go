// Package imageview draws gallery images in the terminal with half-block
// cells. Decoding runs off the UI loop through tea.Cmds; until an image is
// decoded RenderImage returns "" so the pager can show its placeholder.
package imageview

import (
	"fmt"
	"image"
	"strings"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// Hint keys read from gallery.ImageProps.
const (
	HintFit     = "fit"
	HintScaling = "scaling"
)

// Size used when the gallery has not been told its page size.
const (
	defaultCols = 40
	defaultRows = 12
)

// LoadedMsg reports the end of a background decode.
type LoadedMsg struct {
	URI string
	Err error
}

type entry struct {
	img     image.Image
	err     error
	loading bool
}

type cacheKey struct {
	uri     string
	w, h    int
	fit     string
	scaling string
	noColor bool
}

// Renderer implements gallery.ImageRenderer.
type Renderer struct {
	// NoColor switches to an ASCII luminance ramp.
	NoColor bool
	// Synchronous decodes on first render instead of waiting for Load.
	Synchronous bool
	ErrorStyle  lipgloss.Style
	Logger      logr.Logger

	mu       sync.RWMutex
	images   map[string]*entry
	rendered map[cacheKey]string
}

// New returns an empty renderer.
func New() *Renderer {
	return &Renderer{
		ErrorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		images:     make(map[string]*entry),
		rendered:   make(map[cacheKey]string),
	}
}

// RenderImage implements gallery.ImageRenderer.
func (r *Renderer) RenderImage(props gallery.ImageProps, _ gallery.Item, _ int) string {
	uri := props.Source.URI
	if r.Synchronous {
		r.decode(uri)
	}

	r.mu.RLock()
	e := r.images[uri]
	r.mu.RUnlock()
	if e == nil || e.loading {
		return ""
	}
	if e.err != nil {
		msg := "⚠ " + e.err.Error()
		if props.Width > 0 {
			msg = runewidth.Truncate(msg, props.Width, "…")
		}
		return r.ErrorStyle.Render(msg)
	}

	key := cacheKey{
		uri:     uri,
		w:       props.Width,
		h:       props.Height,
		fit:     props.Hint(HintFit, FitContain),
		scaling: props.Hint(HintScaling, "catmullrom"),
		noColor: r.NoColor,
	}
	if key.w <= 0 {
		key.w = defaultCols
	}
	if key.h <= 0 {
		key.h = defaultRows
	}
	r.mu.RLock()
	out, ok := r.rendered[key]
	r.mu.RUnlock()
	if ok {
		return out
	}

	out = HalfBlocks(Scale(e.img, key.w, key.h, key.fit, Scaler(key.scaling)), key.noColor)
	r.mu.Lock()
	r.rendered[key] = out
	r.mu.Unlock()
	return out
}

// Load returns a command decoding uri in the background, or nil when the
// image is already decoded or in flight.
func (r *Renderer) Load(uri string) tea.Cmd {
	if uri == "" {
		return nil
	}
	r.mu.Lock()
	if _, ok := r.images[uri]; ok {
		r.mu.Unlock()
		return nil
	}
	r.images[uri] = &entry{loading: true}
	r.mu.Unlock()

	return func() tea.Msg {
		err := r.store(uri)
		return LoadedMsg{URI: uri, Err: err}
	}
}

// Preload batches Load for every uri.
func (r *Renderer) Preload(uris ...string) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(uris))
	for _, uri := range uris {
		if cmd := r.Load(uri); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Status reports whether uri finished decoding and the decode error, if any.
func (r *Renderer) Status(uri string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.images[uri]
	if !ok || e.loading {
		return false, nil
	}
	return true, e.err
}

// Forget drops the decoded image and every rendering of uri.
func (r *Renderer) Forget(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forget(uri)
}

// Retain forgets every decoded image not listed in keep. Images still
// decoding stay until their load finishes.
func (r *Renderer) Retain(keep ...string) {
	want := make(map[string]struct{}, len(keep))
	for _, uri := range keep {
		want[uri] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for uri, e := range r.images {
		if _, ok := want[uri]; ok || e.loading {
			continue
		}
		r.forget(uri)
	}
}

// forget requires r.mu held for writing.
func (r *Renderer) forget(uri string) {
	delete(r.images, uri)
	for k := range r.rendered {
		if k.uri == uri {
			delete(r.rendered, k)
		}
	}
}

func (r *Renderer) decode(uri string) {
	r.mu.RLock()
	e, ok := r.images[uri]
	r.mu.RUnlock()
	if ok && !e.loading {
		return
	}
	_ = r.store(uri)
}

func (r *Renderer) store(uri string) error {
	img, err := Decode(uri)
	if err != nil {
		r.Logger.Error(err, "image decode failed", "uri", uri)
	} else {
		r.Logger.V(1).Info("image decoded", "uri", uri, "bounds", fmt.Sprint(img.Bounds().Size()))
	}
	r.mu.Lock()
	r.images[uri] = &entry{img: img, err: err}
	r.mu.Unlock()
	return err
}

// Describe is a one-line summary used by the status bar.
func (r *Renderer) Describe(uri string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.images[uri]
	switch {
	case !ok:
		return ""
	case e.loading:
		return "loading"
	case e.err != nil:
		return "error"
	default:
		s := e.img.Bounds().Size()
		return strings.TrimSpace(fmt.Sprintf("%dx%d", s.X, s.Y))
	}
}
