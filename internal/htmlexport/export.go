// Package htmlexport writes a gallery as a single static HTML page. Item
// descriptions are treated as markdown.
package htmlexport

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "imgx gallery"

// Options configures Write.
type Options struct {
	Title string
	// BaseDir makes local image paths relative to the page location. Empty
	// keeps paths as they appear in the items.
	BaseDir string
}

// RenderMarkdown converts a description to HTML. Raw HTML in the input is
// dropped, links keep only http, https, ftp, mailto or /, ./, ../ targets,
// and links open in a new tab.
func RenderMarkdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	// parsers keep state between calls; one per document
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(src))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank | mdhtml.SkipHTML | mdhtml.Safelink,
	})
	return string(markdown.Render(doc, renderer))
}

// WriteFile writes the page to path, creating or truncating it. Local image
// paths are rewritten relative to the directory of path.
func WriteFile(path string, items []gallery.Item, opts Options) (err error) {
	if opts.BaseDir == "" {
		if abs, absErr := filepath.Abs(filepath.Dir(path)); absErr == nil {
			opts.BaseDir = abs
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	bw := bufio.NewWriter(f)
	if err := Write(bw, items, opts); err != nil {
		return err
	}
	return bw.Flush()
}

// Write renders items as one HTML document: a figure per item, in order,
// with the 1-based position as its anchor.
func Write(w io.Writer, items []gallery.Item, opts Options) error {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle
	}
	var b strings.Builder
	writeHeader(&b, title)
	fmt.Fprintf(&b, "  <h1>%s</h1>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "  <p class=\"count\">%d images</p>\n", len(items))
	b.WriteString("  <main class=\"gallery\">\n")
	for i, item := range items {
		writeFigure(&b, i+1, item, opts.BaseDir)
	}
	b.WriteString("  </main>\n")
	writeFooter(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFigure(b *strings.Builder, pos int, item gallery.Item, baseDir string) {
	fmt.Fprintf(b, "    <figure id=\"img-%d\">\n", pos)
	caption := item.Title
	if caption == "" {
		caption = filepath.Base(item.Source.URI)
	}
	if item.HasSource() {
		src := imageSrc(item.Source.URI, baseDir)
		fmt.Fprintf(b, "      <a href=\"%s\"><img src=\"%s\" alt=\"%s\" loading=\"lazy\"></a>\n",
			html.EscapeString(src), html.EscapeString(src), html.EscapeString(caption))
	} else {
		b.WriteString("      <div class=\"missing\">no image</div>\n")
	}
	fmt.Fprintf(b, "      <figcaption><span class=\"pos\">%d</span> %s</figcaption>\n", pos, html.EscapeString(item.Title))
	if desc := RenderMarkdown(item.Description); desc != "" {
		fmt.Fprintf(b, "      <div class=\"description\">\n%s      </div>\n", desc)
	}
	b.WriteString("    </figure>\n")
}

// imageSrc keeps URLs as they are and turns local paths into slash separated
// paths relative to baseDir when possible.
func imageSrc(uri, baseDir string) string {
	if strings.Contains(uri, "://") || baseDir == "" {
		return filepath.ToSlash(uri)
	}
	abs, err := filepath.Abs(uri)
	if err != nil {
		return filepath.ToSlash(uri)
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 1100px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #333; }
    h1 { color: #2563eb; border-bottom: 2px solid #2563eb; padding-bottom: 10px; }
    .count { color: #64748b; }
    .gallery { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 20px; }
    figure { margin: 0; background: #f8fafc; border-radius: 6px; padding: 10px; }
    figure img { width: 100%%; height: 200px; object-fit: contain; background: #1e293b; border-radius: 4px; }
    figcaption { font-weight: 500; color: #1e3a8a; margin-top: 6px; }
    .pos { color: #94a3b8; margin-right: 4px; }
    .missing { height: 200px; display: flex; align-items: center; justify-content: center; background: #e2e8f0; color: #64748b; border-radius: 4px; }
    .description { font-size: 0.9em; }
    code { background: #f1f5f9; padding: 2px 6px; border-radius: 3px; font-family: Monaco, Menlo, monospace; font-size: 0.9em; }
  </style>
</head>
<body>
`, html.EscapeString(title))
}

func writeFooter(w io.Writer) {
	fmt.Fprint(w, `</body>
</html>
`)
}
