package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oakwood-commons/imgx/internal/imageview"
	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// LoadDir lists the decodable images directly inside dir, sorted by name.
// Each item is titled with its file name without extension.
func LoadDir(dir string) ([]gallery.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read gallery dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !imageview.IsImageFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	items := make([]gallery.Item, 0, len(names))
	for _, name := range names {
		items = append(items, gallery.Item{
			Source: gallery.Source{URI: filepath.Join(dir, name)},
			Title:  strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}
	return items, nil
}
