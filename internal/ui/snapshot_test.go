package ui

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

func snapshotItems(t *testing.T) []gallery.Item {
	t.Helper()
	dir := t.TempDir()
	return []gallery.Item{
		{Source: gallery.Source{URI: writeTestPNG(t, dir, "sky.png", color.RGBA{B: 255, A: 255})}, Title: "Blue sky"},
		{Source: gallery.Source{URI: writeTestPNG(t, dir, "sand.png", color.RGBA{R: 230, G: 200, B: 120, A: 255})}, Title: "Sand"},
		{Title: "no source"},
	}
}

func TestSnapshotRendersImageCaptionAndFooter(t *testing.T) {
	rendered := RenderModelSnapshot(snapshotItems(t), SnapshotConfig{
		Width:  40,
		Height: 12,
		Options: Options{
			AppName:      "imgx",
			NoColor:      true,
			ImageOverlay: true,
			Indicator:    true,
		},
	})

	lines := strings.Split(rendered, "\n")
	assert.Len(t, lines, 12)
	assert.Contains(t, rendered, "Blue sky")
	assert.Contains(t, rendered, "GALLERY")
	assert.Contains(t, rendered, "imgx 1/3")
	assert.Contains(t, rendered, "● ○ ○")
	assert.NotContains(t, rendered, "\x1b[", "no-color snapshots carry no escape codes")
}

func TestSnapshotStartKeys(t *testing.T) {
	items := snapshotItems(t)
	rendered := RenderModelSnapshot(items, SnapshotConfig{
		Width:     40,
		Height:    12,
		StartKeys: []string{"<Right>"},
		Options:   Options{AppName: "imgx", NoColor: true, ImageOverlay: true},
	})
	assert.Contains(t, rendered, "imgx 2/3 Sand")
	assert.NotContains(t, rendered, "Blue sky")

	rendered = RenderModelSnapshot(items, SnapshotConfig{
		Width:     40,
		Height:    12,
		StartKeys: []string{"<CR>"},
		Options:   Options{AppName: "imgx", NoColor: true, ImageOverlay: true},
	})
	assert.NotContains(t, rendered, "GALLERY")
	assert.NotContains(t, rendered, "Blue sky", "no caption in image preview mode")
}

func TestSnapshotMalformedItemRendersEmptyPage(t *testing.T) {
	rendered := RenderModelSnapshot(snapshotItems(t), SnapshotConfig{
		Width:     30,
		Height:    8,
		StartKeys: []string{"<End>"},
		Options:   Options{NoColor: true, ImageOverlay: true},
	})
	require.Contains(t, rendered, "3/3")
	body := strings.Join(strings.Split(rendered, "\n")[:7], "\n")
	assert.Empty(t, strings.TrimSpace(body), "no image, caption or placeholder for an item without a source")
}

func TestSnapshotHelp(t *testing.T) {
	rendered := RenderModelSnapshot(nil, SnapshotConfig{
		Width:     60,
		Height:    20,
		StartKeys: []string{"<F1>"},
		Options:   Options{AppName: "imgx", NoColor: true},
	})
	assert.Contains(t, rendered, "imgx")
	assert.Contains(t, rendered, "toggle preview")
	assert.Contains(t, rendered, "copy image path")
}

func TestSnapshotDefaultsSize(t *testing.T) {
	rendered := RenderModelSnapshot(nil, SnapshotConfig{Options: Options{NoColor: true}})
	assert.Len(t, strings.Split(rendered, "\n"), defaultHeight)
}

func TestPadSnapshotHeight(t *testing.T) {
	assert.Equal(t, "a\n   \n   ", padSnapshotHeight("a\n", 3, 3))
	assert.Equal(t, "a\nb", padSnapshotHeight("a\nb", 1, 3))
}
