package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

func TestCLI_ListTable(t *testing.T) {
	out, _, err := runCLI(t, "list", galleryDir(t), "--no-color", "--width", "300")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[2], "a.png")
	assert.Contains(t, lines[3], "b.png")
	assert.NotContains(t, out, "\x1b[")
}

func TestCLI_ListColumnsAndWindow(t *testing.T) {
	out, _, err := runCLI(t, "list", galleryDir(t), "--no-color", "--columns", "#,title", "--offset", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.NotContains(t, lines[0], "URI")
	assert.Contains(t, lines[2], "b")
	assert.NotContains(t, out, "a.png")
}

func TestCLI_ListJSONAndYAML(t *testing.T) {
	dir := galleryDir(t)

	out, _, err := runCLI(t, "list", dir, "-o", "json", "--filter", `item.title == "b"`)
	require.NoError(t, err)
	var items []gallery.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Title)

	out, _, err = runCLI(t, "list", dir, "-o", "YAML", "--tail", "1")
	require.NoError(t, err)
	items = nil
	require.NoError(t, yaml.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Title)
}

func TestCLI_ListTree(t *testing.T) {
	dir := galleryDir(t)
	out, _, err := runCLI(t, "list", dir, "-o", "tree")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "2 images"))
	assert.Contains(t, out, dir)
	assert.Contains(t, out, "1 a.png")
	assert.Contains(t, out, "2 b.png")
}

func TestCLI_ListInvalidFlags(t *testing.T) {
	dir := galleryDir(t)
	for _, args := range [][]string{
		{"list", dir, "-o", "csv"},
		{"list", dir, "--columns", "size"},
		{"list", dir, "--width", "-1"},
		{"list", dir, "--limit", "1", "--tail", "1"},
		{"list", dir, "--filter", "item.size > 1"},
	} {
		t.Run(strings.Join(args[2:], " "), func(t *testing.T) {
			_, _, err := runCLI(t, args...)
			require.Error(t, err)
			assert.Equal(t, 2, ExitCode(err))
		})
	}
}

func TestCLI_ListNoInputShowsHelp(t *testing.T) {
	out, _, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "imgx list [manifest|dir]")
}

func TestCLI_Export(t *testing.T) {
	dir := galleryDir(t)
	target := filepath.Join(t.TempDir(), "index.html")

	_, errOut, err := runCLI(t, "export", dir, "--out", target, "--title", "Trip")
	require.NoError(t, err)
	assert.Contains(t, errOut, "wrote 2 images to "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "<title>Trip</title>")
	assert.Contains(t, page, "a.png")
	assert.Contains(t, page, "b.png")
}

func TestCLI_ExportDefaultTitle(t *testing.T) {
	target := filepath.Join(t.TempDir(), "index.html")
	_, _, err := runCLI(t, "export", galleryDir(t), "--out", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>imgx gallery</title>")
}

func TestCLI_ExportRequiresOut(t *testing.T) {
	_, _, err := runCLI(t, "export", galleryDir(t))
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
	assert.Contains(t, err.Error(), "--out is required")
}
