package formatter

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

const noSourceGroup = "(no source)"

// TreeOptions controls tree output.
type TreeOptions struct {
	// NoTitles shows file names only.
	NoTitles bool
}

// RenderItemTree renders items grouped by directory, or by scheme, host and
// directory for URLs. Groups appear in first-seen order and leaves carry the
// item's 1-based gallery position.
func RenderItemTree(items []gallery.Item, opts TreeOptions) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%d images", len(items)))
	branches := map[string]treeprint.Tree{}
	for i, item := range items {
		group, name := locate(item.Source.URI)
		branch, ok := branches[group]
		if !ok {
			branch = tree.AddBranch(group)
			branches[group] = branch
		}
		label := fmt.Sprintf("%d %s", i+1, name)
		title := strings.TrimSpace(item.Title)
		if !opts.NoTitles && title != "" && title != strings.TrimSuffix(name, path.Ext(name)) {
			label += " (" + title + ")"
		}
		branch.AddNode(label)
	}
	return tree.String()
}

// locate splits a URI into its group and base name.
func locate(uri string) (group, name string) {
	if uri == "" {
		return noSourceGroup, "-"
	}
	if strings.Contains(uri, "://") {
		if u, err := url.Parse(uri); err == nil && u.Host != "" {
			dir := path.Dir(u.Path)
			if dir == "." || dir == "/" {
				dir = ""
			}
			return u.Scheme + "://" + u.Host + dir, path.Base(u.Path)
		}
	}
	return filepath.Dir(uri), filepath.Base(uri)
}
