package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// FormatItemsYAML renders items as a YAML sequence. Multi-line descriptions
// are emitted as literal blocks so a listing can be pasted back into a
// manifest unchanged.
func FormatItemsYAML(items []gallery.Item) (string, error) {
	if items == nil {
		items = []gallery.Item{}
	}
	var node yaml.Node
	if err := node.Encode(items); err != nil {
		return "", err
	}
	literalMultiline(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatItemsJSON renders items as an indented JSON array.
func FormatItemsJSON(items []gallery.Item) (string, error) {
	if items == nil {
		items = []gallery.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func literalMultiline(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		literalMultiline(c)
	}
}
