// Package loader reads gallery items from manifests (JSON, NDJSON, YAML,
// TOML) and from directories of image files.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// Format names accepted by LoadData.
const (
	FormatAuto   = ""
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
	FormatTOML   = "toml"
)

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// Load reads items from path, which may be a manifest file or a directory.
func Load(path string) ([]gallery.Item, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadFile reads a manifest. The format follows the file extension and falls
// back to content detection. Relative URIs resolve against the manifest's directory.
func LoadFile(path string) ([]gallery.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	items, err := LoadData(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ResolveRelative(items, filepath.Dir(path)), nil
}

// LoadReader reads a manifest from r with content detection.
func LoadReader(r io.Reader) ([]gallery.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadData(data, FormatAuto)
}

// FormatForPath maps a file extension to a format, or FormatAuto.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// DetectFormat guesses the manifest format from its content.
func DetectFormat(input string) string {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatYAML
	}
	// A pretty-printed array or object spans lines that each look like NDJSON.
	if (strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[")) && json.Valid([]byte(input)) {
		return FormatJSON
	}
	if lines := strings.Split(input, "\n"); len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}
	// TOML before JSON: a [[items]] header looks like a JSON array.
	if isLikelyTOML(input) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadData parses manifest content in the given format (FormatAuto detects it).
//
// Accepted shapes, in every format: a list of items, a document with an
// "items" list, or a single item. An item's source may be written as
// {"uri": "..."} or as a bare string; a bare string item is its own URI.
func LoadData(data []byte, format string) ([]gallery.Item, error) {
	input := strings.TrimSpace(string(data))
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}
	if format == FormatAuto {
		format = DetectFormat(input)
	}

	docs, err := decodeDocuments(input, format)
	if err != nil {
		return nil, err
	}
	var items []gallery.Item
	for i, doc := range docs {
		got, err := itemsFromNode(doc)
		if err != nil {
			if len(docs) > 1 {
				return nil, fmt.Errorf("document %d: %w", i+1, err)
			}
			return nil, err
		}
		items = append(items, got...)
	}
	return items, nil
}

func decodeDocuments(input, format string) ([]interface{}, error) {
	switch format {
	case FormatJSON:
		var doc interface{}
		if err := json.Unmarshal([]byte(input), &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return []interface{}{doc}, nil
	case FormatNDJSON:
		return decodeNDJSON(input)
	case FormatYAML:
		return decodeYAML(input)
	case FormatTOML:
		var doc map[string]interface{}
		if err := toml.Unmarshal([]byte(input), &doc); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		return []interface{}{doc}, nil
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
}

func decodeYAML(input string) ([]interface{}, error) {
	var results []interface{}
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc interface{}
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no documents found in YAML")
	}
	return results, nil
}

// decodeNDJSON parses one JSON value per line; other lines are taken as bare
// URIs unless they start like JSON, which makes them an error.
func decodeNDJSON(input string) ([]interface{}, error) {
	lines := strings.Split(input, "\n")
	results := make([]interface{}, 0, len(lines))
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			if strings.ContainsAny(line[:1], "[{]}") {
				return nil, fmt.Errorf("line %d: invalid JSON: %w", n+1, err)
			}
			results = append(results, line)
			continue
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return results, nil
}

func itemsFromNode(node interface{}) ([]gallery.Item, error) {
	switch v := node.(type) {
	case []interface{}:
		items := make([]gallery.Item, 0, len(v))
		for i, el := range v {
			item, err := itemFromNode(el)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, item)
		}
		return items, nil
	case map[string]interface{}:
		if list, ok := v["items"]; ok {
			return itemsFromNode(list)
		}
		item, err := itemFromNode(v)
		if err != nil {
			return nil, err
		}
		return []gallery.Item{item}, nil
	case string:
		return []gallery.Item{{Source: gallery.Source{URI: v}}}, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported manifest node %T", node)
	}
}

func itemFromNode(node interface{}) (gallery.Item, error) {
	switch v := node.(type) {
	case string:
		return gallery.Item{Source: gallery.Source{URI: v}}, nil
	case map[string]interface{}:
		item := gallery.Item{
			Title:       stringField(v, "title"),
			Description: stringField(v, "description"),
		}
		switch src := v["source"].(type) {
		case string:
			item.Source.URI = src
		case map[string]interface{}:
			item.Source.URI = stringField(src, "uri")
		case nil:
			// Items without a source are kept; the gallery renders them empty.
			item.Source.URI = stringField(v, "uri")
		default:
			return gallery.Item{}, fmt.Errorf("source must be a string or an object, got %T", src)
		}
		return item, nil
	default:
		return gallery.Item{}, fmt.Errorf("item must be a string or an object, got %T", node)
	}
}

func stringField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// ResolveRelative rewrites relative file URIs to be rooted at baseDir.
// URIs with a scheme and absolute paths are left alone.
func ResolveRelative(items []gallery.Item, baseDir string) []gallery.Item {
	out := make([]gallery.Item, len(items))
	for i, item := range items {
		uri := item.Source.URI
		if uri != "" && !strings.Contains(uri, "://") && !filepath.IsAbs(uri) {
			item.Source.URI = filepath.Join(baseDir, uri)
		}
		out[i] = item
	}
	return out
}

// isLikelyNDJSON requires several non-empty lines, most of them starting with
// '{' or '[', so YAML lists are not misclassified.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

// isLikelyTOML looks for [section] / [[array]] headers or a majority of
// key = value lines.
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
