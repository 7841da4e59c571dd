// Package cel filters gallery items with CEL expressions such as
// `item.title.contains("beach") && index < 10`.
package cel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// Filter is a compiled item predicate.
type Filter struct {
	expr string
	prg  cel.Program
}

// newFilterEnv declares the variables visible to filter expressions:
// item (title, description, uri, ext, source.uri), index and total.
func newFilterEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("index", cel.IntType),
		cel.Variable("total", cel.IntType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
}

// Compile parses and type-checks expr. The expression must yield a bool.
func Compile(expr string) (*Filter, error) {
	env, err := newFilterEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if err := checkItemFields(env, expr); err != nil {
		return nil, err
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("filter must evaluate to bool, got %s", out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter for one item.
func (f *Filter) Match(item gallery.Item, index, total int) (bool, error) {
	out, _, err := f.prg.Eval(map[string]interface{}{
		"item":  itemVars(item),
		"index": int64(index),
		"total": int64(total),
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("filter must evaluate to bool, got %s", out.Type().TypeName())
	}
	return bool(b), nil
}

// Apply keeps the items matching expr. An empty expression keeps everything.
func Apply(items []gallery.Item, expr string) ([]gallery.Item, error) {
	if strings.TrimSpace(expr) == "" {
		return items, nil
	}
	f, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return f.Apply(items)
}

// Apply keeps the items the filter matches, in order.
func (f *Filter) Apply(items []gallery.Item) ([]gallery.Item, error) {
	out := make([]gallery.Item, 0, len(items))
	for i, item := range items {
		ok, err := f.Match(item, i, len(items))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// itemVars must carry every key listed in itemFields.
func itemVars(item gallery.Item) map[string]interface{} {
	return map[string]interface{}{
		"title":       item.Title,
		"description": item.Description,
		"uri":         item.Source.URI,
		"ext":         strings.TrimPrefix(strings.ToLower(filepath.Ext(item.Source.URI)), "."),
		"source":      map[string]interface{}{"uri": item.Source.URI},
	}
}
