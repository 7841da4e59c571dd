package cel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// itemFields are the keys of the item variable. source is a nested map
// holding uri.
var itemFields = map[string]bool{
	"title":       true,
	"description": true,
	"uri":         true,
	"ext":         true,
	"source":      true,
}

// ItemFields returns the field names an expression may read from item.
func ItemFields() []string {
	names := make([]string, 0, len(itemFields))
	for n := range itemFields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ReferencedFields parses expr and returns the item fields it reads, in
// order of first use. Both item.title and item["title"] count; has() calls
// are skipped since they only test whether a field exists.
func ReferencedFields(env *cel.Env, expr string) ([]string, error) {
	ast, issues := env.Parse(expr)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, err
	}
	var fields []string
	seen := map[string]bool{}
	walkItemRefs(parsed.GetExpr(), false, func(name string) {
		if !seen[name] {
			seen[name] = true
			fields = append(fields, name)
		}
	})
	return fields, nil
}

// checkItemFields rejects references to fields item never carries, which
// would otherwise only fail at evaluation time.
func checkItemFields(env *cel.Env, expr string) error {
	fields, err := ReferencedFields(env, expr)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if !itemFields[f] {
			return fmt.Errorf("unknown field item.%s (use %s)", f, strings.Join(ItemFields(), ", "))
		}
	}
	return nil
}

// walkItemRefs calls fn for each field selected directly on the item
// identifier. shadowed is set inside comprehensions that rebind item.
func walkItemRefs(e *exprpb.Expr, shadowed bool, fn func(string)) {
	if e == nil {
		return
	}
	switch k := e.ExprKind.(type) {
	case *exprpb.Expr_SelectExpr:
		sel := k.SelectExpr
		if !shadowed && !sel.GetTestOnly() && isItemIdent(sel.GetOperand()) {
			fn(sel.GetField())
			return
		}
		walkItemRefs(sel.GetOperand(), shadowed, fn)
	case *exprpb.Expr_CallExpr:
		call := k.CallExpr
		if !shadowed && call.GetFunction() == "_[_]" && len(call.GetArgs()) == 2 && isItemIdent(call.GetArgs()[0]) {
			if c := call.GetArgs()[1].GetConstExpr(); c != nil {
				if s, ok := c.ConstantKind.(*exprpb.Constant_StringValue); ok {
					fn(s.StringValue)
					return
				}
			}
		}
		walkItemRefs(call.GetTarget(), shadowed, fn)
		for _, a := range call.GetArgs() {
			walkItemRefs(a, shadowed, fn)
		}
	case *exprpb.Expr_ListExpr:
		for _, el := range k.ListExpr.GetElements() {
			walkItemRefs(el, shadowed, fn)
		}
	case *exprpb.Expr_StructExpr:
		for _, ent := range k.StructExpr.GetEntries() {
			walkItemRefs(ent.GetMapKey(), shadowed, fn)
			walkItemRefs(ent.GetValue(), shadowed, fn)
		}
	case *exprpb.Expr_ComprehensionExpr:
		comp := k.ComprehensionExpr
		walkItemRefs(comp.GetIterRange(), shadowed, fn)
		inner := shadowed || comp.GetIterVar() == "item" || comp.GetAccuVar() == "item"
		walkItemRefs(comp.GetAccuInit(), shadowed, fn)
		walkItemRefs(comp.GetLoopCondition(), inner, fn)
		walkItemRefs(comp.GetLoopStep(), inner, fn)
		walkItemRefs(comp.GetResult(), inner, fn)
	}
}

func isItemIdent(e *exprpb.Expr) bool {
	id := e.GetIdentExpr()
	return id != nil && id.GetName() == "item"
}
