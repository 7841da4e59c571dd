package cel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencedFields(t *testing.T) {
	env, err := newFilterEnv()
	require.NoError(t, err)

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"select", `item.title == "a" && item.ext == "png"`, []string{"title", "ext"}},
		{"dedup", `item.title != "" || item.title.contains("x")`, []string{"title"}},
		{"index", `item["uri"].endsWith(".png")`, []string{"uri"}},
		{"nested", `item.source.uri != ""`, []string{"source"}},
		{"has skipped", `has(item.title)`, nil},
		{"shadowed", `["a"].exists(item, item.size > 0)`, nil},
		{"no item", `index < 3`, nil},
		{"inside list", `[item.title, item.description].exists(s, s == "")`, []string{"title", "description"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReferencedFields(env, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileRejectsUnknownField(t *testing.T) {
	_, err := Compile(`item.size > 10`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field item.size")
	assert.Contains(t, err.Error(), "description, ext, source, title, uri")

	_, err = Compile(`item["width"] == 1`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item.width")
}

func TestItemFieldsMatchVars(t *testing.T) {
	vars := itemVars(sample()[0])
	for _, f := range ItemFields() {
		assert.Contains(t, vars, f)
	}
	assert.Len(t, vars, len(ItemFields()))
}
