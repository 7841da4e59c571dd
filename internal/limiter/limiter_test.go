package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid limit only",
			cfg:     Config{Limit: 10},
			wantErr: false,
		},
		{
			name:    "valid offset only",
			cfg:     Config{Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid limit and offset",
			cfg:     Config{Limit: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid tail only",
			cfg:     Config{Tail: 10},
			wantErr: false,
		},
		{
			name:    "tail ignores offset (valid)",
			cfg:     Config{Tail: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "limit and tail mutually exclusive",
			cfg:     Config{Limit: 10, Tail: 5},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "negative limit invalid",
			cfg:     Config{Limit: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative offset invalid",
			cfg:     Config{Offset: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative tail invalid",
			cfg:     Config{Tail: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "zero values valid",
			cfg:     Config{Limit: 0, Offset: 0, Tail: 0},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigIsActive(t *testing.T) {
	assert.False(t, Config{}.IsActive())
	assert.True(t, Config{Limit: 1}.IsActive())
	assert.True(t, Config{Offset: 1}.IsActive())
	assert.True(t, Config{Tail: 1}.IsActive())
}

func TestConfigBounds(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		n          int
		start, end int
	}{
		{name: "inactive", cfg: Config{}, n: 5, start: 0, end: 5},
		{name: "limit", cfg: Config{Limit: 2}, n: 5, start: 0, end: 2},
		{name: "offset", cfg: Config{Offset: 3}, n: 5, start: 3, end: 5},
		{name: "offset and limit", cfg: Config{Offset: 1, Limit: 2}, n: 5, start: 1, end: 3},
		{name: "limit past end", cfg: Config{Offset: 4, Limit: 10}, n: 5, start: 4, end: 5},
		{name: "offset past end", cfg: Config{Offset: 9}, n: 5, start: 5, end: 5},
		{name: "tail", cfg: Config{Tail: 2}, n: 5, start: 3, end: 5},
		{name: "tail ignores offset", cfg: Config{Tail: 2, Offset: 1}, n: 5, start: 3, end: 5},
		{name: "tail longer than items", cfg: Config{Tail: 9}, n: 5, start: 0, end: 5},
		{name: "empty", cfg: Config{Limit: 3}, n: 0, start: 0, end: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.cfg.Bounds(tt.n)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestApply(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, items, Apply(Config{}, items))
	assert.Equal(t, []string{"b", "c"}, Apply(Config{Offset: 1, Limit: 2}, items))
	assert.Equal(t, []string{"d", "e"}, Apply(Config{Tail: 2}, items))
	assert.Empty(t, Apply(Config{Offset: 10}, items))
	assert.Nil(t, Apply(Config{Limit: 1}, []int(nil)))
}
