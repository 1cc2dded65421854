package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{})

	require.NoError(t, err)
	assert.Equal(t, 80, cfg.JPEGQuality)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestNewConfig_Rejects(t *testing.T) {
	t.Parallel()

	neg := -2

	testCases := []struct {
		name    string
		cfg     Config
		wantMsg string
	}{
		{"two sources", Config{Script: "fliph", RecipePath: "r.hcl"}, "only one of"},
		{"name without recipes", Config{RecipeName: "x"}, "needs a recipe path"},
		{"jpeg quality", Config{JPEGQuality: 101}, "between 1 and 100"},
		{"gif repeat", Config{GIFRepeat: &neg}, "gif repeat"},
		{"frame", Config{SelectFrame: -1}, "start at 1"},
		{"workers", Config{WorkerCount: -1}, "cannot be negative"},
		{"format", Config{OutputFormat: "webp"}, "unsupported image format"},
		{"log level", Config{LogLevel: "loud"}, "invalid log level"},
		{"log format", Config{LogFormat: "xml"}, "invalid log format"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConfig(tc.cfg)
			assert.ErrorContains(t, err, tc.wantMsg)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer

	newLogger("warn", "text", &text).Info("Hidden.")
	newLogger("warn", "text", &text).Warn("Shown.")
	newLogger("debug", "json", &js).Debug("Structured.", "k", 1)

	assert.NotContains(t, text.String(), "Hidden.")
	assert.Contains(t, text.String(), "msg=Shown.")
	assert.Contains(t, js.String(), `"msg":"Structured."`)
	assert.Contains(t, js.String(), `"k":1`)
}
