package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"materialhub/internal/model"
)

func TestSVGInspectorParse(t *testing.T) {
	ins := &svgInspector{}

	t.Run("dimensions from viewBox", func(t *testing.T) {
		meta, err := ins.Parse([]byte(`<svg viewBox="0 0 1920 1080"><rect width="10" height="10"/></svg>`))
		require.NoError(t, err)
		assert.Equal(t, model.FormatSVG, meta.Format)
		assert.Equal(t, 1920, meta.Width)
		assert.Equal(t, 1080, meta.Height)
	})

	t.Run("explicit pixel size overrides viewBox numbers", func(t *testing.T) {
		meta, err := ins.Parse([]byte(`<svg viewBox="0 0 100 100" width="400px" height="377"></svg>`))
		require.NoError(t, err)
		assert.Equal(t, 400, meta.Width)
		assert.Equal(t, 377, meta.Height)
	})

	t.Run("percentage size falls back to viewBox", func(t *testing.T) {
		meta, err := ins.Parse([]byte(`<svg viewBox="0 0 300 440" width="100%" height="100%"></svg>`))
		require.NoError(t, err)
		assert.Equal(t, 300, meta.Width)
		assert.Equal(t, 440, meta.Height)
	})

	t.Run("comma separated viewBox", func(t *testing.T) {
		meta, err := ins.Parse([]byte(`<svg viewBox="0,0,482,108"></svg>`))
		require.NoError(t, err)
		assert.Equal(t, 482, meta.Width)
		assert.Equal(t, 108, meta.Height)
	})

	t.Run("transparency heuristic", func(t *testing.T) {
		opaque, err := ins.Parse([]byte(`<svg viewBox="0 0 10 10"><rect fill="#fff"/></svg>`))
		require.NoError(t, err)
		assert.False(t, opaque.HasAlpha)

		clear, err := ins.Parse([]byte(`<svg viewBox="0 0 10 10"><rect fill="none"/></svg>`))
		require.NoError(t, err)
		assert.True(t, clear.HasAlpha)
	})
}

func TestSVGInspectorCorrupt(t *testing.T) {
	ins := &svgInspector{}

	tests := []struct {
		name string
		data string
	}{
		{name: "malformed xml", data: `<svg viewBox="0 0 10 10"><rect</svg>`},
		{name: "unterminated root", data: `<svg viewBox="0 0 10 10">`},
		{name: "missing viewBox", data: `<svg width="100" height="100"></svg>`},
		{name: "malformed viewBox", data: `<svg viewBox="0 0 ten ten"></svg>`},
		{name: "negative viewBox size", data: `<svg viewBox="0 0 -5 10"></svg>`},
		{name: "root is not svg", data: `<html viewBox="0 0 10 10"></html>`},
		{name: "empty document", data: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ins.Parse([]byte(tt.data))
			var corrupt *CorruptError
			require.ErrorAs(t, err, &corrupt)
			assert.Equal(t, model.FormatSVG, corrupt.Format)
		})
	}
}

func TestSVGInspectorUnsafe(t *testing.T) {
	ins := &svgInspector{}

	tests := []struct {
		name string
		data string
	}{
		{
			name: "script element",
			data: `<svg viewBox="0 0 10 10"><script>alert(1)</script></svg>`,
		},
		{
			name: "script element in mixed case",
			data: `<svg viewBox="0 0 10 10"><ScRiPt>alert(1)</ScRiPt></svg>`,
		},
		{
			name: "foreignObject element",
			data: `<svg viewBox="0 0 10 10"><foreignObject></foreignObject></svg>`,
		},
		{
			name: "event handler attribute",
			data: `<svg viewBox="0 0 10 10"><rect onclick="steal()"/></svg>`,
		},
		{
			name: "javascript href",
			data: `<svg viewBox="0 0 10 10"><a href="javascript:run()"><rect/></a></svg>`,
		},
		{
			name: "external https href",
			data: `<svg viewBox="0 0 10 10"><image href="https://evil.example/x.png"/></svg>`,
		},
		{
			name: "protocol relative href",
			data: `<svg viewBox="0 0 10 10"><image href="//evil.example/x.png"/></svg>`,
		},
		{
			name: "doctype with external entity",
			data: `<!DOCTYPE svg [<!ENTITY x SYSTEM "file:///etc/passwd">]><svg viewBox="0 0 10 10">&x;</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ins.Parse([]byte(tt.data))
			var unsafe *UnsafeContentError
			assert.ErrorAs(t, err, &unsafe)
		})
	}

	t.Run("fragment href stays allowed", func(t *testing.T) {
		_, err := ins.Parse([]byte(`<svg viewBox="0 0 10 10"><use href="#shape"/><defs><rect id="shape"/></defs></svg>`))
		assert.NoError(t, err)
	})
}
