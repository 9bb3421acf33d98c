package inspect

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"materialhub/internal/model"
)

// pngBytes encodes an opaque w x h PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// pngBytesWithBorder encodes a PNG whose outer band of `border` pixels is
// fully transparent and whose interior is opaque.
func pngBytesWithBorder(t *testing.T, w, h, border int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			inBorder := x < border || y < border || x >= w-border || y >= h-border
			if inBorder {
				img.SetNRGBA(x, y, color.NRGBA{})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 10, B: 200, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio420)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantFormat model.Format
		wantOK     bool
	}{
		{
			name:       "png by magic bytes",
			data:       pngBytes(t, 4, 4),
			wantFormat: model.FormatPNG,
			wantOK:     true,
		},
		{
			name:       "jpeg by magic bytes",
			data:       jpegBytes(t, 4, 4),
			wantFormat: model.FormatJPG,
			wantOK:     true,
		},
		{
			name:       "bare svg root",
			data:       []byte(`<svg viewBox="0 0 10 10"></svg>`),
			wantFormat: model.FormatSVG,
			wantOK:     true,
		},
		{
			name:       "svg behind xml declaration and whitespace",
			data:       []byte("\n  <?xml version=\"1.0\"?><svg viewBox=\"0 0 1 1\"/>"),
			wantFormat: model.FormatSVG,
			wantOK:     true,
		},
		{
			name:       "svg behind utf8 bom",
			data:       append([]byte{0xef, 0xbb, 0xbf}, []byte(`<svg viewBox="0 0 1 1"/>`)...),
			wantFormat: model.FormatSVG,
			wantOK:     true,
		},
		{
			name:   "xml that is not svg",
			data:   []byte(`<?xml version="1.0"?><html></html>`),
			wantOK: false,
		},
		{
			name:   "plain text",
			data:   []byte("GIF89a not supported here"),
			wantOK: false,
		},
		{
			name:   "empty input",
			data:   nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ok := Sniff(tt.data)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantFormat, format)
			}
		})
	}
}

func TestRegistryForFormat(t *testing.T) {
	r := NewRegistry()

	for _, f := range []model.Format{model.FormatPNG, model.FormatJPG, model.FormatSVG} {
		ins, ok := r.ForFormat(f)
		assert.True(t, ok, "missing inspector for %s", f)
		assert.Equal(t, f, ins.Format())
	}

	_, ok := r.ForFormat(model.Format("gif"))
	assert.False(t, ok)
}
