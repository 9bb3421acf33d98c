package inspect

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"materialhub/internal/model"
)

type pngInspector struct{}

func (pngInspector) Format() model.Format { return model.FormatPNG }

func (p *pngInspector) Parse(data []byte) (*Metadata, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &CorruptError{Format: model.FormatPNG, Reason: err.Error()}
	}
	return rasterMetadata(model.FormatPNG, img, int64(len(data))), nil
}

type jpegInspector struct{}

func (jpegInspector) Format() model.Format { return model.FormatJPG }

func (j *jpegInspector) Parse(data []byte) (*Metadata, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &CorruptError{Format: model.FormatJPG, Reason: err.Error()}
	}
	return rasterMetadata(model.FormatJPG, img, int64(len(data))), nil
}

func rasterMetadata(f model.Format, img image.Image, size int64) *Metadata {
	b := img.Bounds()
	return &Metadata{
		Format:   f,
		Width:    b.Dx(),
		Height:   b.Dy(),
		HasAlpha: hasTransparency(img),
		ByteSize: size,
		img:      img,
	}
}

// hasTransparency reports whether any pixel is not fully opaque. A fully
// opaque RGBA image counts as non-transparent: what matters for the store
// renderers is effective transparency, not the nominal color model.
func hasTransparency(img image.Image) bool {
	if op, ok := img.(interface{ Opaque() bool }); ok {
		return !op.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
				return true
			}
		}
	}
	return false
}

// BorderClear reports whether every pixel within margin of the image edge is
// fully transparent. Only meaningful for raster metadata; vector content has
// no pixel border to inspect.
func (m *Metadata) BorderClear(margin int) bool {
	if m.img == nil || margin <= 0 {
		return false
	}
	b := m.img.Bounds()
	if margin*2 >= b.Dx() || margin*2 >= b.Dy() {
		return false
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		inner := y >= b.Min.Y+margin && y < b.Max.Y-margin
		for x := b.Min.X; x < b.Max.X; x++ {
			if inner && x >= b.Min.X+margin && x < b.Max.X-margin {
				x = b.Max.X - margin - 1
				continue
			}
			if _, _, _, a := m.img.At(x, y).RGBA(); a != 0 {
				return false
			}
		}
	}
	return true
}
