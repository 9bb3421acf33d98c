package inspect

import (
	"bytes"
	"fmt"
	"image"

	"materialhub/internal/model"
)

// Package inspect contains the pluggable format inspectors. Each inspector
// recognizes one encoding family by its byte structure and parses it into
// structural metadata. The declared filename extension is never consulted:
// sniffing is magic-byte based so disguised content cannot pick its checker.

// CorruptError reports a byte stream that claims a format but cannot be
// decoded as one (truncation, bad headers, malformed markup).
type CorruptError struct {
	Format model.Format
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt %s: %s", e.Format, e.Reason)
}

// UnsafeContentError reports content that is well-formed but dangerous to
// store and serve (script-capable or externally-referencing SVG constructs).
// Always fatal: no further checks run on the file.
type UnsafeContentError struct {
	Reason string
}

func (e *UnsafeContentError) Error() string {
	return fmt.Sprintf("unsafe content: %s", e.Reason)
}

// Metadata is the structural description of a parsed asset.
type Metadata struct {
	Format   model.Format
	Width    int
	Height   int
	HasAlpha bool
	ByteSize int64

	// decoded pixels, raster formats only; used by the border check
	img image.Image
}

// Inspector parses one encoding family into structural metadata.
type Inspector interface {
	Format() model.Format
	Parse(data []byte) (*Metadata, error)
}

// Registry dispatches bytes to the inspector matching their sniffed format.
type Registry struct {
	inspectors map[model.Format]Inspector
}

// NewRegistry returns a registry with the PNG, JPG and SVG inspectors installed.
func NewRegistry() *Registry {
	r := &Registry{inspectors: make(map[model.Format]Inspector)}
	for _, ins := range []Inspector{&pngInspector{}, &jpegInspector{}, &svgInspector{}} {
		r.inspectors[ins.Format()] = ins
	}
	return r
}

// ForFormat returns the inspector for a sniffed format.
func (r *Registry) ForFormat(f model.Format) (Inspector, bool) {
	ins, ok := r.inspectors[f]
	return ins, ok
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	utf8BOM   = []byte{0xef, 0xbb, 0xbf}
)

// Sniff determines the format from the byte structure alone. The second
// return is false when no inspector recognizes the content.
func Sniff(data []byte) (model.Format, bool) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return model.FormatPNG, true
	case bytes.HasPrefix(data, jpegMagic):
		return model.FormatJPG, true
	case looksLikeSVG(data):
		return model.FormatSVG, true
	}
	return "", false
}

// looksLikeSVG accepts documents opening with an <svg> root or an XML
// declaration followed by one, ignoring a BOM, whitespace and comments.
func looksLikeSVG(data []byte) bool {
	head := bytes.TrimPrefix(data, utf8BOM)
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = bytes.TrimLeft(head, " \t\r\n")
	if bytes.HasPrefix(head, []byte("<svg")) {
		return true
	}
	if !bytes.HasPrefix(head, []byte("<?xml")) && !bytes.HasPrefix(head, []byte("<!--")) && !bytes.HasPrefix(head, []byte("<!DOCTYPE")) {
		return false
	}
	return bytes.Contains(head, []byte("<svg"))
}
