package inspect

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"materialhub/internal/model"
)

type svgInspector struct{}

func (svgInspector) Format() model.Format { return model.FormatSVG }

// Elements that can execute code or pull in external content when the SVG is
// later served from storage. Any occurrence is fatal.
var unsafeElements = map[string]bool{
	"script":        true,
	"foreignobject": true,
	"iframe":        true,
	"object":        true,
	"embed":         true,
}

func (s *svgInspector) Parse(data []byte) (*Metadata, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.Strict = true

	var (
		root     *xml.StartElement
		sawClose bool
		depth    int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &CorruptError{Format: model.FormatSVG, Reason: err.Error()}
		}
		switch t := tok.(type) {
		case xml.Directive:
			// DOCTYPE with entity or system references can exfiltrate or
			// substitute content; plain doctypes are pointless in stored SVGs.
			d := strings.ToUpper(string(t))
			if strings.Contains(d, "ENTITY") || strings.Contains(d, "SYSTEM") || strings.Contains(d, "PUBLIC") {
				return nil, &UnsafeContentError{Reason: "document type declaration with external references"}
			}
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			if unsafeElements[name] {
				return nil, &UnsafeContentError{Reason: fmt.Sprintf("disallowed element <%s>", name)}
			}
			if err := checkAttrs(t.Attr); err != nil {
				return nil, err
			}
			if depth == 0 {
				if name != "svg" {
					return nil, &CorruptError{Format: model.FormatSVG, Reason: fmt.Sprintf("root element is <%s>, not <svg>", name)}
				}
				el := t.Copy()
				root = &el
			}
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				sawClose = true
			}
		}
	}
	if root == nil || !sawClose {
		return nil, &CorruptError{Format: model.FormatSVG, Reason: "missing or unterminated <svg> root"}
	}

	w, h, err := svgDimensions(root.Attr)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Format:   model.FormatSVG,
		Width:    w,
		Height:   h,
		HasAlpha: svgTransparency(data),
		ByteSize: int64(len(data)),
	}, nil
}

// checkAttrs rejects event handlers and javascript/external targets.
func checkAttrs(attrs []xml.Attr) error {
	for _, a := range attrs {
		local := strings.ToLower(a.Name.Local)
		if strings.HasPrefix(local, "on") {
			return &UnsafeContentError{Reason: fmt.Sprintf("event handler attribute %q", a.Name.Local)}
		}
		if local == "href" {
			val := strings.ToLower(strings.TrimSpace(a.Value))
			if strings.HasPrefix(val, "javascript:") ||
				strings.HasPrefix(val, "http:") ||
				strings.HasPrefix(val, "https:") ||
				strings.HasPrefix(val, "//") {
				return &UnsafeContentError{Reason: fmt.Sprintf("external reference %q", a.Value)}
			}
		}
	}
	return nil
}

// svgDimensions derives the asset dimensions from the root viewBox, falling
// back to explicit width/height attributes for the numbers only. A root
// without a viewBox is rejected outright.
func svgDimensions(attrs []xml.Attr) (int, int, error) {
	var viewBox, widthAttr, heightAttr string
	for _, a := range attrs {
		switch strings.ToLower(a.Name.Local) {
		case "viewbox":
			viewBox = a.Value
		case "width":
			widthAttr = a.Value
		case "height":
			heightAttr = a.Value
		}
	}
	if viewBox == "" {
		return 0, 0, &CorruptError{Format: model.FormatSVG, Reason: "root <svg> lacks a viewBox attribute"}
	}
	fields := strings.Fields(strings.ReplaceAll(viewBox, ",", " "))
	if len(fields) != 4 {
		return 0, 0, &CorruptError{Format: model.FormatSVG, Reason: fmt.Sprintf("malformed viewBox %q", viewBox)}
	}
	vw, errW := strconv.ParseFloat(fields[2], 64)
	vh, errH := strconv.ParseFloat(fields[3], 64)
	if errW != nil || errH != nil || vw <= 0 || vh <= 0 {
		return 0, 0, &CorruptError{Format: model.FormatSVG, Reason: fmt.Sprintf("malformed viewBox %q", viewBox)}
	}
	// Explicit pixel dimensions, when present, name the intended render size.
	if w, ok := parseLength(widthAttr); ok {
		if h, ok := parseLength(heightAttr); ok {
			return w, h, nil
		}
	}
	return int(math.Round(vw)), int(math.Round(vh)), nil
}

func parseLength(s string) (int, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" || strings.HasSuffix(s, "%") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// svgTransparency mirrors the heuristic the review team applies by hand:
// fill:none, rgba() colors or the transparent keyword mean the asset exposes
// whatever sits behind it.
func svgTransparency(data []byte) bool {
	doc := strings.ToLower(string(data))
	return strings.Contains(doc, "fill=\"none\"") ||
		strings.Contains(doc, "fill:none") ||
		strings.Contains(doc, "rgba") ||
		strings.Contains(doc, "transparent")
}
