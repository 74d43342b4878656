package diagrams

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
)

// ViewBox returns the intrinsic width and height of a rendered svg from its
// viewBox attribute. ok is false when the attribute is missing, malformed, or
// has a non-positive size.
func ViewBox(svg *html.Node) (width, height float64, ok bool) {
	if svg == nil {
		return 0, 0, false
	}
	raw, found := dom.Attr(svg, "viewBox")
	if !found {
		raw, found = dom.Attr(svg, "viewbox")
	}
	if !found {
		return 0, 0, false
	}
	return ParseViewBox(raw)
}

// ParseViewBox parses "min-x min-y width height", separated by spaces and/or
// commas.
func ParseViewBox(raw string) (width, height float64, ok bool) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return 0, 0, false
	}
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// RenderedSVG returns the first svg element inside container, or nil when the
// container has not been rendered.
func RenderedSVG(container *html.Node) *html.Node {
	if container == nil {
		return nil
	}
	return dom.FindFirst(container, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "svg"
	})
}
