package dom

import "golang.org/x/net/html"

// Rect is an element box in CSS pixels. Top is document-relative.
type Rect struct {
	Top    float64
	Width  float64
	Height float64
}

// Layout answers the geometry questions the controllers ask of the page.
type Layout interface {
	// ScrollY is the current vertical scroll offset of the page.
	ScrollY() float64
	// ViewportWidth is the window's inner width.
	ViewportWidth() float64
	// Box returns the rendered box of n.
	Box(n *html.Node) Rect
}

// StaticLayout is a Layout backed by fixed measurements. Boxes are looked up
// by node first, then by the first matching class in ByClass.
type StaticLayout struct {
	Scroll  float64
	Width   float64
	Nodes   map[*html.Node]Rect
	ByClass map[string]Rect
}

// NewStaticLayout returns an empty StaticLayout with a 1280px viewport.
func NewStaticLayout() *StaticLayout {
	return &StaticLayout{
		Width:   1280,
		Nodes:   make(map[*html.Node]Rect),
		ByClass: make(map[string]Rect),
	}
}

func (l *StaticLayout) ScrollY() float64       { return l.Scroll }
func (l *StaticLayout) ViewportWidth() float64 { return l.Width }

func (l *StaticLayout) Box(n *html.Node) Rect {
	if r, ok := l.Nodes[n]; ok {
		return r
	}
	for _, c := range Classes(n) {
		if r, ok := l.ByClass[c]; ok {
			return r
		}
	}
	return Rect{}
}

// Set records the box of n.
func (l *StaticLayout) Set(n *html.Node, r Rect) {
	l.Nodes[n] = r
}
