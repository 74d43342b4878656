package site

import (
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
)

// flowStep is the height given to each element in flowLayout.
const flowStep = 100

// flowLayout stands in for geometry when there is no browser: every element
// sits below the elements before it in document order. The page opens at the
// top with a 1280px viewport.
type flowLayout struct {
	doc *dom.Document
}

func newFlowLayout(doc *dom.Document) flowLayout { return flowLayout{doc: doc} }

func (flowLayout) ScrollY() float64       { return 0 }
func (flowLayout) ViewportWidth() float64 { return 1280 }

func (l flowLayout) Box(n *html.Node) dom.Rect {
	pos := 0
	found := false
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if found {
			return
		}
		if cur == n {
			found = true
			return
		}
		if cur.Type == html.ElementNode {
			pos++
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(l.doc.Root())
	if !found {
		return dom.Rect{}
	}
	return dom.Rect{Top: float64(pos * flowStep)}
}
