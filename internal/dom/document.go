package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a headless page: an HTML element tree queried through goquery,
// plus the event listeners bound to its nodes.
type Document struct {
	*goquery.Document

	listeners map[*html.Node]map[string][]*binding
	window    map[string][]*binding
}

// Parse builds a Document from host page markup.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return &Document{
		Document:  doc,
		listeners: make(map[*html.Node]map[string][]*binding),
		window:    make(map[string][]*binding),
	}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.Selection.Nodes[0]
}

// ByID returns the element with the given id, or nil when absent.
func (d *Document) ByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return FindFirst(d.Root(), func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}

// Query returns the first node matching a CSS selector, or nil.
func (d *Document) Query(selector string) *html.Node {
	sel := d.Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return sel.Nodes[0]
}

// QueryAll returns every node matching a CSS selector in document order.
func (d *Document) QueryAll(selector string) []*html.Node {
	return d.Find(selector).Nodes
}

// QueryIn returns the first descendant of n matching selector, or nil.
func (d *Document) QueryIn(n *html.Node, selector string) *html.Node {
	if n == nil {
		return nil
	}
	sel := goquery.NewDocumentFromNode(n).Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return sel.Nodes[0]
}

// Matches reports whether n matches selector.
func (d *Document) Matches(n *html.Node, selector string) bool {
	if n == nil {
		return false
	}
	return d.FindNodes(n).Is(selector)
}

// ClosestMatch returns the nearest ancestor-or-self of n matching selector.
func (d *Document) ClosestMatch(n *html.Node, selector string) *html.Node {
	if n == nil {
		return nil
	}
	sel := d.FindNodes(n).Closest(selector)
	if sel.Length() == 0 {
		return nil
	}
	return sel.Nodes[0]
}

// Title returns the text of the <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.Find("title").First().Text())
}

// SetTitle replaces the document title, creating <title> in <head> if needed.
func (d *Document) SetTitle(title string) {
	if t := d.Query("title"); t != nil {
		SetText(t, title)
		return
	}
	head := d.Query("head")
	if head == nil {
		return
	}
	Append(head, TextElement("title", "", title))
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	return d.Query("body")
}

// Render serializes the whole document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.Root())
}

// String serializes the whole document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// ParseFragment parses markup in the context of parent and returns the nodes
// without attaching them.
func ParseFragment(parent *html.Node, markup string) ([]*html.Node, error) {
	ctx := parent
	if ctx == nil || ctx.Type != html.ElementNode {
		ctx = Element("div", "")
	}
	return html.ParseFragment(strings.NewReader(markup), ctx)
}
