package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/folio/internal/dom"
)

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
	)
}

// richText fills target with text, as markdown when enabled. A single
// rendered paragraph is unwrapped into target; anything larger turns target
// into a div.
func (r *Renderer) richText(target *html.Node, text string) {
	if r.md == nil || text == "" {
		dom.SetText(target, text)
		return
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		r.logger.Warn("markdown conversion failed", zap.Error(err))
		dom.SetText(target, text)
		return
	}
	nodes, err := dom.ParseFragment(target, buf.String())
	if err != nil {
		r.logger.Warn("markdown output unparsable", zap.Error(err))
		dom.SetText(target, text)
		return
	}

	var blocks []*html.Node
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		blocks = append(blocks, n)
	}

	if len(blocks) == 1 && blocks[0].Type == html.ElementNode && blocks[0].Data == "p" {
		var inline []*html.Node
		for c := blocks[0].FirstChild; c != nil; c = c.NextSibling {
			inline = append(inline, c)
		}
		dom.ReplaceChildren(target, inline...)
	} else {
		target.Data = "div"
		target.DataAtom = atom.Div
		dom.ReplaceChildren(target, blocks...)
	}
	dom.AddClass(target, "is-markdown")
}
