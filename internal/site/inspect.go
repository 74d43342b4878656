package site

import (
	"strings"

	"github.com/ziadkadry99/folio/internal/diagrams"
	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/modal"
)

// Summary describes a rendered page for folio check.
type Summary struct {
	Sections []string
	// Anchors are the navigation targets in link order.
	Anchors []string
	// BrokenAnchors are navigation targets with no matching element.
	BrokenAnchors []string
	Diagrams      int
	Placeholders  []string
	Failures      []diagrams.Outcome
	// VideoTargets counts diagram containers linked to a video.
	VideoTargets int
}

// OK reports whether nothing needs attention.
func (s Summary) OK() bool {
	return len(s.BrokenAnchors) == 0 && len(s.Placeholders) == 0 && len(s.Failures) == 0
}

// Inspect summarizes res.
func Inspect(res *Result) Summary {
	host := res.Host
	s := Summary{
		Sections:     res.Document.SectionIDs(),
		Diagrams:     len(res.Page.Diagrams.Outcomes),
		Placeholders: res.Page.Diagrams.Placeholders(),
		Failures:     res.Page.Diagrams.Failed(),
		VideoTargets: len(host.QueryAll("[" + modal.VideoAttr + "]")),
	}
	if nav := host.ByID("header-nav"); nav != nil {
		for _, link := range host.FindNodes(nav).Find("a[href]").Nodes {
			href := dom.AttrOr(link, "href", "")
			s.Anchors = append(s.Anchors, href)
			if !strings.HasPrefix(href, "#") {
				continue
			}
			if len(href) < 2 || host.ByID(href[1:]) == nil {
				s.BrokenAnchors = append(s.BrokenAnchors, href)
			}
		}
	}
	return s
}
