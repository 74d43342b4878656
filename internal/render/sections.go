package render

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/portfolio"
)

// Hero fills the lead panel: anchor id, labels, diagram id, linked video,
// diagram notes and metric lines.
func (r *Renderer) Hero(h portfolio.Hero) {
	section := r.page.ByID(portfolio.DefaultHeroSection)
	mermaid := r.page.ByID(IDHeroMermaid)
	var graph *html.Node
	if mermaid != nil {
		graph = dom.Closest(mermaid, dom.ByClass("graph-container"))
	}

	if section != nil && h.SectionID != "" {
		dom.SetAttr(section, "id", h.SectionID)
	}
	r.setText(IDHeroPanelTitle, h.PanelTitle)
	r.setText(IDHeroPanelUID, h.PanelUID)

	if mermaid != nil && h.DiagramID != "" {
		dom.SetAttr(mermaid, AttrMermaidID, h.DiagramID)
	}
	setVideo(graph, h.Video())
	if graph != nil && h.PanelTitle != "" {
		dom.SetAttr(graph, AttrModalTitle, h.PanelTitle)
	}

	if section != nil && graph != nil {
		heroNotes(section, graph, h.DiagramNotes)
	}

	metrics := r.page.ByID(IDHeroMetrics)
	if metrics == nil {
		r.skip("hero metrics", "no #"+IDHeroMetrics)
		return
	}
	dom.ReplaceChildren(metrics)
	metricLines(metrics, h.Metrics, HeroMetricsFallback)
}

// heroNotes wraps the hero graph in a visual stack followed by the note list.
func heroNotes(section, graph *html.Node, notes []string) {
	stack := dom.FindFirst(section, dom.ByClass("hero-visual-stack"))
	if stack == nil {
		stack = dom.Element("div", "hero-visual-stack")
		dom.InsertBefore(graph, stack)
	}
	if graph.Parent != stack {
		dom.Prepend(stack, graph)
	}

	list := dom.FindFirst(stack, func(n *html.Node) bool {
		return n.Data == "ul" && dom.HasClass(n, "hero-diagram-notes")
	})
	if list == nil {
		list = dom.Element("ul", "hero-diagram-notes")
		dom.Append(stack, list)
	}

	dom.ReplaceChildren(list)
	if len(notes) == 0 {
		notes = []string{HeroNotesFallback}
	}
	for _, note := range notes {
		dom.Append(list, dom.TextElement("li", "", StripQuote(note)))
	}
}

// TopPanels replaces the top panel slot with one panel per entry.
func (r *Renderer) TopPanels(panels []portfolio.TopPanel) {
	container := r.page.ByID(IDTopPanels)
	if container == nil {
		r.skip("top panels", "no #"+IDTopPanels)
		return
	}
	dom.ReplaceChildren(container)
	for i, p := range panels {
		dom.Append(container, topPanel(p, i))
	}
}

func topPanel(p portfolio.TopPanel, index int) *html.Node {
	class := "panel hero-panel"
	if p.PanelClass != "" {
		class += " " + p.PanelClass
	}
	section := dom.Element("section", class)
	dom.SetAttr(section, "id", portfolio.TopPanelID(p, index))

	title := firstNonEmpty(p.PanelTitle, fmt.Sprintf("TOP_PANEL_%d", index+1))
	header := dom.Element("div", "panel-header")
	dom.Append(header,
		dom.TextElement("span", "panel-title", title),
		dom.TextElement("span", "panel-uid", firstNonEmpty(p.PanelUID, fmt.Sprintf("ID: TOP-%02d", index+1))),
	)

	graph := dom.Element("div", "graph-container")
	mermaid := dom.Element("div", "mermaid")
	dom.SetAttr(mermaid, AttrMermaidID, p.DiagramID)
	dom.Append(graph, mermaid)
	setVideo(graph, p.Video())
	dom.SetAttr(graph, AttrModalTitle, title)

	metrics := dom.Element("div", "hero-message")
	metricLines(metrics, p.Metrics, TopPanelMetricsFallback)

	dom.Append(section, header, graph, metrics)
	return section
}

// Skills fills the skill grid with one card per item.
func (r *Renderer) Skills(s portfolio.Skills) {
	section := r.page.ByID(portfolio.DefaultSkillsSection)
	grid := r.page.ByID(IDSkillGrid)
	if grid == nil {
		r.skip("skills", "no #"+IDSkillGrid)
		return
	}

	if section != nil && s.SectionID != "" {
		dom.SetAttr(section, "id", s.SectionID)
	}
	r.setText(IDSkillsPanelTitle, s.PanelTitle)
	r.setText(IDSkillsPanelUID, s.PanelUID)

	dom.ReplaceChildren(grid)
	for _, item := range s.Items {
		card := dom.Element("article", "skill-card")
		dom.Append(card,
			dom.TextElement("h3", "skill-card-title", firstNonEmpty(item.Title, "CATEGORY")),
			dom.TextElement("p", "skill-card-stack", item.Stack),
		)
		dom.Append(grid, card)
	}
}

// Contact fills the closing panel and its action buttons.
func (r *Renderer) Contact(c portfolio.Contact) {
	section := r.page.ByID(portfolio.DefaultContactSection)
	if section != nil && c.SectionID != "" {
		dom.SetAttr(section, "id", c.SectionID)
	}
	r.setText(IDContactPanelTitle, c.PanelTitle)
	r.setText(IDContactPanelUID, c.PanelUID)
	if c.Description != "" {
		if desc := r.page.ByID(IDContactDescription); desc != nil {
			r.richText(desc, c.Description)
		}
	}

	actions := r.page.ByID(IDContactActions)
	if actions == nil {
		r.skip("contact actions", "no #"+IDContactActions)
		return
	}
	dom.ReplaceChildren(actions)
	for _, item := range c.Actions {
		href := firstNonEmpty(item.Href, "#")
		a := dom.TextElement("a", "action-btn", firstNonEmpty(item.Label, "LINK"))
		dom.SetAttr(a, "href", href)
		externalize(a, item.Href)
		dom.Append(actions, a)
	}
}

// Navigation replaces the header navigation with one link per item.
func (r *Renderer) Navigation(items []portfolio.NavItem) {
	nav := r.page.ByID(IDHeaderNav)
	if nav == nil {
		r.skip("navigation", "no #"+IDHeaderNav)
		return
	}
	dom.ReplaceChildren(nav)
	for _, item := range items {
		a := dom.TextElement("a", "nav-item", firstNonEmpty(item.Label, "SECTION"))
		dom.SetAttr(a, "href", portfolio.NormalizeHashTarget(item.Target))
		dom.Append(nav, a)
	}
}
