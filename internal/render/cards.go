package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/analytics"
	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/portfolio"
)

// ServiceSections replaces the service slot with one section per entry, each
// holding its groups' dividers and cards.
func (r *Renderer) ServiceSections(sections []portfolio.ServiceSection) {
	container := r.page.ByID(IDServiceSections)
	if container == nil {
		r.skip("service sections", "no #"+IDServiceSections)
		return
	}
	dom.ReplaceChildren(container)

	for _, s := range sections {
		wrapper := dom.Element("section", "service-section")
		dom.SetAttr(wrapper, "id", s.ID)

		header := dom.Element("div", "section-header")
		dom.Append(header, dom.TextElement("h2", "section-title", firstNonEmpty(s.Title, "SERVICES")))

		grid := dom.Element("div", "service-grid")
		groups := s.Groups
		if len(groups) == 0 {
			groups = []portfolio.Group{{Cards: s.Cards}}
		}
		for _, g := range groups {
			if g.Title != "" || g.Desc != "" {
				dom.Append(grid, groupDivider(g, s.Theme))
			}
			for _, c := range g.Cards {
				dom.Append(grid, r.card(c, s))
			}
		}

		dom.Append(wrapper, header, grid)
		dom.Append(container, wrapper)
	}
}

func groupDivider(g portfolio.Group, theme string) *html.Node {
	divider := dom.Element("div", "group-divider")
	dom.SetAttr(divider, "data-theme", firstNonEmpty(theme, "blue"))
	dom.Append(divider,
		dom.TextElement("span", "group-title", g.Title),
		dom.TextElement("span", "group-desc", g.Desc),
	)
	return divider
}

func (r *Renderer) card(c portfolio.Card, s portfolio.ServiceSection) *html.Node {
	class := strings.Join(strings.Fields("service-card "+s.CardClass+" "+c.CardClass), " ")
	article := dom.Element("article", class)

	visual := dom.Element("div", "card-visual")
	if h := firstNonEmpty(c.VisualHeight, s.CardVisualHeight); h != "" {
		dom.SetStyle(visual, "--card-visual-height", h)
	}
	mermaid := dom.Element("div", "mermaid")
	dom.SetAttr(mermaid, AttrMermaidID, c.MermaidID)
	dom.Append(visual, mermaid)
	setVideo(visual, c.Video())
	if c.Title != "" {
		dom.SetAttr(visual, AttrModalTitle, c.Title)
	}

	content := dom.Element("div", "card-content")
	dom.Append(content, dom.TextElement("h3", "card-title", firstNonEmpty(c.Title, "Card Title")))
	if sub := c.SubtitleText(); sub != "" {
		dom.Append(content, dom.TextElement("p", "card-subtitle", sub))
	}
	desc := dom.Element("p", "card-desc")
	r.richText(desc, c.DescriptionText())
	dom.Append(content, desc)

	dom.Append(content,
		metaLine("ROLE", c.Role),
		metaLine("STACK", c.StackSummary),
		tagList(c.Skills),
		highlightList(c.Highlights),
		r.cardLinks(c),
	)

	dom.Append(article, visual, content)
	return article
}

// metaLine renders "LABEL: value", or nil for an empty value.
func metaLine(label, value string) *html.Node {
	if value == "" {
		return nil
	}
	line := dom.Element("p", "card-meta-line")
	dom.Append(line,
		dom.TextElement("span", "meta-label", label+":"),
		dom.TextElement("span", "meta-value", value),
	)
	return line
}

func tagList(tags []string) *html.Node {
	var wrapper *html.Node
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if wrapper == nil {
			wrapper = dom.Element("div", "card-tags")
		}
		dom.Append(wrapper, dom.TextElement("span", "card-tag", tag))
	}
	return wrapper
}

func highlightList(items []string) *html.Node {
	var list *html.Node
	for _, item := range items {
		if item == "" {
			continue
		}
		if list == nil {
			list = dom.Element("ul", "card-highlights")
		}
		dom.Append(list, dom.TextElement("li", "", item))
	}
	return list
}

// cardLinks renders the card's resolvable links. Each link carries its
// analytics event and pushes it on click.
func (r *Renderer) cardLinks(c portfolio.Card) *html.Node {
	links := portfolio.CardLinks(c)
	if len(links) == 0 {
		return nil
	}

	wrapper := dom.Element("div", "card-links")
	for _, l := range links {
		a := dom.TextElement("a", "card-link", firstNonEmpty(l.Label, "LINK"))
		if variant := strings.ToLower(strings.TrimSpace(l.Variant)); variant != "" {
			dom.AddClass(a, "is-"+variant)
		}
		dom.SetAttr(a, "href", l.Href)
		externalize(a, l.Href)

		event := analytics.ProjectLink(c.Title, l.Label, l.Href)
		dom.SetAttr(a, AttrAnalytics, event.JSON())
		r.page.On(a, "click", func(*dom.Event) {
			analytics.Emit(r.sink, event, r.logger)
		})

		dom.Append(wrapper, a)
	}
	return wrapper
}
