// Package render projects a portfolio document onto the host page's element
// tree. Every section renders independently: a missing mount point skips that
// section only, and absent data degrades to a fallback rather than an error.
package render

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/analytics"
	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/portfolio"
	"github.com/ziadkadry99/folio/internal/video"
)

// Mount point ids on the host page.
const (
	IDSystemName         = "system-name"
	IDHeroPanelTitle     = "hero-panel-title"
	IDHeroPanelUID       = "hero-panel-uid"
	IDHeroMermaid        = "hero-mermaid"
	IDHeroMetrics        = "hero-metrics"
	IDTopPanels          = "top-panels"
	IDSkillGrid          = "skill-grid"
	IDSkillsPanelTitle   = "skills-panel-title"
	IDSkillsPanelUID     = "skills-panel-uid"
	IDServiceSections    = "service-sections"
	IDContactPanelTitle  = "contact-panel-title"
	IDContactPanelUID    = "contact-panel-uid"
	IDContactDescription = "contact-description"
	IDContactActions     = "contact-actions"
	IDHeaderNav          = "header-nav"
)

// Fallback lines for empty lists.
const (
	HeroMetricsFallback     = "> Add metrics in hero.metrics"
	TopPanelMetricsFallback = "> Add metrics in topPanels"
	HeroNotesFallback       = "Add notes in hero.diagramNotes"
)

// Attributes the renderer leaves for the browser runtime and the controllers.
const (
	AttrMermaidID  = "data-mermaid-id"
	AttrVideoID    = "data-youtube-video-id"
	AttrModalTitle = "data-modal-title"
	AttrAnalytics  = "data-analytics"
)

var quoteMarker = regexp.MustCompile(`^>\s*`)

// Options configures a Renderer.
type Options struct {
	Logger *zap.Logger
	// Analytics receives project link events. Nil disables tracking.
	Analytics analytics.Sink
	// Markdown renders card descriptions and the contact description as
	// markdown instead of plain text.
	Markdown bool
}

// Renderer writes document sections into a page.
type Renderer struct {
	page   *dom.Document
	logger *zap.Logger
	sink   analytics.Sink
	md     goldmark.Markdown
}

// New returns a Renderer for page.
func New(page *dom.Document, opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{page: page, logger: logger, sink: opts.Analytics}
	if opts.Markdown {
		r.md = newMarkdown()
	}
	return r
}

// Document renders every section in page order.
func (r *Renderer) Document(doc *portfolio.Document) {
	r.System(doc.System)
	r.Hero(doc.Hero)
	r.ServiceSections(doc.ServiceSections)
	r.TopPanels(doc.TopPanels)
	r.Skills(doc.Skills)
	r.Contact(doc.Contact)
	r.Navigation(doc.NavItems())
}

// System sets the document title and the system name label.
func (r *Renderer) System(s portfolio.System) {
	if s.DocumentTitle != "" {
		r.page.SetTitle(s.DocumentTitle)
	}
	r.setText(IDSystemName, s.SystemName)
}

// setText replaces the text of the element with the given id. Empty values
// leave the element as it is.
func (r *Renderer) setText(id, value string) {
	if value == "" {
		return
	}
	if el := r.page.ByID(id); el != nil {
		dom.SetText(el, value)
	}
}

func (r *Renderer) skip(section, reason string) {
	r.logger.Debug("section skipped", zap.String("section", section), zap.String("reason", reason))
}

// StripQuote removes one leading "> " quote marker.
func StripQuote(line string) string {
	return quoteMarker.ReplaceAllString(line, "")
}

// metricLines appends one "> " line per entry, or the fallback when lines is
// empty.
func metricLines(container *html.Node, lines []string, fallback string) {
	if len(lines) == 0 {
		dom.Append(container, dom.TextElement("p", "", fallback))
		return
	}
	for _, line := range lines {
		dom.Append(container, dom.TextElement("p", "", "> "+StripQuote(line)))
	}
}

// setVideo marks container with the linked video resolved from src, clearing
// any earlier marker when nothing resolves.
func setVideo(container *html.Node, src portfolio.VideoSource) string {
	if container == nil {
		return ""
	}
	id := video.Resolve(src.ID, src.URL, src.Hrefs...)
	if id == "" {
		dom.RemoveAttr(container, AttrVideoID)
		return ""
	}
	dom.SetAttr(container, AttrVideoID, id)
	return id
}

// IsMailLink reports whether href opens a mail client.
func IsMailLink(href string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(href)), "mailto:")
}

// externalize makes a non-mail link open in a new context without opener or
// referrer.
func externalize(a *html.Node, href string) {
	if IsMailLink(href) {
		return
	}
	dom.SetAttr(a, "target", "_blank")
	dom.SetAttr(a, "rel", "noopener noreferrer")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
