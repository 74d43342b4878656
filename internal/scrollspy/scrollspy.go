// Package scrollspy highlights the navigation link whose section is under the
// page header as the reader scrolls.
package scrollspy

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
)

// ActiveClass marks the active navigation links.
const ActiveClass = "is-active"

// Options tunes a Controller. Zero values take the defaults.
type Options struct {
	// NavID is the id of the navigation container. Default "header-nav".
	NavID string
	// LinkSelector selects links inside the navigation. Default
	// ".nav-item, .nav-sub-item".
	LinkSelector string
	// HeaderSelector selects the fixed header whose height offsets the
	// baseline. Default ".status-bar".
	HeaderSelector string
	// Lookahead is added to the baseline below the header. Default 28.
	Lookahead float64
	// Checkpoints are delays after Setup at which offsets are recomputed.
	// Default 160ms and 720ms.
	Checkpoints []time.Duration
	Logger      *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.NavID == "" {
		o.NavID = "header-nav"
	}
	if o.LinkSelector == "" {
		o.LinkSelector = ".nav-item, .nav-sub-item"
	}
	if o.HeaderSelector == "" {
		o.HeaderSelector = ".status-bar"
	}
	if o.Lookahead == 0 {
		o.Lookahead = 28
	}
	if o.Checkpoints == nil {
		o.Checkpoints = []time.Duration{160 * time.Millisecond, 720 * time.Millisecond}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Target is a section's document-relative top offset.
type Target struct {
	ID  string
	Top float64
}

type entry struct {
	section *html.Node
	links   []*html.Node
}

// Controller tracks which section is active. Its state lives here, never in
// the page.
type Controller struct {
	page   *dom.Document
	layout dom.Layout
	sched  dom.Scheduler
	opts   Options

	links   []*html.Node
	targets map[string]*entry
	order   []string
	sorted  []Target
	active  string
	pending bool
}

// New returns a Controller. Call Setup once the page is fully rendered.
func New(page *dom.Document, layout dom.Layout, sched dom.Scheduler, opts Options) *Controller {
	return &Controller{
		page:    page,
		layout:  layout,
		sched:   sched,
		opts:    opts.withDefaults(),
		targets: make(map[string]*entry),
	}
}

// Setup maps navigation links to their sections, activates the current one
// and starts listening for scroll, resize and hash changes. It returns false
// and does nothing when no link points at an existing section.
func (c *Controller) Setup() bool {
	nav := c.page.ByID(c.opts.NavID)
	if nav == nil {
		c.opts.Logger.Debug("scroll-spy disabled", zap.String("reason", "no navigation"))
		return false
	}

	c.links = nil
	for _, link := range c.page.FindNodes(nav).Find(c.opts.LinkSelector).Nodes {
		c.links = append(c.links, link)
		href := dom.AttrOr(link, "href", "")
		if !strings.HasPrefix(href, "#") || len(href) < 2 {
			continue
		}
		id := href[1:]
		section := c.page.ByID(id)
		if section == nil {
			continue
		}
		e, ok := c.targets[id]
		if !ok {
			e = &entry{section: section}
			c.targets[id] = e
			c.order = append(c.order, id)
		}
		e.links = append(e.links, link)
	}

	if len(c.targets) == 0 {
		c.opts.Logger.Debug("scroll-spy disabled", zap.String("reason", "no resolvable anchors"))
		return false
	}

	c.Rebuild()
	c.Update()

	c.page.OnWindow("scroll", func(*dom.Event) { c.Schedule() })
	c.page.OnWindow("resize", func(*dom.Event) {
		c.Rebuild()
		c.Schedule()
	})
	c.page.OnWindow("hashchange", func(*dom.Event) { c.Schedule() })

	for _, d := range c.opts.Checkpoints {
		c.sched.SetTimeout(func() {
			c.Rebuild()
			c.Schedule()
		}, d)
	}
	return true
}

// Rebuild re-measures every target and re-sorts them by top offset. Ties keep
// navigation order.
func (c *Controller) Rebuild() {
	sorted := make([]Target, 0, len(c.order))
	for _, id := range c.order {
		sorted = append(sorted, Target{ID: id, Top: c.layout.Box(c.targets[id].section).Top})
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })
	c.sorted = sorted
}

// Baseline is the document offset a section's top must reach to be active.
func (c *Controller) Baseline() float64 {
	header := 0.0
	if h := c.page.Query(c.opts.HeaderSelector); h != nil {
		header = c.layout.Box(h).Height
	}
	return c.layout.ScrollY() + header + c.opts.Lookahead
}

// ActiveFor returns the last target whose top is at or above baseline, or
// the first target when none is.
func ActiveFor(sorted []Target, baseline float64) string {
	if len(sorted) == 0 {
		return ""
	}
	active := sorted[0].ID
	for _, t := range sorted {
		if baseline < t.Top {
			break
		}
		active = t.ID
	}
	return active
}

// Update activates the target matching the current scroll position.
func (c *Controller) Update() {
	if len(c.sorted) == 0 {
		return
	}
	c.Activate(ActiveFor(c.sorted, c.Baseline()))
}

// Activate marks every link pointing at id as active and clears the rest.
// Activating the current target is a no-op. It reports whether anything
// changed.
func (c *Controller) Activate(id string) bool {
	if id == "" || id == c.active {
		return false
	}
	c.active = id
	for _, link := range c.links {
		dom.RemoveClass(link, ActiveClass)
	}
	if e, ok := c.targets[id]; ok {
		for _, link := range e.links {
			dom.AddClass(link, ActiveClass)
		}
	}
	return true
}

// Schedule queues an Update for the next frame unless one is already queued.
func (c *Controller) Schedule() {
	if c.pending {
		return
	}
	c.pending = true
	c.sched.RequestAnimationFrame(func() {
		c.pending = false
		c.Update()
	})
}

// Active returns the active target id.
func (c *Controller) Active() string { return c.active }

// Targets returns the targets sorted by top offset.
func (c *Controller) Targets() []Target {
	return append([]Target(nil), c.sorted...)
}
