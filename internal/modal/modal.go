// Package modal implements the expanded diagram viewer: a closed -> opening
// -> open -> closing state machine with bounded zoom, drag panning and an
// optional linked video pane.
package modal

import (
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/diagrams"
	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/video"
)

// State is a phase of the open/close cycle.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

const (
	ZoomMin  = 0.55
	ZoomMax  = 3.0
	ZoomStep = 0.15
	// BaseScale enlarges the diagram's intrinsic size when it is first shown.
	BaseScale = 1.08
	// panThreshold is the zoom above which the viewport can be dragged.
	panThreshold = 1.001

	DefaultTitle   = "Mermaid Diagram"
	TargetSelector = ".graph-container, .card-visual"
	VideoAttr      = "data-youtube-video-id"
	TitleAttr      = "data-modal-title"
)

// Page ids and markers the controller binds to.
const (
	ModalID   = "mermaid-modal"
	ContentID = "mermaid-modal-content"
	TitleID   = "mermaid-modal-title"
)

// Options configures a Controller.
type Options struct {
	Logger *zap.Logger
	// OnTransition observes every state change.
	OnTransition func(from, to State)
}

// Controller owns all viewer state. The page is only ever written to.
type Controller struct {
	page   *dom.Document
	layout dom.Layout
	sched  dom.Scheduler
	logger *zap.Logger
	onTr   func(from, to State)

	modal     *html.Node
	content   *html.Node
	title     *html.Node
	dialog    *html.Node
	controls  *html.Node
	zoomValue *html.Node

	state  State
	zoom   float64
	baseW  float64
	baseH  float64
	target *html.Node

	svg      *html.Node
	canvas   *html.Node
	viewport *html.Node
	view     Viewport
	pan      panState
	videoID  string
}

// New returns a Controller in the Closed state.
func New(page *dom.Document, layout dom.Layout, sched dom.Scheduler, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		page:   page,
		layout: layout,
		sched:  sched,
		logger: logger,
		onTr:   opts.OnTransition,
		zoom:   1,
	}
}

// Setup binds the viewer to the page and makes every diagram container
// activatable. It returns false when the modal markup is missing.
func (c *Controller) Setup() bool {
	c.modal = c.page.ByID(ModalID)
	c.content = c.page.ByID(ContentID)
	c.title = c.page.ByID(TitleID)
	if c.modal != nil {
		c.dialog = c.page.QueryIn(c.modal, ".mermaid-modal-dialog")
	}
	if c.modal == nil || c.content == nil || c.title == nil || c.dialog == nil {
		c.logger.Debug("diagram modal disabled", zap.String("reason", "modal markup missing"))
		return false
	}

	c.controls = c.page.QueryIn(c.modal, ".mermaid-modal-controls")
	if c.controls == nil {
		c.controls = zoomControls()
		dom.Append(c.dialog, c.controls)
	}
	c.zoomValue = c.page.QueryIn(c.controls, ".mermaid-zoom-value")

	for _, button := range c.page.FindNodes(c.controls).Find("[data-mermaid-zoom]").Nodes {
		action := dom.AttrOr(button, "data-mermaid-zoom", "")
		c.page.On(button, "click", func(*dom.Event) { c.control(action) })
	}

	c.page.On(c.content, "wheel", c.HandleWheel)
	c.page.On(c.content, "pointerdown", c.PointerDown)
	c.page.On(c.content, "pointermove", c.PointerMove)
	c.page.On(c.content, "pointerup", func(*dom.Event) { c.EndPan() })
	c.page.On(c.content, "pointercancel", func(*dom.Event) { c.EndPan() })
	c.page.On(c.content, "pointerleave", c.PointerLeave)

	for _, target := range c.page.QueryAll(TargetSelector) {
		c.bindTarget(target)
	}

	for _, closer := range c.page.FindNodes(c.modal).Find("[data-mermaid-close]").Nodes {
		c.page.On(closer, "click", func(*dom.Event) { c.Close() })
	}
	c.page.On(c.page.Root(), "keydown", c.HandleKey)
	return true
}

func (c *Controller) bindTarget(target *html.Node) {
	dom.AddClass(target, "mermaid-zoom-target")
	dom.SetAttr(target, "tabindex", "0")
	dom.SetAttr(target, "role", "button")

	if id := dom.AttrOr(target, VideoAttr, ""); id != "" {
		dom.SetAttr(target, "aria-label", "Open expanded Mermaid diagram and play linked YouTube video")
		c.bindPreview(target, id)
	} else {
		dom.SetAttr(target, "aria-label", "Open expanded Mermaid diagram")
	}

	c.page.On(target, "click", func(*dom.Event) { c.Open(target) })
	c.page.On(target, "keydown", func(ev *dom.Event) {
		if ev.Key == "Enter" || ev.Key == " " {
			ev.PreventDefault()
			c.Open(target)
		}
	})
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	c.logger.Debug("diagram modal transition", zap.Stringer("from", from), zap.Stringer("to", to))
	if c.onTr != nil {
		c.onTr(from, to)
	}
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// IsOpen reports whether the viewer is showing a diagram.
func (c *Controller) IsOpen() bool { return c.state == Open }

// Target returns the container the viewer was opened from.
func (c *Controller) Target() *html.Node { return c.target }

// VideoID returns the linked video of the open diagram, if any.
func (c *Controller) VideoID() string { return c.videoID }

// Open shows target's rendered diagram in the viewer. A target without a
// rendered svg leaves the viewer closed. Opening while already open first
// closes the current diagram.
func (c *Controller) Open(target *html.Node) bool {
	if c.modal == nil || target == nil {
		return false
	}
	source := c.page.QueryIn(target, ".mermaid svg")
	if source == nil {
		return false
	}
	if c.state == Open {
		c.Close()
	}
	if c.state != Closed {
		return false
	}
	c.transition(Opening)

	c.baseW, c.baseH = c.baseSize(source)
	clone := dom.Clone(source)
	dom.SetStyle(clone, "max-width", "none")
	dom.SetStyle(clone, "width", "100%")
	dom.SetStyle(clone, "height", "100%")
	dom.SetAttr(clone, "width", formatPx(c.baseW))
	dom.SetAttr(clone, "height", formatPx(c.baseH))

	canvas := dom.Element("div", "mermaid-modal-canvas")
	dom.SetStyle(canvas, "width", formatPx(c.baseW)+"px")
	dom.SetStyle(canvas, "height", formatPx(c.baseH)+"px")
	dom.Append(canvas, clone)

	viewport := dom.Element("div", "mermaid-modal-diagram-viewport")
	dom.Append(viewport, canvas)

	layout := dom.Element("div", "mermaid-modal-layout")
	dom.Append(layout, diagramPane(viewport))

	c.videoID = dom.AttrOr(target, VideoAttr, "")
	if c.videoID != "" {
		dom.Append(layout, videoPane(video.EmbedURL(c.videoID, video.ModalPlayback)))
	}
	dom.ToggleClass(c.content, "has-linked-video", c.videoID != "")
	dom.ReplaceChildren(c.content, layout)

	c.target = target
	c.svg = clone
	c.canvas = canvas
	c.viewport = viewport
	c.pan = panState{}
	c.zoom = 1
	c.view = Viewport{}
	c.applyZoom()

	dom.SetText(c.title, c.titleFor(target))
	dom.AddClass(c.modal, "is-open")
	dom.SetAttr(c.modal, "aria-hidden", "false")
	if body := c.page.Body(); body != nil {
		dom.AddClass(body, "modal-open")
	}

	c.transition(Open)
	c.scheduleCenter()
	return true
}

// Close tears the viewer down and resets zoom and pan. Closing a closed
// viewer does nothing.
func (c *Controller) Close() {
	if c.state != Open {
		return
	}
	c.transition(Closing)

	dom.RemoveClass(c.modal, "is-open")
	dom.SetAttr(c.modal, "aria-hidden", "true")
	dom.ReplaceChildren(c.content)
	c.EndPan()
	dom.RemoveClass(c.content, "has-linked-video")
	if c.viewport != nil {
		dom.RemoveClass(c.viewport, "can-pan")
	}

	c.target = nil
	c.svg = nil
	c.canvas = nil
	c.viewport = nil
	c.view = Viewport{}
	c.pan = panState{}
	c.videoID = ""
	c.baseW, c.baseH = 0, 0
	c.zoom = 1
	if c.zoomValue != nil {
		dom.SetText(c.zoomValue, "100%")
	}
	if body := c.page.Body(); body != nil {
		dom.RemoveClass(body, "modal-open")
	}

	c.transition(Closed)
}

// baseSize prefers the svg's viewBox and falls back to its rendered box.
func (c *Controller) baseSize(svg *html.Node) (float64, float64) {
	if w, h, ok := diagrams.ViewBox(svg); ok {
		w, h = math.Round(w*BaseScale), math.Round(h*BaseScale)
		if w > 0 && h > 0 {
			return w, h
		}
	}
	box := c.layout.Box(svg)
	return math.Max(1, math.Round(box.Width*BaseScale)), math.Max(1, math.Round(box.Height*BaseScale))
}

// titleFor names the diagram after its card or panel.
func (c *Controller) titleFor(target *html.Node) string {
	if t := strings.TrimSpace(dom.AttrOr(target, TitleAttr, "")); t != "" {
		return t
	}
	if card := c.page.ClosestMatch(target, ".service-card"); card != nil {
		if t := strings.TrimSpace(dom.Text(c.page.QueryIn(card, ".card-title"))); t != "" {
			return t
		}
	}
	if panel := c.page.ClosestMatch(target, ".hero-panel"); panel != nil {
		if t := strings.TrimSpace(dom.Text(c.page.QueryIn(panel, ".panel-title"))); t != "" {
			return t
		}
	}
	return DefaultTitle
}

func (c *Controller) control(action string) {
	if c.state != Open {
		return
	}
	switch action {
	case "in":
		c.ZoomIn()
	case "out":
		c.ZoomOut()
	default:
		c.ResetZoom()
	}
}

// HandleKey implements the shortcuts available while the viewer is open.
func (c *Controller) HandleKey(ev *dom.Event) {
	if c.state != Open {
		return
	}
	switch ev.Key {
	case "Escape":
		c.Close()
	case "+", "=":
		ev.PreventDefault()
		c.ZoomIn()
	case "-", "_":
		ev.PreventDefault()
		c.ZoomOut()
	case "0":
		ev.PreventDefault()
		c.ResetZoom()
	}
}
