package modal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
)

const page = `<html><body>
<section class="panel hero-panel">
  <span class="panel-title">SYSTEM_ARCHITECTURE</span>
  <div class="graph-container" id="hero-graph">
    <div class="mermaid"><svg viewBox="0 0 500 250" width="100%"><g></g></svg></div>
  </div>
</section>
<article class="service-card">
  <div class="card-visual" id="card-visual" data-youtube-video-id="dQw4w9WgXcQ">
    <div class="mermaid"><svg width="100%"><g></g></svg></div>
  </div>
  <div class="card-content"><h3 class="card-title"> Ledger </h3></div>
</article>
<article class="service-card">
  <div class="card-visual" id="pending"><div class="mermaid">graph TD</div></div>
</article>
<div id="mermaid-modal" aria-hidden="true">
  <div class="mermaid-modal-dialog">
    <button data-mermaid-close>X</button>
    <h2 id="mermaid-modal-title"></h2>
    <div id="mermaid-modal-content"></div>
  </div>
</div>
</body></html>`

type fixture struct {
	page   *dom.Document
	layout *dom.StaticLayout
	loop   *dom.Loop
	modal  *Controller
	trace  []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	p, err := dom.ParseString(page)
	require.NoError(t, err)

	layout := dom.NewStaticLayout()
	layout.ByClass["mermaid-modal-diagram-viewport"] = dom.Rect{Width: 400, Height: 300}
	layout.Set(p.Query("#card-visual svg"), dom.Rect{Width: 300, Height: 120})

	f := &fixture{page: p, layout: layout, loop: dom.NewLoop()}
	f.modal = New(p, layout, f.loop, Options{OnTransition: func(from, to State) {
		f.trace = append(f.trace, from.String()+">"+to.String())
	}})
	require.True(t, f.modal.Setup())
	return f
}

func (f *fixture) node(id string) *html.Node { return f.page.ByID(id) }

func (f *fixture) zoomText() string {
	return dom.Text(f.page.Query(".mermaid-zoom-value"))
}

func (f *fixture) key(k string) *dom.Event {
	ev := &dom.Event{Type: "keydown", Key: k}
	f.page.Dispatch(f.page.Body(), ev)
	return ev
}

func (f *fixture) canvasStyle(prop string) string {
	return dom.Style(f.page.Query(".mermaid-modal-canvas"), prop)
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "300%"},
		{0.01, "55%"},
		{1, "100%"},
		{1.15, "115%"},
		{-4, "55%"},
	}
	for _, tt := range tests {
		if got := ZoomLabel(ClampZoom(tt.in)); got != tt.want {
			t.Errorf("ZoomLabel(ClampZoom(%v)) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetupDecoratesTargets(t *testing.T) {
	f := newFixture(t)

	hero := f.node("hero-graph")
	assert.True(t, dom.HasClass(hero, "mermaid-zoom-target"))
	assert.Equal(t, "0", dom.AttrOr(hero, "tabindex", ""))
	assert.Equal(t, "button", dom.AttrOr(hero, "role", ""))
	assert.Equal(t, "Open expanded Mermaid diagram", dom.AttrOr(hero, "aria-label", ""))

	card := f.node("card-visual")
	assert.True(t, dom.HasClass(card, "has-youtube-preview"))
	assert.Contains(t, dom.AttrOr(card, "aria-label", ""), "linked YouTube video")

	require.NotNil(t, f.page.Query(".mermaid-modal-controls"))
	assert.Len(t, f.page.QueryAll("[data-mermaid-zoom]"), 3)
	assert.Equal(t, "100%", f.zoomText())
}

func TestSetupWithoutModal(t *testing.T) {
	p, err := dom.ParseString(`<html><body><div class="graph-container"></div></body></html>`)
	require.NoError(t, err)
	c := New(p, dom.NewStaticLayout(), dom.NewLoop(), Options{})
	assert.False(t, c.Setup())
	assert.False(t, c.Open(p.Query(".graph-container")))
}

func TestOpenUsesViewBox(t *testing.T) {
	f := newFixture(t)
	f.page.Dispatch(f.node("hero-graph"), &dom.Event{Type: "click"})

	require.Equal(t, Open, f.modal.State())
	assert.Equal(t, []string{"closed>opening", "opening>open"}, f.trace)

	w, h := f.modal.BaseSize()
	assert.Equal(t, 540.0, w)
	assert.Equal(t, 270.0, h)
	assert.Equal(t, "540px", f.canvasStyle("width"))
	assert.Equal(t, "270px", f.canvasStyle("height"))

	clone := f.page.Query("#mermaid-modal-content svg")
	require.NotNil(t, clone)
	assert.Equal(t, "540", dom.AttrOr(clone, "width", ""))
	assert.Equal(t, "none", dom.Style(clone, "max-width"))

	modal := f.node("mermaid-modal")
	assert.True(t, dom.HasClass(modal, "is-open"))
	assert.Equal(t, "false", dom.AttrOr(modal, "aria-hidden", ""))
	assert.True(t, dom.HasClass(f.page.Body(), "modal-open"))
	assert.Equal(t, "SYSTEM_ARCHITECTURE", dom.Text(f.node("mermaid-modal-title")))
	assert.Nil(t, f.page.Query(".mermaid-modal-video-pane"))
	assert.False(t, dom.HasClass(f.node("mermaid-modal-content"), "has-linked-video"))

	f.loop.Frame()
	f.loop.Frame()
	assert.Equal(t, 70.0, f.modal.View().ScrollLeft, "centered over the 540px canvas in a 400px viewport")
}

func TestOpenFallsBackToRenderedBox(t *testing.T) {
	f := newFixture(t)
	ev := &dom.Event{Type: "keydown", Key: "Enter"}
	f.page.Dispatch(f.node("card-visual"), ev)

	require.True(t, f.modal.IsOpen())
	assert.True(t, ev.DefaultPrevented())
	w, h := f.modal.BaseSize()
	assert.Equal(t, 324.0, w)
	assert.Equal(t, 130.0, h)

	assert.Equal(t, "Ledger", dom.Text(f.node("mermaid-modal-title")))
	assert.Equal(t, "dQw4w9WgXcQ", f.modal.VideoID())
	frame := f.page.Query(".mermaid-modal-video-pane iframe.mermaid-modal-video")
	require.NotNil(t, frame)
	src := dom.AttrOr(frame, "src", "")
	assert.Contains(t, src, "/embed/dQw4w9WgXcQ?autoplay=1&mute=0&controls=1")
	assert.Contains(t, src, "loop=0")
	assert.True(t, dom.HasClass(f.node("mermaid-modal-content"), "has-linked-video"))
}

func TestOpenWithoutRenderedDiagram(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.modal.Open(f.node("pending")))
	assert.Equal(t, Closed, f.modal.State())
	assert.Empty(t, f.trace)
}

func TestZoomControlsAndKeys(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.modal.Open(f.node("hero-graph")))

	f.page.Dispatch(f.page.Query(`[data-mermaid-zoom="in"]`), &dom.Event{Type: "click"})
	assert.Equal(t, "115%", f.zoomText())
	assert.Equal(t, "621px", f.canvasStyle("width"))
	assert.True(t, dom.HasClass(f.page.Query(".mermaid-modal-diagram-viewport"), "can-pan"))

	ev := f.key("=")
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, "130%", f.zoomText())

	f.key("_")
	f.key("-")
	f.key("-")
	assert.Equal(t, "85%", f.zoomText())
	assert.False(t, dom.HasClass(f.page.Query(".mermaid-modal-diagram-viewport"), "can-pan"))

	clone := f.page.Query("#mermaid-modal-content svg")
	assert.Equal(t, "540", dom.AttrOr(clone, "width", ""), "svg keeps its base size")

	f.key("0")
	assert.Equal(t, "100%", f.zoomText())

	f.page.Dispatch(f.page.Query(`[data-mermaid-zoom="out"]`), &dom.Event{Type: "click"})
	f.page.Dispatch(f.page.Query(`[data-mermaid-zoom="reset"]`), &dom.Event{Type: "click"})
	assert.Equal(t, 1.0, f.modal.Zoom())
}

func TestZoomBounds(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.modal.Open(f.node("hero-graph")))

	f.modal.SetZoom(10)
	assert.Equal(t, "300%", f.zoomText())
	assert.False(t, f.modal.ZoomIn())

	f.modal.SetZoom(0.01)
	assert.Equal(t, "55%", f.zoomText())
	assert.False(t, f.modal.ZoomOut())
}

func TestKeysIgnoredWhileClosed(t *testing.T) {
	f := newFixture(t)
	ev := f.key("+")
	assert.False(t, ev.DefaultPrevented())
	assert.Equal(t, 1.0, f.modal.Zoom())
	assert.False(t, f.modal.SetZoom(2))
}

func TestWheelZoomNeedsModifier(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.modal.Open(f.node("hero-graph")))
	canvas := f.page.Query(".mermaid-modal-canvas")

	plain := &dom.Event{Type: "wheel", DeltaY: -100}
	f.page.Dispatch(canvas, plain)
	assert.False(t, plain.DefaultPrevented())
	assert.Equal(t, 1.0, f.modal.Zoom())

	ctrl := &dom.Event{Type: "wheel", DeltaY: -100, CtrlKey: true}
	f.page.Dispatch(canvas, ctrl)
	assert.True(t, ctrl.DefaultPrevented())
	assert.Equal(t, "115%", f.zoomText())

	cmd := &dom.Event{Type: "wheel", DeltaY: 100, MetaKey: true}
	f.page.Dispatch(canvas, cmd)
	assert.Equal(t, "100%", f.zoomText())

	outside := &dom.Event{Type: "wheel", DeltaY: -100, CtrlKey: true}
	f.page.Dispatch(f.page.Query(".mermaid-modal-panel-header"), outside)
	assert.False(t, outside.DefaultPrevented())
}

func TestPanOnlyWhenZoomed(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.modal.Open(f.node("hero-graph")))
	canvas := f.page.Query(".mermaid-modal-canvas")
	f.loop.Frame()
	f.loop.Frame()

	f.page.Dispatch(canvas, &dom.Event{Type: "pointerdown", ClientX: 100, ClientY: 100})
	assert.False(t, f.modal.Panning(), "no panning at 100%")

	f.modal.SetZoom(2)
	start := f.modal.View()
	assert.Equal(t, 1080.0, start.ContentWidth)

	f.page.Dispatch(canvas, &dom.Event{Type: "pointerdown", Button: 2, ClientX: 100, ClientY: 100})
	assert.False(t, f.modal.Panning(), "secondary button does not pan")

	down := &dom.Event{Type: "pointerdown", ClientX: 100, ClientY: 100}
	f.page.Dispatch(canvas, down)
	require.True(t, f.modal.Panning())
	assert.True(t, down.DefaultPrevented())
	assert.True(t, dom.HasClass(f.page.Query(".mermaid-modal-diagram-viewport"), "is-panning"))

	f.page.Dispatch(canvas, &dom.Event{Type: "pointermove", ClientX: 60, ClientY: 80})
	view := f.modal.View()
	assert.Equal(t, start.ScrollLeft+40, view.ScrollLeft)
	assert.Equal(t, 20.0, view.ScrollTop)

	f.page.Dispatch(canvas, &dom.Event{Type: "pointermove", ClientX: 5000, ClientY: 5000})
	assert.Equal(t, 0.0, f.modal.View().ScrollLeft, "scroll clamps at the canvas edge")

	f.page.Dispatch(f.node("mermaid-modal-content"), &dom.Event{Type: "pointerleave", Buttons: 1})
	assert.True(t, f.modal.Panning(), "button still held")
	f.page.Dispatch(f.node("mermaid-modal-content"), &dom.Event{Type: "pointerleave"})
	assert.False(t, f.modal.Panning())

	f.page.Dispatch(canvas, &dom.Event{Type: "pointerdown", ClientX: 10, ClientY: 10})
	require.True(t, f.modal.Panning())
	f.modal.SetZoom(1)
	assert.False(t, f.modal.Panning(), "zooming back to 100% cancels the pan")
}

func TestCloseAndReopenResetsState(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.modal.Open(f.node("hero-graph")))
	f.modal.SetZoom(2)
	canvas := f.page.Query(".mermaid-modal-canvas")
	f.page.Dispatch(canvas, &dom.Event{Type: "pointerdown", ClientX: 100, ClientY: 100})
	f.page.Dispatch(canvas, &dom.Event{Type: "pointermove", ClientX: 50, ClientY: 50})
	require.True(t, f.modal.Panning())

	f.key("Escape")
	assert.Equal(t, Closed, f.modal.State())
	assert.False(t, f.modal.Panning())
	assert.Equal(t, "100%", f.zoomText())
	assert.Equal(t, Viewport{}, f.modal.View())
	assert.Nil(t, f.node("mermaid-modal-content").FirstChild)
	assert.Equal(t, "true", dom.AttrOr(f.node("mermaid-modal"), "aria-hidden", ""))
	assert.False(t, dom.HasClass(f.page.Body(), "modal-open"))

	require.True(t, f.modal.Open(f.node("card-visual")))
	assert.Equal(t, 1.0, f.modal.Zoom())
	assert.Equal(t, 0.0, f.modal.View().ScrollTop)
	assert.False(t, f.modal.Panning())

	f.page.Dispatch(f.page.Query("[data-mermaid-close]"), &dom.Event{Type: "click"})
	assert.Equal(t, Closed, f.modal.State())
	assert.Equal(t, []string{
		"closed>opening", "opening>open", "open>closing", "closing>closed",
		"closed>opening", "opening>open", "open>closing", "closing>closed",
	}, f.trace)

	f.modal.Close()
	assert.Len(t, f.trace, 8, "closing a closed viewer is a no-op")
}

func TestHoverPreviewMountsOnce(t *testing.T) {
	f := newFixture(t)
	card := f.node("card-visual")
	assert.Nil(t, f.page.QueryIn(card, ".youtube-hover-preview"), "nothing mounted before interaction")

	f.page.Dispatch(card, &dom.Event{Type: "mouseenter"})
	f.page.Dispatch(card, &dom.Event{Type: "focusin"})
	f.page.Dispatch(card, &dom.Event{Type: "touchstart"})

	previews := f.page.FindNodes(card).Find(".youtube-hover-preview").Nodes
	require.Len(t, previews, 1)
	frame := f.page.QueryIn(card, "iframe.youtube-hover-frame")
	src := dom.AttrOr(frame, "src", "")
	assert.True(t, strings.Contains(src, "autoplay=1&mute=1&controls=0"))
	assert.True(t, strings.HasSuffix(src, "&loop=1&playlist=dQw4w9WgXcQ"))
	assert.Equal(t, PreviewHint, dom.Text(f.page.QueryIn(card, ".youtube-hover-hint")))

	assert.False(t, MountPreview(f.page, f.node("hero-graph"), ""))
}
