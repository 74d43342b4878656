package page

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/folio/internal/analytics"
	"github.com/ziadkadry99/folio/internal/diagrams"
	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/modal"
	"github.com/ziadkadry99/folio/internal/portfolio"
	"github.com/ziadkadry99/folio/internal/scrollspy"
)

type harness struct {
	host   *dom.Document
	doc    *portfolio.Document
	layout *dom.StaticLayout
	loop   *dom.Loop
	layer  *analytics.DataLayer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	data, err := os.ReadFile("testdata/shell.html")
	require.NoError(t, err)
	host, err := dom.ParseString(string(data))
	require.NoError(t, err)
	doc, err := portfolio.Load("../portfolio/testdata/portfolio.yml")
	require.NoError(t, err)
	return &harness{
		host:   host,
		doc:    doc,
		layout: dom.NewStaticLayout(),
		loop:   dom.NewLoop(),
		layer:  analytics.NewDataLayer(),
	}
}

func svgEngine(order *[]string) diagrams.Engine {
	return diagrams.EngineFunc(func(ctx context.Context, id, source string) (string, error) {
		*order = append(*order, id)
		return `<svg viewBox="0 0 100 50"><g></g></svg>`, nil
	})
}

func (h *harness) bootstrap(t *testing.T, engine diagrams.Engine) *Page {
	t.Helper()
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := Bootstrap(context.Background(), h.host, h.doc, Options{
		Analytics: h.layer,
		Engine:    engine,
		Registry:  diagrams.Registry{"release-timeline-map": "graph LR\nA-->B"},
		Layout:    h.layout,
		Scheduler: h.loop,
		Now:       func() time.Time { return epoch.Add(h.loop.Elapsed()) },
	})
	require.NoError(t, err)
	return p
}

func TestBootstrapRendersAndAttaches(t *testing.T) {
	h := newHarness(t)
	var order []string
	p := h.bootstrap(t, svgEngine(&order))

	assert.Equal(t, "Dana | Portfolio Hub", h.host.Title())
	assert.Equal(t, []string{
		"portfolio-hub-map",
		"ledger-architecture",
		"missing-diagram",
		"comparison-axis-map",
		"release-timeline-map",
	}, order, "hero, service cards, then top panels in page order")
	assert.Equal(t, []string{"missing-diagram"}, p.Diagrams.Placeholders())
	assert.Empty(t, p.Diagrams.Failed())

	require.NotNil(t, p.Modal)
	card := h.host.Query(".service-card .card-visual")
	h.host.Dispatch(card, &dom.Event{Type: "click"})
	assert.Equal(t, modal.Open, p.Modal.State())
	assert.Equal(t, "Ledger service", dom.Text(h.host.ByID("mermaid-modal-title")))
	assert.Equal(t, "TD6FPndjhoE", p.Modal.VideoID())

	require.NotNil(t, p.ScrollSpy)
}

func TestBootstrapHeroWithoutDiagramID(t *testing.T) {
	h := newHarness(t)
	h.doc.Hero.DiagramID = ""
	p := h.bootstrap(t, diagrams.ClientEngine{})

	assert.Equal(t, []string{"", "missing-diagram"}, p.Diagrams.Placeholders())
	hero := h.host.ByID("hero-mermaid")
	assert.Equal(t, "true", dom.AttrOr(hero, "data-diagram-placeholder", ""))
	assert.Contains(t, dom.Text(hero), "A[unknown]")
}

func TestBootstrapScrollSpyFollowsLayout(t *testing.T) {
	h := newHarness(t)
	p := h.bootstrap(t, svgEngine(new([]string)))

	tops := map[string]float64{
		"hub-overview":             0,
		"project-hub":              900,
		"cross-project-comparison": 2400,
		"top-panel-2":              3100,
		"skills":                   3800,
		"contact":                  4400,
	}
	for id, top := range tops {
		h.layout.Set(h.host.ByID(id), dom.Rect{Top: top, Height: 600})
	}
	h.layout.Set(h.host.Query(".status-bar"), dom.Rect{Height: 60})

	// Offsets are re-measured at the settle checkpoints.
	h.loop.Advance(time.Second)
	assert.Equal(t, "hub-overview", p.ScrollSpy.Active())
	assert.Equal(t, []string{"hub-overview", "project-hub", "cross-project-comparison", "top-panel-2", "skills", "contact"},
		targetIDs(p.ScrollSpy.Targets()))

	h.layout.Scroll = 3750
	h.host.DispatchWindow(&dom.Event{Type: "scroll"})
	h.loop.Frame()
	assert.Equal(t, "skills", p.ScrollSpy.Active())
	link := h.host.Query(`#header-nav a[href="#skills"]`)
	assert.True(t, dom.HasClass(link, "is-active"))
}

func targetIDs(targets []scrollspy.Target) []string {
	ids := make([]string, 0, len(targets))
	for _, t := range targets {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestBootstrapClientEngineLeavesModalClosed(t *testing.T) {
	h := newHarness(t)
	p := h.bootstrap(t, nil)

	for _, o := range p.Diagrams.Outcomes {
		assert.True(t, o.Deferred, o.ID)
	}
	assert.False(t, p.Modal.Open(h.host.Query(".graph-container")), "no svg until the browser renders")
	assert.Equal(t, modal.Closed, p.Modal.State())
}

func TestBootstrapCancelled(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := Bootstrap(ctx, h.host, h.doc, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, p)
	assert.Nil(t, p.Modal)
	assert.Equal(t, "Dana | Portfolio Hub", h.host.Title(), "sections render before diagrams")
}

func TestUptime(t *testing.T) {
	h := newHarness(t)
	p := h.bootstrap(t, svgEngine(new([]string)))

	require.NotNil(t, p.Uptime)
	assert.Equal(t, "00:00:00", p.Uptime.Text())
	h.loop.Advance(61500 * time.Millisecond)
	assert.Equal(t, "00:01:01", p.Uptime.Text())
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{999 * time.Millisecond, "00:00:00"},
		{3*time.Hour + 2*time.Minute + 1*time.Second, "03:02:01"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.d); got != tt.want {
			t.Errorf("FormatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestMobileNav(t *testing.T) {
	h := newHarness(t)
	p := h.bootstrap(t, svgEngine(new([]string)))
	m := p.MobileNav
	require.NotNil(t, m)

	toggle := h.host.Query(".nav-toggle")
	h.host.Dispatch(toggle, &dom.Event{Type: "click"})
	assert.True(t, m.IsOpen(), "toggle click must not reach the outside-click handler")
	assert.Equal(t, "true", dom.AttrOr(toggle, "aria-expanded", ""))

	h.host.Dispatch(h.host.Query("#header-nav .nav-item"), &dom.Event{Type: "click"})
	assert.False(t, m.IsOpen())

	h.host.Dispatch(toggle, &dom.Event{Type: "click"})
	h.host.Dispatch(h.host.ByID("contact"), &dom.Event{Type: "click"})
	assert.False(t, m.IsOpen(), "outside click closes")

	h.host.Dispatch(toggle, &dom.Event{Type: "click"})
	h.host.Dispatch(h.host.Body(), &dom.Event{Type: "keydown", Key: "Escape"})
	assert.False(t, m.IsOpen())

	h.host.Dispatch(toggle, &dom.Event{Type: "click"})
	h.layout.Width = 600
	h.host.DispatchWindow(&dom.Event{Type: "resize"})
	assert.True(t, m.IsOpen())
	h.layout.Width = 1024
	h.host.DispatchWindow(&dom.Event{Type: "resize"})
	assert.False(t, m.IsOpen())
}

func TestCardLinkAnalyticsThroughBootstrap(t *testing.T) {
	h := newHarness(t)
	h.bootstrap(t, svgEngine(new([]string)))

	h.host.Dispatch(h.host.Query("a.card-link"), &dom.Event{Type: "click"})
	events := h.layer.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "Ledger service", events[0].ItemID)
	assert.Equal(t, "ARCHITECTURE", events[0].LinkLabel)
}
