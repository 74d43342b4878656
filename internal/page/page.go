// Package page runs the one-time bootstrap that turns a host page and a
// portfolio document into the finished, interactive page.
package page

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/analytics"
	"github.com/ziadkadry99/folio/internal/diagrams"
	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/modal"
	"github.com/ziadkadry99/folio/internal/portfolio"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/render"
	"github.com/ziadkadry99/folio/internal/scrollspy"
)

// Options wires the bootstrap's collaborators. Nil fields take headless
// defaults.
type Options struct {
	Logger    *zap.Logger
	Analytics analytics.Sink
	Markdown  bool

	// Registry overrides the document's diagrams. Entries here win.
	Registry diagrams.Registry
	Engine   diagrams.Engine
	Reporter progress.Reporter

	ScrollSpy scrollspy.Options

	Layout    dom.Layout
	Scheduler dom.Scheduler
	// Now is the uptime clock. Default time.Now.
	Now func() time.Time
}

// Page is a bootstrapped page and the controllers attached to it.
type Page struct {
	Doc       *dom.Document
	Diagrams  diagrams.Report
	Modal     *modal.Controller
	ScrollSpy *scrollspy.Controller
	Uptime    *Uptime
	MobileNav *MobileNav
}

// Bootstrap renders doc into host and attaches the controllers. Sections
// render first, then diagrams, and only then the modal and scroll-spy, which
// depend on rendered output. Only context cancellation is returned as an
// error; everything else degrades inside the page.
func Bootstrap(ctx context.Context, host *dom.Document, doc *portfolio.Document, opts Options) (*Page, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	layout := opts.Layout
	if layout == nil {
		layout = dom.NewStaticLayout()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = dom.NewLoop()
	}

	r := render.New(host, render.Options{
		Logger:    logger,
		Analytics: opts.Analytics,
		Markdown:  opts.Markdown,
	})
	r.Document(doc)

	p := &Page{Doc: host}
	p.Uptime = StartUptime(host, sched, opts.Now)
	p.MobileNav = SetupMobileNav(host, layout)

	adapter := &diagrams.Adapter{
		Registry: diagrams.Registry(doc.Diagrams).Merge(opts.Registry),
		Engine:   opts.Engine,
		Reporter: opts.Reporter,
		Logger:   logger,
	}
	report, err := adapter.Run(ctx, host)
	p.Diagrams = report
	if err != nil {
		return p, fmt.Errorf("rendering diagrams: %w", err)
	}

	p.Modal = modal.New(host, layout, sched, modal.Options{Logger: logger})
	p.Modal.Setup()

	spyOpts := opts.ScrollSpy
	if spyOpts.Logger == nil {
		spyOpts.Logger = logger
	}
	p.ScrollSpy = scrollspy.New(host, layout, sched, spyOpts)
	p.ScrollSpy.Setup()

	logger.Debug("page bootstrapped",
		zap.Int("diagrams", len(report.Outcomes)),
		zap.Int("diagram_failures", len(report.Failed())),
		zap.Int("placeholders", len(report.Placeholders())),
	)
	return p, nil
}
