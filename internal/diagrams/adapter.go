package diagrams

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/progress"
)

// ContainerSelector matches every diagram container. A container without a
// data-mermaid-id is treated as the empty id and gets a placeholder.
const ContainerSelector = ".mermaid"

// Outcome is the result of rendering one container.
type Outcome struct {
	ID          string
	Placeholder bool
	// Deferred is set when the engine left rendering to the browser.
	Deferred bool
	Err      error
}

// Report collects the outcome of every container in document order.
type Report struct {
	Outcomes []Outcome
}

// Failed returns the outcomes whose render failed.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Placeholders returns the identifiers that had no registered source.
func (r Report) Placeholders() []string {
	var out []string
	for _, o := range r.Outcomes {
		if o.Placeholder {
			out = append(out, o.ID)
		}
	}
	return out
}

// Adapter fills diagram containers with registry sources and renders them one
// at a time.
type Adapter struct {
	Registry Registry
	Engine   Engine
	Reporter progress.Reporter
	Logger   *zap.Logger
}

// Containers returns the diagram containers in document order.
func (a *Adapter) Containers(doc *dom.Document) []*html.Node {
	return doc.QueryAll(ContainerSelector)
}

// Inject writes each container's diagram source as its text, substituting a
// placeholder diagram for unknown identifiers.
func (a *Adapter) Inject(doc *dom.Document) []Outcome {
	containers := a.Containers(doc)
	outcomes := make([]Outcome, 0, len(containers))
	for _, c := range containers {
		id := dom.AttrOr(c, "data-mermaid-id", "")
		src, ok := a.Registry.Lookup(id)
		if !ok {
			src = PlaceholderSource(id)
			dom.SetAttr(c, "data-diagram-placeholder", "true")
		}
		dom.SetText(c, src)
		outcomes = append(outcomes, Outcome{ID: id, Placeholder: !ok})
	}
	return outcomes
}

// Run injects sources and renders every container sequentially. A failing
// container shows an inline error and rendering moves on; only context
// cancellation stops the run.
func (a *Adapter) Run(ctx context.Context, doc *dom.Document) (Report, error) {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := a.Engine
	if engine == nil {
		engine = ClientEngine{}
	}
	reporter := a.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}

	containers := a.Containers(doc)
	outcomes := a.Inject(doc)
	report := Report{Outcomes: outcomes}

	reporter.Start(len(containers))
	defer reporter.Finish()

	for i, c := range containers {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		o := &report.Outcomes[i]
		reporter.Update(i+1, o.ID)

		svg, err := engine.Render(ctx, o.ID, dom.Text(c))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			o.Err = err
			showFailure(c, o.ID)
			logger.Warn("diagram render failed", zap.String("id", o.ID), zap.Error(err))
			continue
		}
		if svg == "" {
			o.Deferred = true
			continue
		}
		if err := mountSVG(c, svg); err != nil {
			o.Err = err
			showFailure(c, o.ID)
			logger.Warn("diagram output unusable", zap.String("id", o.ID), zap.Error(err))
			continue
		}
		dom.SetAttr(c, "data-processed", "true")
		logger.Debug("diagram rendered", zap.String("id", o.ID))
	}
	return report, nil
}

func mountSVG(container *html.Node, svg string) error {
	nodes, err := dom.ParseFragment(container, svg)
	if err != nil {
		return fmt.Errorf("parsing svg: %w", err)
	}
	dom.ReplaceChildren(container, nodes...)
	if RenderedSVG(container) == nil {
		return fmt.Errorf("engine output has no svg element")
	}
	return nil
}

// FailureMessage is the inline text shown in a container whose render failed.
func FailureMessage(id string) string {
	return "Diagram render failed: " + id
}

func showFailure(container *html.Node, id string) {
	p := dom.TextElement("p", "diagram-error", FailureMessage(id))
	dom.SetAttr(p, "style", "margin:0;color:#ffb4b4;")
	dom.ReplaceChildren(container, p)
	dom.SetAttr(container, "data-diagram-error", "true")
}
