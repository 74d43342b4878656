package diagrams

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySource is returned when a container has no diagram source to render.
var ErrEmptySource = errors.New("empty diagram source")

// Engine renders mermaid source for one container. A successful render with
// an empty svg means rendering is deferred to the browser runtime.
type Engine interface {
	Render(ctx context.Context, id, source string) (svg string, err error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, id, source string) (string, error)

func (f EngineFunc) Render(ctx context.Context, id, source string) (string, error) {
	return f(ctx, id, source)
}

// ClientEngine leaves rendering to mermaid in the browser. It only rejects
// sources whose diagram type it does not recognize, so the failure surfaces
// at build time with the same per-container message.
type ClientEngine struct{}

func (ClientEngine) Render(ctx context.Context, id, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := CheckSource(source); err != nil {
		return "", err
	}
	return "", nil
}

var diagramTypes = map[string]bool{
	"graph":              true,
	"flowchart":          true,
	"flowchart-elk":      true,
	"sequenceDiagram":    true,
	"classDiagram":       true,
	"classDiagram-v2":    true,
	"stateDiagram":       true,
	"stateDiagram-v2":    true,
	"erDiagram":          true,
	"journey":            true,
	"gantt":              true,
	"pie":                true,
	"quadrantChart":      true,
	"requirementDiagram": true,
	"gitGraph":           true,
	"C4Context":          true,
	"C4Container":        true,
	"C4Component":        true,
	"C4Dynamic":          true,
	"C4Deployment":       true,
	"mindmap":            true,
	"timeline":           true,
	"zenuml":             true,
	"sankey-beta":        true,
	"xychart-beta":       true,
	"block-beta":         true,
	"packet-beta":        true,
	"architecture-beta":  true,
	"kanban":             true,
	"radar-beta":         true,
}

// CheckSource reports whether source starts with a known mermaid diagram
// declaration. Front matter and %% directive lines are skipped.
func CheckSource(source string) error {
	lines := strings.Split(source, "\n")
	inFrontMatter := false
	for i, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "---" && (i == 0 || inFrontMatter):
			inFrontMatter = !inFrontMatter
			continue
		case inFrontMatter, line == "", strings.HasPrefix(line, "%%"):
			continue
		}
		keyword := line
		if idx := strings.IndexAny(line, " \t:;"); idx >= 0 {
			keyword = line[:idx]
		}
		if !diagramTypes[keyword] {
			return fmt.Errorf("unknown diagram type %q", keyword)
		}
		return nil
	}
	return ErrEmptySource
}
