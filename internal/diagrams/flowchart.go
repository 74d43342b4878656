package diagrams

import (
	"fmt"
	"strings"
)

// Step is one box of a generated diagram.
type Step struct {
	Label string
	Note  string
	// Next names the labels this step points at. Empty links to the step
	// listed after it; a trailing step with no Next is a sink.
	Next []string
	// Via labels every outgoing link.
	Via string
}

var labelEscapes = strings.NewReplacer(
	`"`, "#quot;",
	"<", "#lt;",
	">", "#gt;",
	"|", "#124;",
	"\n", " ",
)

// Chain generates flowchart source for steps. Boxes get positional ids
// (s1, s2, ...) so labels never need sanitizing; links to unknown labels
// are dropped. direction defaults to TD.
func Chain(direction string, steps ...Step) string {
	switch direction {
	case "TD", "TB", "LR", "RL", "BT":
	default:
		direction = "TD"
	}

	ids := make(map[string]string, len(steps))
	for i, s := range steps {
		if _, dup := ids[s.Label]; !dup {
			ids[s.Label] = fmt.Sprintf("s%d", i+1)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", direction)
	for i, s := range steps {
		text := labelEscapes.Replace(s.Label)
		if s.Note != "" {
			text += "<br/>" + labelEscapes.Replace(s.Note)
		}
		fmt.Fprintf(&b, "    s%d[\"%s\"]\n", i+1, text)
	}

	for i, s := range steps {
		targets := s.Next
		if len(targets) == 0 && i+1 < len(steps) {
			targets = []string{steps[i+1].Label}
		}
		arrow := "-->"
		if s.Via != "" {
			arrow = "-->|" + labelEscapes.Replace(s.Via) + "|"
		}
		for _, t := range targets {
			to, ok := ids[t]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "    s%d %s %s\n", i+1, arrow, to)
		}
	}
	return b.String()
}
