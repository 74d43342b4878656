package portfolio

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/folio/internal/diagrams"
)

// Starter returns a small document that passes validation and renders every
// section, for folio init to write out.
func Starter(owner string) *Document {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = "Your Name"
	}
	tag := strings.ToUpper(strings.Join(strings.Fields(owner), "_"))

	project := diagrams.Chain("TD",
		diagrams.Step{Label: "Ingest", Note: "webhooks"},
		diagrams.Step{Label: "Transform"},
		diagrams.Step{Label: "Publish", Note: "static site"},
	)

	doc := &Document{
		System: System{
			DocumentTitle: owner + " | Portfolio",
			SystemName:    tag + "_PORTFOLIO",
		},
		Hero: Hero{
			PanelTitle:   "SYSTEM_ARCHITECTURE",
			PanelUID:     "ID: SYS-01",
			DiagramID:    "system-overview",
			Metrics:      []string{"> Problem -> Choice -> Result. One line per outcome."},
			DiagramNotes: []string{"Replace this diagram in diagrams.system-overview."},
		},
		ServiceSections: []ServiceSection{{
			ID:       "projects",
			Title:    "PROJECTS",
			NavLabel: "PROJECTS",
			Groups: []Group{{
				Title: "FEATURED",
				Cards: []Card{{
					MermaidID: "first-project",
					Title:     "First project",
					Subtitle:  "What it is · when",
					Overview:  "One or two sentences on the problem and the outcome.",
					Skills:    []string{"Go"},
					Links: []Link{{
						Label:   "GITHUB",
						Href:    "https://github.com/",
						Variant: "primary",
					}},
				}},
			}},
		}},
		Skills: Skills{
			Items: []SkillItem{{Title: "BACKEND", Stack: "Go"}},
		},
		Contact: Contact{
			Description: "Reach out through the links below.",
			Actions:     []Action{{Label: "EMAIL", Href: "mailto:you@example.com"}},
		},
		Mermaid: &MermaidSettings{Theme: "dark", FontFamily: "JetBrains Mono"},
		Diagrams: map[string]string{
			"first-project": project,
		},
	}
	doc.Diagrams["system-overview"] = siteMap(doc)
	return doc
}

// siteMap charts the page's sections in navigation order.
func siteMap(d *Document) string {
	items := d.NavItems()
	steps := make([]diagrams.Step, 0, len(items))
	for _, item := range items {
		steps = append(steps, diagrams.Step{Label: item.Label, Note: item.Target})
	}
	return diagrams.Chain("LR", steps...)
}

// Encode writes d as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return enc.Close()
}
