package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDocument is returned when the document does not match the schema.
	ErrInvalidDocument = errors.New("invalid portfolio document")
	// ErrDuplicateSection is returned when two rendered sections share an id.
	ErrDuplicateSection = errors.New("duplicate section id")
)

// Load reads a portfolio document from a YAML or JSON file, validates it and
// returns it normalized.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", path, err)
	}
	return doc, nil
}

// Decode parses, schema-checks, normalizes and validates a document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := ValidateShape(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Normalize folds flat card lists into a single untitled group. Card links
// are left as written; renderers resolve them with CardLinks.
func (d *Document) Normalize() {
	for i := range d.ServiceSections {
		s := &d.ServiceSections[i]
		if len(s.Groups) == 0 && len(s.Cards) > 0 {
			s.Groups = []Group{{Cards: s.Cards}}
		}
		s.Cards = nil
	}
}

// CardLinks returns the card's resolvable links. Links without an href are
// dropped; when none remain, a legacy learnMore value becomes a single link.
func CardLinks(c Card) []Link {
	var links []Link
	for _, l := range c.Links {
		if l.Href != "" {
			links = append(links, l)
		}
	}
	if len(links) == 0 && c.LearnMore != "" && c.LearnMore != "#" {
		label := c.LinkLabel
		if label == "" {
			label = "LEARN MORE"
		}
		links = append(links, Link{Label: label, Href: c.LearnMore})
	}
	return links
}

// SectionIDs returns the anchor ids the page will carry, in page order.
func (d *Document) SectionIDs() []string {
	ids := []string{firstNonEmpty(d.Hero.SectionID, DefaultHeroSection)}
	for _, s := range d.ServiceSections {
		if s.ID != "" {
			ids = append(ids, s.ID)
		}
	}
	for i, p := range d.TopPanels {
		ids = append(ids, TopPanelID(p, i))
	}
	ids = append(ids, firstNonEmpty(d.Skills.SectionID, DefaultSkillsSection))
	ids = append(ids, firstNonEmpty(d.Contact.SectionID, DefaultContactSection))
	return ids
}

// Validate checks cross-field invariants the schema cannot express.
func (d *Document) Validate() error {
	seen := make(map[string]bool)
	for _, id := range d.SectionIDs() {
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicateSection, id)
		}
		seen[id] = true
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
