package diagrams

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry maps a diagram identifier to its mermaid source.
type Registry map[string]string

var unsafeLabel = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// LoadRegistry reads a registry file. The file is either a flat id -> source
// mapping or a document with a top-level "diagrams" mapping.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diagram registry %s: %w", path, err)
	}

	var wrapped struct {
		Diagrams map[string]string `yaml:"diagrams"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Diagrams) > 0 {
		return Registry(wrapped.Diagrams), nil
	}

	var flat map[string]string
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parsing diagram registry %s: %w", path, err)
	}
	if flat == nil {
		flat = map[string]string{}
	}
	return Registry(flat), nil
}

// Merge returns a new registry holding r overlaid with each of others in
// turn. Later entries win.
func (r Registry) Merge(others ...map[string]string) Registry {
	out := make(Registry, len(r))
	for id, src := range r {
		out[id] = src
	}
	for _, o := range others {
		for id, src := range o {
			out[id] = src
		}
	}
	return out
}

// Lookup returns the registered source for id.
func (r Registry) Lookup(id string) (string, bool) {
	src, ok := r[id]
	if !ok || strings.TrimSpace(src) == "" {
		return "", false
	}
	return src, true
}

// Source returns the registered source for id, or a placeholder diagram
// naming id when none is registered.
func (r Registry) Source(id string) string {
	if src, ok := r.Lookup(id); ok {
		return src
	}
	return PlaceholderSource(id)
}

// IDs returns the registered identifiers in sorted order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SafeLabel collapses every run of characters outside [a-zA-Z0-9_-] to a
// single space and trims the result. An empty result becomes "unknown".
func SafeLabel(id string) string {
	label := strings.TrimSpace(unsafeLabel.ReplaceAllString(id, " "))
	if label == "" {
		return "unknown"
	}
	return label
}

// PlaceholderSource is the diagram shown for an identifier with no
// registered source.
func PlaceholderSource(id string) string {
	return fmt.Sprintf("graph TD\nA[%s] --> B[Define diagrams entry]", SafeLabel(id))
}
