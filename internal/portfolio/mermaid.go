package portfolio

import "encoding/json"

// EngineConfig is the fully-resolved diagram engine configuration, shaped for
// mermaid.initialize.
type EngineConfig struct {
	StartOnLoad   bool            `json:"startOnLoad"`
	Theme         string          `json:"theme"`
	SecurityLevel string          `json:"securityLevel"`
	FontFamily    string          `json:"fontFamily"`
	Flowchart     FlowchartConfig `json:"flowchart"`
}

// FlowchartConfig is the resolved flowchart section of EngineConfig.
type FlowchartConfig struct {
	UseMaxWidth bool   `json:"useMaxWidth"`
	HTMLLabels  bool   `json:"htmlLabels"`
	Curve       string `json:"curve"`
}

// DefaultEngineConfig returns the base settings every document starts from.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		StartOnLoad:   false,
		Theme:         "dark",
		SecurityLevel: "loose",
		FontFamily:    "Inter",
		Flowchart: FlowchartConfig{
			UseMaxWidth: true,
			HTMLLabels:  true,
			Curve:       "linear",
		},
	}
}

// EngineConfig merges the document's mermaid block over the defaults field by
// field, including the nested flowchart block.
func (d *Document) EngineConfig() EngineConfig {
	cfg := DefaultEngineConfig()
	m := d.Mermaid
	if m == nil {
		return cfg
	}
	if m.Theme != "" {
		cfg.Theme = m.Theme
	}
	if m.SecurityLevel != "" {
		cfg.SecurityLevel = m.SecurityLevel
	}
	if m.FontFamily != "" {
		cfg.FontFamily = m.FontFamily
	}
	if f := m.Flowchart; f != nil {
		if f.UseMaxWidth != nil {
			cfg.Flowchart.UseMaxWidth = *f.UseMaxWidth
		}
		if f.HTMLLabels != nil {
			cfg.Flowchart.HTMLLabels = *f.HTMLLabels
		}
		if f.Curve != "" {
			cfg.Flowchart.Curve = f.Curve
		}
	}
	return cfg
}

// JSON encodes the config for embedding in the page.
func (c EngineConfig) JSON() string {
	data, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(data)
}
