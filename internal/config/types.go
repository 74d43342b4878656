package config

import "time"

// EngineType selects where diagrams are rendered.
type EngineType string

const (
	// EngineClient leaves diagram sources in the page for the browser.
	EngineClient EngineType = "client"
	// EngineChrome renders diagrams to inline SVG at build time.
	EngineChrome EngineType = "chrome"
)

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	Document  string          `yaml:"document" koanf:"document"`
	Diagrams  string          `yaml:"diagrams,omitempty" koanf:"diagrams"`
	Shell     string          `yaml:"shell,omitempty" koanf:"shell"`
	Assets    string          `yaml:"assets,omitempty" koanf:"assets"`
	OutputDir string          `yaml:"output_dir" koanf:"output_dir"`
	Engine    EngineType      `yaml:"engine" koanf:"engine"`
	Chrome    ChromeConfig    `yaml:"chrome" koanf:"chrome"`
	Markdown  bool            `yaml:"markdown" koanf:"markdown"`
	ScrollSpy ScrollSpyConfig `yaml:"scroll_spy" koanf:"scroll_spy"`
	Analytics AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
	Serve     ServeConfig     `yaml:"serve" koanf:"serve"`
}

// ChromeConfig holds headless browser settings for the chrome engine.
type ChromeConfig struct {
	Bin            string `yaml:"bin,omitempty" koanf:"bin"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}

// Timeout returns the per-diagram render timeout.
func (c ChromeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ScrollSpyConfig tunes active-section tracking.
type ScrollSpyConfig struct {
	HeaderSelector string `yaml:"header_selector" koanf:"header_selector"`
	Lookahead      int    `yaml:"lookahead" koanf:"lookahead"`
	CheckpointsMS  []int  `yaml:"checkpoints_ms" koanf:"checkpoints_ms"`
}

// Checkpoints returns the settle checkpoints as durations.
func (s ScrollSpyConfig) Checkpoints() []time.Duration {
	out := make([]time.Duration, 0, len(s.CheckpointsMS))
	for _, ms := range s.CheckpointsMS {
		out = append(out, time.Duration(ms)*time.Millisecond)
	}
	return out
}

// AnalyticsConfig controls the tracking push in the generated page.
type AnalyticsConfig struct {
	Enabled   bool   `yaml:"enabled" koanf:"enabled"`
	DataLayer string `yaml:"data_layer" koanf:"data_layer"`
}

// ServeConfig holds preview server settings.
type ServeConfig struct {
	Port            int      `yaml:"port" koanf:"port"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch           []string `yaml:"watch" koanf:"watch"`
}
