package config

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".folio.yml"

// DefaultWatch are the globs that trigger a rebuild under folio serve.
var DefaultWatch = []string{
	"**/*.yml",
	"**/*.yaml",
	"**/*.json",
}

// documentCandidates are tried in order when looking for an existing
// portfolio document.
var documentCandidates = []string{
	"portfolio.yml",
	"portfolio.yaml",
	"portfolio.json",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Document:  "portfolio.yml",
		OutputDir: "public",
		Engine:    EngineClient,
		Chrome: ChromeConfig{
			TimeoutSeconds: 30,
		},
		ScrollSpy: ScrollSpyConfig{
			HeaderSelector: ".status-bar",
			Lookahead:      28,
			CheckpointsMS:  []int{160, 720},
		},
		Analytics: AnalyticsConfig{
			Enabled:   true,
			DataLayer: "dataLayer",
		},
		Serve: ServeConfig{
			Port:  8080,
			Watch: append([]string(nil), DefaultWatch...),
		},
	}
}
