package cmd

import (
	"fmt"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newGenerator builds a site generator reporting diagram progress on stderr.
func newGenerator(cfg *config.Config) *site.Generator {
	gen := site.NewGenerator(cfg, logger)
	if verbose {
		gen.Reporter = progress.NewReporter("Rendering diagrams")
	} else {
		gen.Reporter = progress.Nop{}
	}
	return gen
}
