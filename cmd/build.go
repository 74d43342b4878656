package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/config"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the portfolio into the output directory",
	Long:  `Loads the portfolio document, renders every section and diagram into the host page and writes the static site.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().String("engine", "", "diagram engine: client or chrome")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	if engine, _ := cmd.Flags().GetString("engine"); engine != "" {
		cfg.Engine = config.EngineType(engine)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	res, err := newGenerator(cfg).Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	report := res.Page.Diagrams
	fmt.Printf("Site built: %s (build %s)\n", cfg.OutputDir, res.BuildID)
	fmt.Printf("  sections: %d, diagrams: %d", len(res.Document.SectionIDs()), len(report.Outcomes))
	if failed := report.Failed(); len(failed) > 0 {
		fmt.Printf(", failed: %d", len(failed))
	}
	if missing := report.Placeholders(); len(missing) > 0 {
		fmt.Printf(", placeholders: %d", len(missing))
	}
	fmt.Println()
	return nil
}
