package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/diagrams"
	"github.com/ziadkadry99/folio/internal/site"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Render the portfolio without writing and report problems",
	Long: `Renders the page in memory and lists broken navigation anchors,
unregistered diagram ids and diagrams that failed to render.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("strict", false, "exit non-zero when any problem is found")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := newGenerator(cfg).Render(cmd.Context())
	if err != nil {
		return err
	}
	sum := site.Inspect(res)

	fmt.Printf("Document: %s\n", cfg.Document)
	fmt.Printf("  sections:      %s\n", strings.Join(sum.Sections, ", "))
	fmt.Printf("  nav anchors:   %d\n", len(sum.Anchors))
	fmt.Printf("  diagrams:      %d\n", sum.Diagrams)
	fmt.Printf("  video targets: %d\n", sum.VideoTargets)

	for _, a := range sum.BrokenAnchors {
		fmt.Printf("  broken anchor: %s\n", a)
	}
	for _, id := range sum.Placeholders {
		fmt.Printf("  unregistered diagram: %s\n", diagrams.SafeLabel(id))
	}
	for _, f := range sum.Failures {
		fmt.Printf("  diagram %s failed: %v\n", f.ID, f.Err)
	}

	if sum.OK() {
		fmt.Println("OK")
		return nil
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		return fmt.Errorf("check found problems")
	}
	return nil
}
