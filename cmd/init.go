package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/portfolio"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize folio configuration with an interactive wizard",
	Long: `Runs an interactive wizard that writes a .folio.yml file and, when the
chosen document does not exist yet, a starter portfolio document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("name")
		cfg, err := config.RunWizard(cfgFile, config.WizardIO{})
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.Document); err == nil {
			return nil
		}
		return writeStarter(cfg.Document, owner)
	},
}

func init() {
	initCmd.Flags().String("name", "", "owner name used in the starter document")
	rootCmd.AddCommand(initCmd)
}

func writeStarter(path, owner string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}
	if err := portfolio.Starter(owner).Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Starter document written to %s\n", path)
	return nil
}
