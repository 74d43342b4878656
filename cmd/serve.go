package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with live reload",
	Long: `Builds the site, serves the output directory over HTTP and rebuilds
whenever a watched source file changes. Open pages reload after each build.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port for the preview server (overrides config)")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("no-watch", false, "serve without rebuilding on change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port := cfg.Serve.Port
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		port = p
	}
	open, _ := cmd.Flags().GetBool("open")
	noWatch, _ := cmd.Flags().GetBool("no-watch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := newGenerator(cfg)
	gen.LiveReload = !noWatch

	root := "."
	if noWatch {
		root = ""
	}
	srv := site.NewServer(site.ServerConfig{
		Port:     port,
		Dir:      cfg.OutputDir,
		AllowAll: cfg.Serve.AllowAllOrigins,
		Root:     root,
		Watch:    cfg.Serve.Watch,
		Open:     open,
	}, gen, logger)

	if err := srv.Rebuild(ctx); err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	logger.Info("initial build ready", zap.String("build", srv.BuildID()))

	fmt.Printf("Serving %s at http://localhost:%d (press Ctrl+C to stop)\n", cfg.OutputDir, port)
	return srv.Run(ctx)
}
