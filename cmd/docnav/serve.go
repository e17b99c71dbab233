// cmd/docnav/serve.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"docnav/internal/progress"
	"docnav/internal/server"

	"github.com/spf13/cobra"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local dev server with auto-rebuild",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		siteCfg, err := loadSiteConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := buildOptions()
		// A progress bar would fight with the watcher's log lines.
		opts.Reporter = progress.Nop{}
		return server.Run(ctx, server.Options{
			Port:  port,
			Root:  siteCfg.OutputDir,
			Watch: []string{siteCfg.InputDir, siteCfg.StaticDir, cfgFile},
		}, runBuild, opts)
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 1313, "port for the local development server")
	rootCmd.AddCommand(serveCmd)
}
