// cmd/docnav/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"docnav/internal/builder"
	"docnav/internal/config"
	"docnav/internal/progress"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	unsafe  bool
	jobs    int

	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	warning = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "docnav",
	Short: "Navigation headers for exported DOCMaker page sets",
	Long: `docnav decorates a set of static HTML pages with a navigation header:
a page switcher, previous/next controls and an about box with the
document's description and download links.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		failure.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "site.yaml", "site config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose per-page output")
	rootCmd.PersistentFlags().BoolVar(&unsafe, "unsafe", false, "disable HTML sanitization of the description")
	rootCmd.PersistentFlags().IntVar(&jobs, "jobs", 0, "pages decorated in parallel (0 = one per CPU)")
}

func buildOptions() builder.BuildOptions {
	return builder.BuildOptions{
		Unsafe:   unsafe,
		Debug:    debug,
		Jobs:     jobs,
		Reporter: progress.NewReporter(debug),
	}
}

func loadSiteConfig() (config.SiteConfig, error) {
	siteCfg, err := config.LoadSiteConfig(cfgFile)
	if err != nil {
		return config.SiteConfig{}, fmt.Errorf("failed to load site config: %w", err)
	}
	return siteCfg.Rooted(filepath.Dir(cfgFile)), nil
}

// runBuild reloads the config on every call so the dev server picks up
// edits to it.
func runBuild(opts builder.BuildOptions) error {
	fmt.Println("--- Building site ---")
	siteCfg, err := loadSiteConfig()
	if err != nil {
		return err
	}
	pageCount, err := builder.BuildSite(siteCfg.OutputDir, siteCfg.InputDir, siteCfg.StaticDir, siteCfg, opts)
	if err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}
	success.Printf("✅ Success! Decorated %d pages.\n", pageCount)
	return nil
}
