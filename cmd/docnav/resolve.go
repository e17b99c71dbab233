// cmd/docnav/resolve.go
package main

import (
	"encoding/json"
	"fmt"

	"docnav/internal/nav"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <location>",
	Short: "Print the navigation context of a page location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		siteCfg, err := loadSiteConfig()
		if err != nil {
			return err
		}
		if err := siteCfg.Validate(); err != nil {
			return err
		}
		pages := siteCfg.Descriptors()
		if len(pages) == 0 {
			return fmt.Errorf("%s lists no pages", cfgFile)
		}

		ctx := nav.Resolve(args[0], pages)
		out, err := json.MarshalIndent(ctx, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		if !ctx.Matched {
			warning.Fprintf(cmd.ErrOrStderr(), "⚠️  %s is not in the page list\n", nav.Filename(args[0]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
