// cmd/docnav/new.go
package main

import (
	"docnav/internal/scaffold"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new site or page",
}

var newSiteCmd = &cobra.Command{
	Use:   "site <name>",
	Short: "Create a new site scaffold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scaffold.CreateNewSite(args[0])
	},
}

var newPageCmd = &cobra.Command{
	Use:   "page <title>",
	Short: "Create a page and append it to the page list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scaffold.CreateNewPage(args[0], cfgFile)
	},
}

func init() {
	newCmd.AddCommand(newSiteCmd, newPageCmd)
	rootCmd.AddCommand(newCmd)
}
