// cmd/docnav/build.go
package main

import "github.com/spf13/cobra"

var cleanDest bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Decorate the page set into the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := buildOptions()
		opts.CleanDestination = cleanDest
		return runBuild(opts)
	},
}

func init() {
	buildCmd.Flags().BoolVar(&cleanDest, "clean", true, "empty the output directory first")
	rootCmd.AddCommand(buildCmd)
}
