package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/plato/internal/display"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of plato",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), display.RenderBanner())
		fmt.Fprintf(cmd.OutOrStdout(), "plato %s\n", Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
