package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/francisatoyebi/housepulse/internal/platform/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Fprintf(cmd.OutOrStdout(), "housepulse %s (commit %s, built %s, %s)\n",
			info.Version, info.Commit, info.BuildTime, info.GoVersion)
	},
}
