package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxctl/voxctl/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the voxctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "voxctl %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
