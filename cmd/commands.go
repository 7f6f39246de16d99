package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List available voice commands by priority",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(false)
		if err != nil {
			return err
		}
		defer rt.close()

		fmt.Fprint(cmd.OutOrStdout(), rt.registry.Help())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
