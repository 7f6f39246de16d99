// Package cmd implements the voxctl command line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/voxctl/voxctl/internal/colors"
	"github.com/voxctl/voxctl/internal/version"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "voxctl",
	Short: "Voice command control for the Linux desktop",
	Long: `voxctl turns short spoken utterances into desktop actions: key
presses, mouse clicks, window management, and dictation, with a
numbered grid overlay for precise pointing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $XDG_CONFIG_HOME/voxctl/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	cobra.OnInitialize(func() {
		if debug {
			colors.SetDebug(true)
		}
	})
}
