package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "shapeshifter",
	Short: "Shapeshifter CLI - UFTP key and discovery tooling",
	Long: `shapeshifter is the command-line companion to the UFTP library.

Use it to generate signing key pairs and to inspect the DNS records
other participants publish for discovery.

Get started:
  $ shapeshifter keys generate
  $ shapeshifter lookup --domain dso.example.com --role DSO`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shapeshifter version %s\n", Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
