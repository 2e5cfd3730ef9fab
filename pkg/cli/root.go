// Package cli provides the regsim CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build metadata, injected via ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "regsim",
	Short: "regsim simulates the platform registry's streaming registration RPCs",
	Long: `regsim is a test double for the platform registry.

It serves the registration lifecycle RPCs that declarative mocking cannot
model: server-streaming calls that emit a timed sequence of lifecycle
events per registration, plus the static service and module discovery
calls. It runs alongside the declarative mock engine on its own port.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
