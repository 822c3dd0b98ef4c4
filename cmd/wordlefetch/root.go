package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it without a subcommand
// downloads the word lists.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlefetch",
		Short: "Download the Wordle word lists",
		Long: `wordlefetch downloads the Wordle puzzle page, locates its main JavaScript
bundle and extracts the two embedded word lists:

  wordle_allowed_guesses.txt   every word accepted as a guess
  wordle_possible_secrets.txt  every word that can be the daily answer

The shorter list is taken to be the possible secrets. Both files are
overwritten on each run.

Examples:
  # Download into the current directory
  wordlefetch

  # Download into ./data and record the run in the history database
  wordlefetch --dir data --history

  # Inspect what went wrong when the page layout changes
  wordlefetch --pdb

  # Check the files written by an earlier run
  wordlefetch check`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDownloadCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	addDownloadFlags(cmd)

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
