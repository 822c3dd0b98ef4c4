package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wordlefetch/internal/config"
	"github.com/nao1215/wordlefetch/internal/wordlist"
)

// errCheckFailed is returned when at least one file has format problems.
var errCheckFailed = errors.New("word-list check failed")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Check the format of word-list files",
		Long: `Check reads word-list files back and reports every line that is not a
five-letter lowercase word, blank lines, carriage returns and a missing
final newline. Only the format is checked, not which words are listed.

Without arguments the two files of the download command are checked,
using --dir and the configuration file to locate them.

Examples:
  # Check the files in the current directory
  wordlefetch check

  # Check the files written with --dir data
  wordlefetch check --dir data

  # Check any file
  wordlefetch check words.txt`,
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("dir", "d", config.DefaultOutputDir,
		"Directory holding the word-list files")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wordlefetch in current or home directory)")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	paths := args
	// Default to the two files the download command writes
	if len(paths) == 0 {
		cfg, err := checkConfig(cmd)
		if err != nil {
			return err
		}
		paths = []string{cfg.AllowedGuessesPath(), cfg.PossibleSecretsPath()}
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, path := range paths {
		problems, err := wordlist.CheckFile(path)
		if err != nil {
			return err
		}

		if len(problems) == 0 {
			// Re-read only to report the word count
			words, err := wordlist.ReadFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: ok (%d words)\n", path, words.Len())
			continue
		}

		// Keep going so every file is reported
		failed = true
		fmt.Fprintf(out, "%s: %d problem(s)\n", path, len(problems))
		for _, p := range problems {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}

	if failed {
		return errCheckFailed
	}
	return nil
}

// checkConfig resolves the output paths from the configuration file and flags.
func checkConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("dir") {
		if cfg.OutputDir, err = cmd.Flags().GetString("dir"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
