package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wordlefetch/internal/config"
	"github.com/nao1215/wordlefetch/internal/database"
	"github.com/nao1215/wordlefetch/internal/report"
)

// defaultHistoryLimit is the number of runs shown by default.
const defaultHistoryLimit = 10

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded download runs",
		Long: `History lists the runs recorded with --history, newest first.

Each run shows its status, the size of both word lists and the start of
the SHA3-256 digest of the possible-secrets list, so a change of the
published lists is visible at a glance.

Examples:
  # Show the last 10 runs
  wordlefetch history

  # Show every run as Markdown
  wordlefetch history --limit 0 --markdown`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	asJSON, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	// Same rule as the download command
	if asJSON && asMarkdown {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var writer report.Writer
	switch {
	case asJSON:
		writer = report.NewJSONWriter(out, report.WithPrettyPrint())
	case asMarkdown:
		writer = report.NewMarkdownWriter(out)
	default:
		writer = report.NewSimpleWriter(out)
	}

	// Listing must not create a database; no file simply means no runs yet
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, database.ErrNotFound) {
		_, err = writer.WriteHistory(nil)
		return err
	}
	if err != nil {
		return err
	}
	defer db.Close()

	// Newest first; a limit of 0 lists every run
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	_, err = writer.WriteHistory(runs)
	return err
}
