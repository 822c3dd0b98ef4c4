package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/wordlefetch/internal/config"
	"github.com/nao1215/wordlefetch/internal/database"
	"github.com/nao1215/wordlefetch/internal/fetcher"
	wlog "github.com/nao1215/wordlefetch/internal/log"
	"github.com/nao1215/wordlefetch/internal/model"
	"github.com/nao1215/wordlefetch/internal/netclient"
	"github.com/nao1215/wordlefetch/internal/pipeline"
	"github.com/nao1215/wordlefetch/internal/postmortem"
	"github.com/nao1215/wordlefetch/internal/report"
	"github.com/nao1215/wordlefetch/internal/wordlist"
)

// addDownloadFlags registers the download flags on cmd.
func addDownloadFlags(cmd *cobra.Command) {
	// Source flags
	cmd.Flags().StringP("url", "u", config.DefaultBaseURL,
		"Puzzle page URL; the script path is appended to it")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with each request (default: Go HTTP client)")
	cmd.Flags().String("proxy", "",
		"Route requests through a SOCKS5 proxy (socks5://host:port)")

	// Output flags
	cmd.Flags().StringP("dir", "d", config.DefaultOutputDir,
		"Directory the word-list files are written to")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wordlefetch in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Print the run summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the run summary as Markdown (mutually exclusive with --json)")

	// Behavior flags
	cmd.Flags().Bool("history", false,
		"Record the run in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the history database")
	cmd.Flags().Bool("pdb", false,
		"Start an interactive inspection session if the download fails")
}

// runDownloadCmd executes the download.
func runDownloadCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := wlog.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runDownload(ctx, cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the configuration file and
// the flags set on the command line, in increasing priority.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	if flags.Changed("url") {
		if cfg.BaseURL, err = flags.GetString("url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.Proxy, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("dir") {
		if cfg.OutputDir, err = flags.GetString("dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("history") {
		if cfg.SaveHistory, err = flags.GetBool("history"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.PostMortem, err = flags.GetBool("pdb"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// applyConfigFile loads the configuration file, if any, onto cfg.
// An explicitly given path must exist; otherwise a missing file is ignored.
func applyConfigFile(cfg *config.Config) error {
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	file.Apply(cfg)
	return nil
}

// runDownload runs the download pipeline and reports the outcome.
// On failure the pipeline error is returned unchanged, after the optional
// post-mortem session.
func runDownload(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer) error {
	logger.Info("starting download",
		"url", cfg.BaseURL,
		"dir", cfg.OutputDir,
		"proxy", cfg.Proxy,
		"history", cfg.SaveHistory,
	)

	client, err := netclient.NewClient(
		netclient.WithTimeout(cfg.Timeout),
		netclient.WithUserAgent(cfg.UserAgent),
		netclient.WithProxy(cfg.Proxy),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}

	f := fetcher.New(client.HTTPClient(),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithLogger(logger),
	)
	w := wordlist.NewWriter(cfg.AllowedGuessesPath(), cfg.PossibleSecretsPath(),
		wordlist.WithWriterLogger(logger),
	)
	p := pipeline.DefaultPipeline(f, w, pipeline.WithLogger(logger))

	run := model.NewRun(cfg.BaseURL)
	runErr := p.Execute(ctx, run)
	summary := model.NewSummary(run)

	if cfg.SaveHistory {
		// The run is recorded even if the context was cancelled.
		recordHistory(context.WithoutCancel(ctx), cfg, summary, logger, stderr)
	}

	if runErr != nil {
		if cfg.PostMortem {
			if err := postmortem.Inspect(stdin, stdout, run); err != nil {
				logger.Error("post-mortem session failed", "error", err)
			}
			return runErr
		}
		printFailure(stderr, run, cfg.Verbose)
		return runErr
	}

	return outputSummary(cfg, stdout, summary)
}

// printFailure reports the failed step and the function the error was
// raised in. The full stack trace is added with -v.
func printFailure(w io.Writer, run *model.Run, verbose bool) {
	if run.Failure == nil {
		return
	}
	fmt.Fprintf(w, "Download failed in step %s\n", run.Failure.Step)
	if run.Failure.Origin != "" {
		fmt.Fprintf(w, "  at %s\n", run.Failure.Origin)
	}
	if verbose && run.Failure.Stack != "" {
		fmt.Fprintln(w, strings.TrimRight(run.Failure.Stack, "\n"))
	}
}

// recordHistory saves summary and notes a change of the word lists since
// the previous successful run. Failures are logged, not returned: the word
// lists are already written.
func recordHistory(ctx context.Context, cfg *config.Config, summary *model.Summary, logger *slog.Logger, stderr io.Writer) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Error("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	if !summary.Failed() {
		prev, err := db.LatestComplete(ctx)
		if err != nil {
			logger.Warn("failed to read previous run", "error", err)
		} else if database.ListsChanged(prev, summary) {
			fmt.Fprintf(stderr, "Word lists changed since run %s (%s)\n",
				prev.ID, prev.StartedAt.Format("2006-01-02 15:04:05"))
		}
	}

	if err := db.SaveRun(ctx, summary); err != nil {
		logger.Error("failed to save run", "id", summary.ID, "error", err)
		return
	}
	logger.Debug("run saved", "id", summary.ID, "db", db.Path())
}

// outputSummary prints the run summary in the configured format.
func outputSummary(cfg *config.Config, out io.Writer, summary *model.Summary) error {
	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(out)
	default:
		writer = report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(summary)
	return err
}
