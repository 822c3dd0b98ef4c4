package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/wordlefetch/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This is the default output format, designed for terminal display.
//
// Output layout:
//   - Header banner with page, script, timing and status
//   - Word lists section with the size of each list
//   - Files section listing the files written, if any
type SimpleWriter struct {
	baseWriter

	// verbose adds digests and leading words.
	verbose bool

	// title turns list kinds such as "possible secrets" into headings.
	title cases.Caser
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}

	// Apply options
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in human-readable format.
// The whole summary is built in memory and written with a single call.
func (w *SimpleWriter) Write(summary *model.Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeLists(&sb, summary)
	w.writeFiles(&sb, summary)

	// Footer
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the banner and the run properties.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *model.Summary) {
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                 WORDLE WORD LIST DOWNLOAD\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Page:      %s\n", s.BaseURL)
	// The script URL is unknown when the run failed before locate_script.
	if s.ScriptURL != "" {
		fmt.Fprintf(sb, "Script:    %s\n", s.ScriptURL)
	}
	fmt.Fprintf(sb, "Started:   %s\n", s.StartedAt.Format(timeLayout))
	fmt.Fprintf(sb, "Duration:  %s\n", s.Duration.Round(time.Millisecond))

	if s.Failed() {
		fmt.Fprintf(sb, "Status:    FAILED in %s - %s\n", s.FailedStep, s.Error)
	} else {
		sb.WriteString("Status:    Complete\n")
	}
	sb.WriteString("\n")
}

// writeLists writes the size of both lists, secrets first. A failed run
// shows zero counts for lists it never extracted.
func (w *SimpleWriter) writeLists(sb *strings.Builder, s *model.Summary) {
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("WORD LISTS\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")

	lists := []struct {
		kind string
		list model.ListSummary
	}{
		{model.ListPossibleSecrets, s.PossibleSecrets},
		{model.ListAllowedGuesses, s.AllowedGuesses},
	}
	for _, l := range lists {
		fmt.Fprintf(sb, "  %-17s %6d words\n", w.title.String(l.kind)+":", l.list.Count)
		if w.verbose && l.list.Count > 0 {
			fmt.Fprintf(sb, "    sha3-256: %s\n", l.list.Digest)
			fmt.Fprintf(sb, "    first:    %s\n", strings.Join(l.list.Head, " "))
		}
	}
	sb.WriteString("\n")
}

// writeFiles lists the files written, in write order.
func (w *SimpleWriter) writeFiles(sb *strings.Builder, s *model.Summary) {
	// Skip the section entirely when nothing was written
	if len(s.Files) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("FILES\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")

	for _, f := range s.Files {
		fmt.Fprintf(sb, "  [+] %s (%d words)\n", f.Path, f.Words)
	}
	sb.WriteString("\n")
}

// WriteHistory outputs one line per run, in the order given.
// Complete runs show the start of the possible-secrets digest so a change
// of the published list stands out; failed runs show the step and error.
func (w *SimpleWriter) WriteHistory(summaries []*model.Summary) (int, error) {
	var sb strings.Builder

	if len(summaries) == 0 {
		sb.WriteString("No runs recorded.\n")
		return w.output.Write([]byte(sb.String()))
	}

	// Column header
	fmt.Fprintf(&sb, "%-8s  %-23s  %-8s  %7s  %7s  %s\n", "ID", "STARTED", "STATUS", "SECRETS", "GUESSES", "DETAIL")
	for _, s := range summaries {
		detail := shortDigest(s.PossibleSecrets.Digest)
		if s.Failed() {
			detail = s.FailedStep + ": " + truncateString(s.Error, 60)
		}
		fmt.Fprintf(&sb, "%-8s  %-23s  %-8s  %7d  %7d  %s\n",
			shortID(s.ID),
			s.StartedAt.Format(timeLayout),
			s.Status,
			s.PossibleSecrets.Count,
			s.AllowedGuesses.Count,
			detail,
		)
	}

	return w.output.Write([]byte(sb.String()))
}
