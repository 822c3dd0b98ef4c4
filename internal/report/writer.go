package report

import (
	"io"

	"github.com/nao1215/wordlefetch/internal/model"
)

// Writer renders summaries.
type Writer interface {
	// Write outputs the summary of one run.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.Summary) (int, error)

	// WriteHistory outputs a list of past runs, newest first.
	WriteHistory(summaries []*model.Summary) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// shortDigest trims a hex digest for tables.
func shortDigest(digest string) string {
	return truncateString(digest, 12)
}

// shortID trims a UUID to its first group.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncateString truncates a string to maxLen bytes with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// timeLayout is used for every timestamp in text and Markdown output.
const timeLayout = "2006-01-02 15:04:05 MST"
