// Package report renders run summaries and the run history.
//
// Three writers share the Writer interface:
//   - SimpleWriter: plain text for the terminal (default)
//   - JSONWriter: JSON for scripts and other tools (--json)
//   - MarkdownWriter: Markdown with a mermaid chart of list sizes (--markdown)
//
// Writers take *model.Summary, never *model.Run, so fetched bodies cannot
// end up in a report.
package report
