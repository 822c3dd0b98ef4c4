package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/wordlefetch/internal/model"
)

// MarkdownWriter outputs summaries in Markdown format.
// The output renders on GitHub: alerts mark the run status and a mermaid
// pie chart compares the sizes of the two lists.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	// Build all sections, then flush them in one Build call
	w.writeHeader(md, summary)
	w.writeLists(md, summary)
	w.writeFiles(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table and a status alert.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *model.Summary) {
	md.H1("Wordle Word List Download")
	md.PlainText("")

	rows := [][]string{
		{"Run", "`" + s.ID + "`"},
		{"Page", s.BaseURL},
	}
	// Unknown when the run failed before locate_script
	if s.ScriptURL != "" {
		rows = append(rows, []string{"Script", s.ScriptURL})
	}
	rows = append(rows,
		[]string{"Started", s.StartedAt.Format(timeLayout)},
		[]string{"Duration", s.Duration.String()},
		[]string{"Status", statusText(s)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if s.Failed() {
		md.Cautionf("Download failed in step `%s`: %s", s.FailedStep, s.Error)
	} else {
		md.Tip("Both word lists were downloaded and written.")
	}
	md.PlainText("")
}

// statusText returns the status cell.
func statusText(s *model.Summary) string {
	if s.Failed() {
		return "❌ Failed (" + s.FailedStep + ")"
	}
	return "✅ Complete"
}

// writeLists writes the word list table and the size chart.
func (w *MarkdownWriter) writeLists(md *markdown.Markdown, s *model.Summary) {
	md.H2("Word Lists")
	md.PlainText("")

	// Nothing to tabulate when extraction never happened
	if s.PossibleSecrets.Count == 0 && s.AllowedGuesses.Count == 0 {
		md.PlainText("No word lists were extracted.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"List", "Words", "SHA3-256", "First Words"},
		Rows: [][]string{
			listRow(model.ListPossibleSecrets, s.PossibleSecrets),
			listRow(model.ListAllowedGuesses, s.AllowedGuesses),
		},
	})
	md.PlainText("")

	w.writePieChart(md, s)
}

// listRow formats one word list table row; missing values show as "-".
func listRow(kind string, l model.ListSummary) []string {
	head := "-"
	if len(l.Head) > 0 {
		head = strings.Join(l.Head, ", ")
	}
	digest := "-"
	if l.Digest != "" {
		digest = "`" + shortDigest(l.Digest) + "`"
	}
	return []string{kind, strconv.Itoa(l.Count), digest, head}
}

// writePieChart writes a mermaid pie chart of the list sizes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.Summary) {
	// The chart is rendered to a string and embedded as a code block, so
	// its own output writer is never used.
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Word List Sizes"),
		piechart.WithShowData(true),
	)

	if s.PossibleSecrets.Count > 0 {
		chart.LabelAndIntValue("Possible secrets", uint64(s.PossibleSecrets.Count))
	}
	if s.AllowedGuesses.Count > 0 {
		chart.LabelAndIntValue("Allowed guesses", uint64(s.AllowedGuesses.Count))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFiles writes the list of output files.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, s *model.Summary) {
	if len(s.Files) == 0 {
		return
	}

	md.H2("Files")
	md.PlainText("")

	items := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		items = append(items, "`"+f.Path+"` ("+strconv.Itoa(f.Words)+" words)")
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wordlefetch](https://github.com/nao1215/wordlefetch)*")
}

// WriteHistory outputs the run history as a Markdown table.
func (w *MarkdownWriter) WriteHistory(summaries []*model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Download History")
	md.PlainText("")

	if len(summaries) == 0 {
		md.PlainText("No runs recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			"`" + shortID(s.ID) + "`",
			s.StartedAt.Format(timeLayout),
			statusText(s),
			strconv.Itoa(s.PossibleSecrets.Count),
			strconv.Itoa(s.AllowedGuesses.Count),
			orDash(shortDigest(s.PossibleSecrets.Digest)),
			orDash(truncateString(s.Error, 50)),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Run", "Started", "Status", "Secrets", "Guesses", "Secrets SHA3", "Error"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// orDash returns s, or "-" for an empty table cell.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
