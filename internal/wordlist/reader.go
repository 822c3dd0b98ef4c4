package wordlist

import (
	"fmt"
	"os"
	"strings"

	"github.com/nao1215/wordlefetch/internal/model"
)

// ReadFile reads a word-list file and returns its lines in order.
// The terminator of the last line does not produce an empty entry; blank
// lines anywhere else are returned as empty strings so Check can see them.
func ReadFile(path string) (model.WordList, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, newIOError("read", path, err)
	}
	return Parse(string(data)), nil
}

// Parse splits file content into lines.
func Parse(content string) model.WordList {
	if content == "" {
		return model.WordList{}
	}
	content = strings.TrimSuffix(content, "\n")
	return model.WordList(strings.Split(content, "\n"))
}

// Problem is a format violation found by Check.
type Problem struct {
	// Line is the 1-based line number.
	Line int

	// Text is the offending line.
	Text string

	// Reason describes the violation.
	Reason string
}

// String formats the problem as "line N: reason: "text"".
func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s: %q", p.Line, p.Reason, p.Text)
}

// Check reports every line of content that is not a five-letter lowercase
// word, plus a missing final newline. Only the format is checked.
func Check(content string) []Problem {
	var problems []Problem

	if content == "" {
		return []Problem{{Line: 0, Reason: "file is empty"}}
	}

	for i, line := range Parse(content) {
		switch {
		case line == "":
			problems = append(problems, Problem{Line: i + 1, Text: line, Reason: "blank line"})
		case strings.HasSuffix(line, "\r"):
			problems = append(problems, Problem{Line: i + 1, Text: line, Reason: "carriage return"})
		case !model.IsWord(line):
			problems = append(problems, Problem{Line: i + 1, Text: line, Reason: "not a five-letter lowercase word"})
		}
	}

	if !strings.HasSuffix(content, "\n") {
		lines := strings.Count(content, "\n") + 1
		problems = append(problems, Problem{Line: lines, Reason: "missing final newline"})
	}

	return problems
}

// CheckFile reads path and runs Check on it.
func CheckFile(path string) ([]Problem, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, newIOError("read", path, err)
	}
	return Check(string(data)), nil
}
