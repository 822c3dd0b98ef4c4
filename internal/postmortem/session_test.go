package postmortem

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/wordlefetch/internal/model"
)

func failedRun() *model.Run {
	run := model.NewRun("https://example.com/wordle/")
	run.Page = `<html><script src="polyfills.js"></script><script src="main.abc123.js"></script></html>`
	run.ScriptRef = "main.abc123.js"
	run.ScriptURL = "https://example.com/wordle/main.abc123.js"
	run.Script = `var La=["cigar","rebut"];var x=1;`
	run.PerformedSteps = []string{"fetch_page", "locate_script", "fetch_script"}
	run.Failure = &model.Failure{
		Step:   "extract_lists",
		Err:    errors.New("expected 2 word-list literals in script, found 1"),
		Stack:  "extractor.go:42 (0x1)\n\tExtract: return nil, err\n",
		Origin: "github.com/nao1215/wordlefetch/internal/extractor.Extract (extractor.go:42)",
	}
	return run
}

func session(t *testing.T, run *model.Run, input string) string {
	t.Helper()

	var out bytes.Buffer
	if err := Inspect(strings.NewReader(input), &out, run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String()
}

// TestSession_Banner tests the failure banner printed on start.
func TestSession_Banner(t *testing.T) {
	t.Parallel()

	out := session(t, failedRun(), "")

	if !strings.HasPrefix(out, "Error: expected 2 word-list literals in script, found 1\n") {
		t.Errorf("unexpected banner:\n%s", out)
	}
	if !strings.Contains(out, "extractor.go:42") {
		t.Error("expected stack trace in banner")
	}
	if !strings.Contains(out, Prompt) {
		t.Error("expected prompt")
	}
}

// TestSession_Commands tests the output of each command.
func TestSession_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "help lists commands",
			input: "help\n",
			want:  []string{"where", "grep <regexp>", "lists"},
		},
		{
			name:  "where shows failed step",
			input: "where\n",
			want: []string{
				"failed in step extract_lists",
				"raised at github.com/nao1215/wordlefetch/internal/extractor.Extract (extractor.go:42)",
				"\tExtract: return nil, err",
			},
		},
		{
			name:  "error shows error",
			input: "error\n",
			want:  []string{"found 1"},
		},
		{
			name:  "run shows state",
			input: "run\n",
			want:  []string{"script url: https://example.com/wordle/main.abc123.js", "completed:  fetch_page, locate_script, fetch_script", "lists:      0"},
		},
		{
			name:  "page preview truncates",
			input: "page 6\n",
			want:  []string{"<html>\n... (6 of"},
		},
		{
			name:  "script shown whole when short",
			input: "script\n",
			want:  []string{`var La=["cigar","rebut"];var x=1;`},
		},
		{
			name:  "invalid byte count",
			input: "page abc\n",
			want:  []string{`invalid byte count "abc"`},
		},
		{
			name:  "scripts marks main bundle",
			input: "scripts\n",
			want:  []string{"  polyfills.js", "* main.abc123.js"},
		},
		{
			name:  "grep shows offset and context",
			input: "grep rebut\n",
			want:  []string{`17: var La=["cigar","rebut"];var x=1;`},
		},
		{
			name:  "grep without matches",
			input: "grep zzzzz\n",
			want:  []string{"no matches"},
		},
		{
			name:  "grep invalid regexp",
			input: "grep [\n",
			want:  []string{"invalid regexp"},
		},
		{
			name:  "lists counts literals when nothing extracted",
			input: "lists\n",
			want:  []string{"no lists extracted (1 literals in script)"},
		},
		{
			name:  "unknown command",
			input: "frobnicate\n",
			want:  []string{`unknown command "frobnicate"`},
		},
		{
			name:    "quit stops reading",
			input:   "quit\nerror\n",
			notWant: []string{"found 1\n" + Prompt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := session(t, failedRun(), tt.input)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("output unexpectedly contains %q:\n%s", nw, out)
				}
			}
		})
	}
}

// TestSession_Lists tests the lists command after extraction.
func TestSession_Lists(t *testing.T) {
	t.Parallel()

	run := failedRun()
	run.WordLists = []model.WordList{{"cigar", "rebut"}, {"aahed", "aalii", "aargh", "abaca"}}

	out := session(t, run, "lists\n")

	if !strings.Contains(out, "list 0: 2 words, first: cigar rebut") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "list 1: 4 words, first: aahed aalii aargh") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

// TestSession_NotFetched tests commands before any body was downloaded.
func TestSession_NotFetched(t *testing.T) {
	t.Parallel()

	run := model.NewRun("https://example.com/")
	run.Failure = &model.Failure{Step: "fetch_page", Err: errors.New("connection refused")}

	out := session(t, run, "page\nscript\nscripts\ngrep x\n")

	for _, w := range []string{"(page not fetched)", "(script not fetched)"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

// TestSession_NoFailure tests that a successful run is rejected.
func TestSession_NoFailure(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Inspect(strings.NewReader(""), &out, model.NewRun("https://example.com/"))
	if !errors.Is(err, ErrNoFailure) {
		t.Errorf("expected ErrNoFailure, got %v", err)
	}
}
