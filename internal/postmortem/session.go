package postmortem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/nao1215/wordlefetch/internal/extractor"
	"github.com/nao1215/wordlefetch/internal/fetcher"
	"github.com/nao1215/wordlefetch/internal/model"
)

// Prompt is printed before each command.
const Prompt = "(wordlefetch) "

const (
	// DefaultPreviewBytes is the byte count shown by page and script without an argument.
	DefaultPreviewBytes = 500

	// MaxGrepMatches bounds the output of grep.
	MaxGrepMatches = 20

	// grepContext is the number of bytes shown on each side of a grep match.
	grepContext = 40
)

// ErrNoFailure is returned by Start when the run did not fail.
var ErrNoFailure = errors.New("run has no failure to inspect")

// Session is an inspection session over one failed run.
type Session struct {
	run      *model.Run
	in       *bufio.Scanner
	out      io.Writer
	commands map[string]command
}

// command is one session command. fn returns true to end the session.
type command struct {
	usage string
	help  string
	fn    func(args []string) bool
}

// New creates a Session reading commands from in and writing to out.
func New(in io.Reader, out io.Writer, run *model.Run) *Session {
	s := &Session{
		run: run,
		in:  bufio.NewScanner(in),
		out: out,
	}
	s.commands = map[string]command{
		"help":    {"help", "show this list", s.cmdHelp},
		"where":   {"where", "failed step and stack trace", s.cmdWhere},
		"error":   {"error", "the error that stopped the run", s.cmdError},
		"run":     {"run", "summary of the collected state", s.cmdRun},
		"page":    {"page [n]", "first n bytes of the page (default 500)", s.cmdPage},
		"script":  {"script [n]", "first n bytes of the script (default 500)", s.cmdScript},
		"scripts": {"scripts", "script sources referenced by the page", s.cmdScripts},
		"grep":    {"grep <regexp>", "matches in the script with context", s.cmdGrep},
		"lists":   {"lists", "extracted word lists", s.cmdLists},
		"quit":    {"quit", "leave the session", s.cmdQuit},
		"exit":    {"exit", "leave the session", s.cmdQuit},
	}
	return s
}

// Start prints the failure banner and runs the command loop until quit,
// exit or end of input.
func (s *Session) Start() error {
	if s.run == nil || s.run.Failure == nil {
		return ErrNoFailure
	}

	// Banner: the error, where it was raised and the captured stack
	s.printf("Error: %v\n", s.run.Failure.Err)
	if s.run.Failure.Origin != "" {
		s.printf("raised at %s\n", s.run.Failure.Origin)
	}
	s.printf("%s\n", strings.TrimRight(s.run.Failure.Stack, "\n"))
	s.printf("Entering post-mortem session; type help for commands.\n")

	for {
		s.printf("%s", Prompt)
		// End of input ends the session like quit does
		if !s.in.Scan() {
			s.printf("\n")
			return s.in.Err()
		}

		fields := strings.Fields(s.in.Text())
		// Blank lines just show the prompt again
		if len(fields) == 0 {
			continue
		}

		cmd, ok := s.commands[fields[0]]
		if !ok {
			s.printf("unknown command %q; type help\n", fields[0])
			continue
		}
		if quit := cmd.fn(fields[1:]); quit {
			return nil
		}
	}
}

// Inspect runs a Session over run. It is the entry point used by --pdb.
func Inspect(in io.Reader, out io.Writer, run *model.Run) error {
	return New(in, out, run).Start()
}

// printf writes to the session output. Write errors are ignored; the
// session has nowhere else to report them.
func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// cmdHelp lists the commands in a fixed order; exit is an alias of quit.
func (s *Session) cmdHelp(_ []string) bool {
	for _, name := range []string{"help", "where", "error", "run", "page", "script", "scripts", "grep", "lists", "quit"} {
		c := s.commands[name]
		s.printf("  %-14s %s\n", c.usage, c.help)
	}
	return false
}

// cmdWhere shows the failed step, the origin frame and the full stack.
func (s *Session) cmdWhere(_ []string) bool {
	s.printf("failed in step %s\n", s.run.Failure.Step)
	if s.run.Failure.Origin != "" {
		s.printf("raised at %s\n", s.run.Failure.Origin)
	}
	s.printf("%s\n", strings.TrimRight(s.run.Failure.Stack, "\n"))
	return false
}

func (s *Session) cmdError(_ []string) bool {
	s.printf("%v\n", s.run.Failure.Err)
	return false
}

// cmdRun summarizes what the run collected before it stopped.
func (s *Session) cmdRun(_ []string) bool {
	r := s.run
	s.printf("id:         %s\n", r.ID)
	s.printf("base url:   %s\n", r.BaseURL)
	s.printf("script url: %s\n", orNone(r.ScriptURL))
	s.printf("completed:  %s\n", orNone(strings.Join(r.PerformedSteps, ", ")))
	s.printf("failed:     %s\n", r.Failure.Step)
	s.printf("page:       %d bytes\n", len(r.Page))
	s.printf("script:     %d bytes\n", len(r.Script))
	s.printf("lists:      %d\n", len(r.WordLists))
	for _, f := range r.Files {
		s.printf("wrote:      %s (%s, %d words)\n", f.Path, f.Kind, f.Words)
	}
	return false
}

func (s *Session) cmdPage(args []string) bool {
	s.preview("page", s.run.Page, args)
	return false
}

func (s *Session) cmdScript(args []string) bool {
	s.preview("script", s.run.Script, args)
	return false
}

// preview prints the first n bytes of text, n taken from args[0] or
// DefaultPreviewBytes.
func (s *Session) preview(what, text string, args []string) {
	if text == "" {
		s.printf("(%s not fetched)\n", what)
		return
	}

	n := DefaultPreviewBytes
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			s.printf("invalid byte count %q\n", args[0])
			return
		}
		n = v
	}

	if n >= len(text) {
		s.printf("%s\n", text)
		return
	}
	s.printf("%s\n... (%d of %d bytes)\n", text[:n], n, len(text))
}

// cmdScripts lists every <script src> of the page in document order and
// marks with * those matching the main bundle pattern. It helps when the
// page layout changed and locate_script found nothing.
func (s *Session) cmdScripts(_ []string) bool {
	if s.run.Page == "" {
		s.printf("(page not fetched)\n")
		return false
	}

	sources := fetcher.ScriptSources(s.run.Page)
	if len(sources) == 0 {
		s.printf("(no script elements with src)\n")
		return false
	}

	matched := make(map[string]bool)
	for _, ref := range fetcher.ScriptRefs(s.run.Page) {
		matched[ref] = true
	}
	for _, src := range sources {
		marker := " "
		if matched[src] {
			marker = "*"
		}
		s.printf("%s %s\n", marker, src)
	}
	return false
}

// cmdGrep searches the script text. The bundle is minified onto one line,
// so matches are reported by byte offset with surrounding context rather
// than by line.
func (s *Session) cmdGrep(args []string) bool {
	if len(args) == 0 {
		s.printf("usage: grep <regexp>\n")
		return false
	}
	if s.run.Script == "" {
		s.printf("(script not fetched)\n")
		return false
	}

	// Arguments are rejoined so patterns may contain spaces
	re, err := regexp.Compile(strings.Join(args, " "))
	if err != nil {
		s.printf("invalid regexp: %v\n", err)
		return false
	}

	script := s.run.Script
	// One extra match tells whether output was cut
	matches := re.FindAllStringIndex(script, MaxGrepMatches+1)
	if len(matches) == 0 {
		s.printf("no matches\n")
		return false
	}

	for i, m := range matches {
		if i == MaxGrepMatches {
			s.printf("... more matches omitted\n")
			break
		}
		from := max(0, m[0]-grepContext)
		to := min(len(script), m[1]+grepContext)
		s.printf("%d: %s\n", m[0], strings.ReplaceAll(script[from:to], "\n", " "))
	}
	return false
}

// cmdLists shows the extracted lists. Before extraction it counts the
// literals in the script instead, which explains a count failure.
func (s *Session) cmdLists(_ []string) bool {
	if len(s.run.WordLists) == 0 {
		literals := 0
		if s.run.Script != "" {
			literals = len(extractor.FindLiterals(s.run.Script))
		}
		s.printf("no lists extracted (%d literals in script)\n", literals)
		return false
	}

	for i, list := range s.run.WordLists {
		s.printf("list %d: %d words, first: %s\n", i, list.Len(), strings.Join(list.First(3), " "))
	}
	return false
}

func (s *Session) cmdQuit(_ []string) bool {
	return true
}

func orNone(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}
