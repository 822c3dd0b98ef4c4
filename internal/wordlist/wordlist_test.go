package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nao1215/wordlefetch/internal/model"
)

// TestWriteFile_RoundTrip tests that written lists read back unchanged.
func TestWriteFile_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		words model.WordList
	}{
		{name: "single word", words: model.WordList{"cigar"}},
		{name: "several words in source order", words: model.WordList{"rebut", "sissy", "humph", "awake"}},
		{name: "duplicates are kept", words: model.WordList{"aaaaa", "aaaaa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "list.txt")
			if err := WriteFile(path, tt.words); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}

			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.words) {
				t.Errorf("round trip = %v, want %v", got, tt.words)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.words.Text() {
				t.Errorf("file content = %q, want %q", data, tt.words.Text())
			}
			if problems := Check(string(data)); len(problems) != 0 {
				t.Errorf("expected no format problems, got %v", problems)
			}
		})
	}
}

// TestWriteFile_Overwrites tests that an existing file is truncated.
func TestWriteFile_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte("old content that is longer\nzzzzz\nyyyyy\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := WriteFile(path, model.WordList{"abcde"}); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "abcde\n" {
		t.Errorf("content = %q", data)
	}
}

// TestWriteFile_CreatesDirectories tests parent directory creation.
func TestWriteFile_CreatesDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "list.txt")
	if err := WriteFile(path, model.WordList{"abcde"}); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

// TestWriteFile_IOError tests filesystem failure reporting.
func TestWriteFile_IOError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	err := WriteFile(filepath.Join(blocker, "list.txt"), model.WordList{"abcde"})

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T %v", err, err)
	}
	if ioErr.Op != "mkdir" {
		t.Errorf("Op = %q, want mkdir", ioErr.Op)
	}
	if !strings.Contains(ioErr.Error(), "not-a-dir") {
		t.Errorf("error should name the path: %v", ioErr)
	}
}

// TestWriter_Write tests writing both classified lists.
func TestWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("each list goes to its own file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		guessesPath := filepath.Join(dir, "guesses.txt")
		secretsPath := filepath.Join(dir, "secrets.txt")

		secrets := model.WordList{"abcde", "fghij"}
		guesses := model.WordList{"abcde", "fghij", "klmno"}

		files, err := NewWriter(guessesPath, secretsPath).Write(secrets, guesses)
		if err != nil {
			t.Fatalf("Write() error: %v", err)
		}

		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %d", len(files))
		}
		if files[0].Kind != model.ListAllowedGuesses || files[0].Path != guessesPath || files[0].Words != 3 {
			t.Errorf("files[0] = %+v", files[0])
		}
		if files[1].Kind != model.ListPossibleSecrets || files[1].Path != secretsPath || files[1].Words != 2 {
			t.Errorf("files[1] = %+v", files[1])
		}

		gotSecrets, err := ReadFile(secretsPath)
		if err != nil {
			t.Fatal(err)
		}
		gotGuesses, err := ReadFile(guessesPath)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(gotSecrets, secrets) {
			t.Errorf("secrets file = %v", gotSecrets)
		}
		if !reflect.DeepEqual(gotGuesses, guesses) {
			t.Errorf("guesses file = %v", gotGuesses)
		}
	})

	t.Run("failure on second file keeps the first", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		guessesPath := filepath.Join(dir, "guesses.txt")
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		secretsPath := filepath.Join(blocker, "secrets.txt")

		files, err := NewWriter(guessesPath, secretsPath).Write(model.WordList{"abcde"}, model.WordList{"abcde", "fghij"})

		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("expected *IOError, got %v", err)
		}
		if len(files) != 1 || files[0].Path != guessesPath {
			t.Errorf("expected first file to be reported, got %+v", files)
		}
		if _, err := os.Stat(guessesPath); err != nil {
			t.Errorf("first file should remain: %v", err)
		}
	})
}

// TestReadFile_Missing tests reading a file that does not exist.
func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "read" {
		t.Fatalf("expected read *IOError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

// TestCheck tests format checking.
func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		reasons []string
	}{
		{name: "valid file", content: "abcde\nfghij\n", reasons: nil},
		{name: "empty file", content: "", reasons: []string{"file is empty"}},
		{name: "blank line", content: "abcde\n\nfghij\n", reasons: []string{"blank line"}},
		{name: "uppercase word", content: "Abcde\n", reasons: []string{"not a five-letter lowercase word"}},
		{name: "short word", content: "abcd\n", reasons: []string{"not a five-letter lowercase word"}},
		{name: "crlf line endings", content: "abcde\r\n", reasons: []string{"carriage return"}},
		{name: "missing final newline", content: "abcde\nfghij", reasons: []string{"missing final newline"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			problems := Check(tt.content)
			if len(problems) != len(tt.reasons) {
				t.Fatalf("got %d problems %v, want %v", len(problems), problems, tt.reasons)
			}
			for i, p := range problems {
				if p.Reason != tt.reasons[i] {
					t.Errorf("problem %d reason = %q, want %q", i, p.Reason, tt.reasons[i])
				}
			}
		})
	}
}

// TestProblemString tests problem formatting.
func TestProblemString(t *testing.T) {
	t.Parallel()

	p := Problem{Line: 3, Text: "ABCDE", Reason: "not a five-letter lowercase word"}
	if got := p.String(); got != `line 3: not a five-letter lowercase word: "ABCDE"` {
		t.Errorf("String() = %q", got)
	}
}
