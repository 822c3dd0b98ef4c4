package wordlist

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/wordlefetch/internal/model"
)

// Writer writes the two classified lists to their files.
type Writer struct {
	allowedGuessesPath  string
	possibleSecretsPath string
	logger              *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the logger.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer for the given output paths.
func NewWriter(allowedGuessesPath, possibleSecretsPath string, opts ...WriterOption) *Writer {
	w := &Writer{
		allowedGuessesPath:  allowedGuessesPath,
		possibleSecretsPath: possibleSecretsPath,
		logger:              slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write writes the allowed guesses, then the possible secrets.
// It returns the files written so far together with the first error; a
// failure on the second file leaves the first one in place.
func (w *Writer) Write(possibleSecrets, allowedGuesses model.WordList) ([]model.OutputFile, error) {
	targets := []struct {
		kind  string
		path  string
		words model.WordList
	}{
		{model.ListAllowedGuesses, w.allowedGuessesPath, allowedGuesses},
		{model.ListPossibleSecrets, w.possibleSecretsPath, possibleSecrets},
	}

	written := make([]model.OutputFile, 0, len(targets))
	for _, t := range targets {
		if err := WriteFile(t.path, t.words); err != nil {
			return written, err
		}
		w.logger.Info("word list written",
			"kind", t.kind,
			"path", t.path,
			"words", t.words.Len(),
		)
		written = append(written, model.OutputFile{Kind: t.kind, Path: t.path, Words: t.words.Len()})
	}
	return written, nil
}

// WriteFile writes words to path, one per line, truncating any existing file.
// Missing parent directories are created. Failures are returned as an
// *IOError carrying the stack of WriteFile.
func WriteFile(path string, words model.WordList) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if mkErr := os.MkdirAll(dir, 0750); mkErr != nil {
			return newIOError("mkdir", dir, mkErr)
		}
	}

	f, err := os.Create(path) //nolint:gosec // output path comes from configuration
	if err != nil {
		return newIOError("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = newIOError("close", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	for _, word := range words {
		if _, werr := bw.WriteString(word + "\n"); werr != nil {
			return newIOError("write", path, werr)
		}
	}
	if ferr := bw.Flush(); ferr != nil {
		return newIOError("write", path, ferr)
	}
	return nil
}
