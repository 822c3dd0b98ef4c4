package model

import (
	"time"

	"github.com/google/uuid"
)

// Run is the state collected by one invocation of the download pipeline.
// Steps fill it in order; a failed step leaves the fields of later steps
// empty and sets Failure.
//
// Page and Script hold the raw response bodies. They are kept only for the
// duration of the process (the post-mortem session reads them) and are never
// serialized.
type Run struct {
	// ID uniquely identifies the run in the history database.
	ID string

	// BaseURL is the puzzle page URL. The script URL is derived from it.
	BaseURL string

	// StartedAt and FinishedAt bracket the pipeline execution.
	StartedAt  time.Time
	FinishedAt time.Time

	// Page is the HTML of the puzzle page.
	Page string

	// ScriptRef is the relative bundle path matched in Page, e.g. "main.4d41d2be.js".
	ScriptRef string

	// ScriptURL is BaseURL + ScriptRef.
	ScriptURL string

	// Script is the JavaScript source of the bundle.
	Script string

	// WordLists are the extracted lists ordered by ascending length.
	WordLists []WordList

	// PossibleSecrets is the shorter of the two lists.
	PossibleSecrets WordList

	// AllowedGuesses is the longer of the two lists.
	AllowedGuesses WordList

	// Files lists the output files written, in write order.
	Files []OutputFile

	// PerformedSteps names the steps that completed successfully.
	PerformedSteps []string

	// Failure is set when a step returned an error.
	Failure *Failure
}

// OutputFile describes one written word-list file.
type OutputFile struct {
	// Kind is ListPossibleSecrets or ListAllowedGuesses.
	Kind string `json:"kind"`

	// Path is the file path as written.
	Path string `json:"path"`

	// Words is the number of lines written.
	Words int `json:"words"`
}

// List kinds, used as OutputFile.Kind and in reports.
const (
	ListPossibleSecrets = "possible secrets"
	ListAllowedGuesses  = "allowed guesses"
)

// Failure records where and why the pipeline stopped.
type Failure struct {
	// Step is the name of the step that failed.
	Step string

	// Err is the error returned by the step, unchanged.
	Err error

	// Stack is the stack captured where the error was raised. Errors that
	// carry no stack of their own (cancellation, for instance) get the stack
	// of the pipeline at the time the failure was recorded.
	Stack string

	// Origin is the innermost frame of Stack, formatted as
	// "package.Function (file:line)".
	Origin string
}

// NewRun creates a Run for the given base URL with a fresh ID.
func NewRun(baseURL string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		BaseURL:   baseURL,
		StartedAt: time.Now(),
	}
}

// Failed reports whether the run stopped with an error.
func (r *Run) Failed() bool {
	return r.Failure != nil
}

// Err returns the failure error or nil.
func (r *Run) Err() error {
	if r.Failure == nil {
		return nil
	}
	return r.Failure.Err
}

// Duration returns how long the pipeline ran.
// It is zero while the run has not finished.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
