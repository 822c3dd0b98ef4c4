package model

import "time"

// Run statuses stored in Summary.Status.
const (
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// headCount is how many leading words a ListSummary keeps.
const headCount = 3

// Summary is the serializable view of a Run.
// It carries counts and digests but none of the fetched bodies.
// The report writers and the history database both work from it.
type Summary struct {
	// ID is the run's UUID.
	ID string `json:"id"`

	// BaseURL is the puzzle page URL.
	BaseURL string `json:"base_url"`

	// ScriptURL is empty when the run stopped before locate_script.
	ScriptURL string `json:"script_url,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`

	// Status is StatusComplete or StatusFailed.
	Status string `json:"status"`

	// FailedStep and Error are set for failed runs only.
	FailedStep string `json:"failed_step,omitempty"`
	Error      string `json:"error,omitempty"`

	PossibleSecrets ListSummary `json:"possible_secrets"`
	AllowedGuesses  ListSummary `json:"allowed_guesses"`

	// Files lists the files written, which may be one on a write failure.
	Files []OutputFile `json:"files,omitempty"`
}

// ListSummary describes one classified word list.
// The zero value describes a list that was never extracted.
type ListSummary struct {
	// Count is the number of words.
	Count int `json:"count"`

	// Digest is the hex SHA3-256 of the list as written to its file.
	Digest string `json:"digest,omitempty"`

	// Head holds the first few words, for a quick visual check.
	Head []string `json:"head,omitempty"`
}

// NewSummary builds a Summary from a Run.
func NewSummary(r *Run) *Summary {
	s := &Summary{
		ID:              r.ID,
		BaseURL:         r.BaseURL,
		ScriptURL:       r.ScriptURL,
		StartedAt:       r.StartedAt,
		Duration:        r.Duration(),
		Status:          StatusComplete,
		PossibleSecrets: newListSummary(r.PossibleSecrets),
		AllowedGuesses:  newListSummary(r.AllowedGuesses),
		Files:           r.Files,
	}

	if r.Failure != nil {
		s.Status = StatusFailed
		s.FailedStep = r.Failure.Step
		if r.Failure.Err != nil {
			s.Error = r.Failure.Err.Error()
		}
	}

	return s
}

// newListSummary copies the head so the summary does not alias the run.
func newListSummary(l WordList) ListSummary {
	if len(l) == 0 {
		return ListSummary{}
	}
	return ListSummary{
		Count:  len(l),
		Digest: l.Digest(),
		Head:   append([]string(nil), l.First(headCount)...),
	}
}

// Failed reports whether the summarized run failed.
func (s *Summary) Failed() bool {
	return s.Status == StatusFailed
}
