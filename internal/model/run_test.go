package model

import (
	"errors"
	"testing"
	"time"
)

// TestNewRun tests Run construction.
func TestNewRun(t *testing.T) {
	t.Parallel()

	r := NewRun("https://example.com/wordle/")

	if r.ID == "" {
		t.Error("expected a run ID")
	}
	if r.BaseURL != "https://example.com/wordle/" {
		t.Errorf("BaseURL = %q", r.BaseURL)
	}
	if r.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
	if r.Failed() {
		t.Error("new run should not be failed")
	}
	if r.Duration() != 0 {
		t.Errorf("unfinished run should have zero duration, got %v", r.Duration())
	}

	other := NewRun("https://example.com/wordle/")
	if other.ID == r.ID {
		t.Error("expected distinct run IDs")
	}
}

// TestNewSummary tests the serializable view of a run.
func TestNewSummary(t *testing.T) {
	t.Parallel()

	t.Run("complete run", func(t *testing.T) {
		t.Parallel()

		r := NewRun("https://example.com/")
		r.ScriptURL = "https://example.com/main.abc.js"
		r.PossibleSecrets = WordList{"abcde", "fghij"}
		r.AllowedGuesses = WordList{"abcde", "fghij", "klmno", "pqrst"}
		r.FinishedAt = r.StartedAt.Add(2 * time.Second)

		s := NewSummary(r)

		if s.Status != StatusComplete {
			t.Errorf("Status = %q, want %q", s.Status, StatusComplete)
		}
		if s.Failed() {
			t.Error("expected summary not failed")
		}
		if s.Duration != 2*time.Second {
			t.Errorf("Duration = %v", s.Duration)
		}
		if s.PossibleSecrets.Count != 2 || s.AllowedGuesses.Count != 4 {
			t.Errorf("counts = %d/%d", s.PossibleSecrets.Count, s.AllowedGuesses.Count)
		}
		if len(s.AllowedGuesses.Head) != 3 || s.AllowedGuesses.Head[2] != "klmno" {
			t.Errorf("unexpected head %v", s.AllowedGuesses.Head)
		}
		if s.PossibleSecrets.Digest != r.PossibleSecrets.Digest() {
			t.Error("digest mismatch")
		}
	})

	t.Run("failed run", func(t *testing.T) {
		t.Parallel()

		r := NewRun("https://example.com/")
		r.Failure = &Failure{Step: "fetch_page", Err: errors.New("boom")}

		s := NewSummary(r)

		if !s.Failed() {
			t.Error("expected failed summary")
		}
		if s.FailedStep != "fetch_page" || s.Error != "boom" {
			t.Errorf("failure fields = %q/%q", s.FailedStep, s.Error)
		}
		if s.PossibleSecrets.Count != 0 || s.PossibleSecrets.Digest != "" {
			t.Error("expected empty list summary")
		}
	})
}
