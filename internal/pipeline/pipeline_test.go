package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/wordlefetch/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *model.Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *model.Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "one"})
	p.AddSteps(&mockStep{name: "two"}, &mockStep{name: "three"})

	if p.StepCount() != 3 {
		t.Fatalf("expected 3 steps, got %d", p.StepCount())
	}
	names := p.StepNames()
	want := []string{"one", "two", "three"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, names[i], want[i])
		}
	}
}

// TestPipelineExecute tests step execution and failure handling.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *model.Run) error {
					order = append(order, name)
					return nil
				},
			}
		}

		p := New()
		p.AddSteps(record("a"), record("b"), record("c"))

		run := model.NewRun("https://example.com/")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
			t.Errorf("unexpected order %v", order)
		}
		if len(run.PerformedSteps) != 3 {
			t.Errorf("expected 3 performed steps, got %v", run.PerformedSteps)
		}
		if run.Failed() {
			t.Errorf("unexpected failure %+v", run.Failure)
		}
		if run.FinishedAt.IsZero() {
			t.Error("expected FinishedAt to be set")
		}
	})

	t.Run("stops at first error and records failure", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("boom")
		first := &mockStep{name: "first"}
		failing := &mockStep{
			name: "failing",
			doFunc: func(_ context.Context, _ *model.Run) error {
				return stepErr
			},
		}
		never := &mockStep{name: "never"}

		p := New()
		p.AddSteps(first, failing, never)

		run := model.NewRun("https://example.com/")
		err := p.Execute(context.Background(), run)

		if err != stepErr { //nolint:errorlint // the error must be returned unchanged
			t.Fatalf("expected the step error unchanged, got %v", err)
		}
		if never.callCount != 0 {
			t.Error("step after failure must not run")
		}
		if run.Failure == nil {
			t.Fatal("expected failure to be recorded")
		}
		if run.Failure.Step != "failing" {
			t.Errorf("failure step = %q", run.Failure.Step)
		}
		if !errors.Is(run.Failure.Err, stepErr) {
			t.Errorf("failure err = %v", run.Failure.Err)
		}
		if run.Failure.Stack == "" {
			t.Error("expected a stack trace")
		}
		if len(run.PerformedSteps) != 1 || run.PerformedSteps[0] != "first" {
			t.Errorf("performed steps = %v", run.PerformedSteps)
		}
		if run.FinishedAt.IsZero() {
			t.Error("expected FinishedAt to be set on failure")
		}
	})

	t.Run("cancelled context stops before the next step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		first := &mockStep{
			name: "first",
			doFunc: func(_ context.Context, _ *model.Run) error {
				cancel()
				return nil
			},
		}
		second := &mockStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		run := model.NewRun("https://example.com/")
		err := p.Execute(ctx, run)

		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if second.callCount != 0 {
			t.Error("second step must not run after cancellation")
		}
		if run.Failure == nil || run.Failure.Step != "second" {
			t.Errorf("unexpected failure %+v", run.Failure)
		}
	})
}

// TestExecute_FailureOrigin tests that a recorded failure points at the
// function that raised the error, not at the pipeline.
func TestExecute_FailureOrigin(t *testing.T) {
	t.Parallel()

	const bundle = `var La=["cigar","rebut"],Ta=["aahed","aalii","aargh"];`

	unavailable := func(t *testing.T) *httptest.Server {
		t.Helper()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	// blockedDir returns a path whose parent is a regular file.
	blockedDir := func(t *testing.T) string {
		t.Helper()
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		return filepath.Join(blocker, "out")
	}

	tests := []struct {
		name       string
		srv        func(t *testing.T) *httptest.Server
		dir        func(t *testing.T) string
		wantStep   string
		wantOrigin string
	}{
		{
			name:       "server error",
			srv:        unavailable,
			dir:        func(t *testing.T) string { return t.TempDir() },
			wantStep:   StepFetchPage,
			wantOrigin: "fetcher.(*Fetcher).get",
		},
		{
			name:       "no script reference",
			srv:        func(t *testing.T) *httptest.Server { return newSite(t, "<html></html>", "") },
			dir:        func(t *testing.T) string { return t.TempDir() },
			wantStep:   StepLocateScript,
			wantOrigin: "fetcher.FindScriptRef",
		},
		{
			name:       "wrong literal count",
			srv:        func(t *testing.T) *httptest.Server { return newSite(t, samplePage, `a=["cigar"];`) },
			dir:        func(t *testing.T) string { return t.TempDir() },
			wantStep:   StepExtractLists,
			wantOrigin: "extractor.Extract",
		},
		{
			name:       "unwritable output directory",
			srv:        func(t *testing.T) *httptest.Server { return newSite(t, samplePage, bundle) },
			dir:        blockedDir,
			wantStep:   StepWriteLists,
			wantOrigin: "wordlist.WriteFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run, err := runDownload(t, tt.srv(t), tt.dir(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if run.Failure == nil || run.Failure.Step != tt.wantStep {
				t.Fatalf("failure = %+v, want step %s", run.Failure, tt.wantStep)
			}
			if !strings.Contains(run.Failure.Origin, tt.wantOrigin) {
				t.Errorf("Origin = %q, want it to contain %q", run.Failure.Origin, tt.wantOrigin)
			}
			if !strings.Contains(run.Failure.Stack, tt.wantOrigin[strings.LastIndex(tt.wantOrigin, ".")+1:]) {
				t.Errorf("stack does not reach the failing function:\n%s", run.Failure.Stack)
			}
		})
	}

	t.Run("errors without a stack are anchored at Execute", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{
			name: "plain",
			doFunc: func(_ context.Context, _ *model.Run) error {
				return errors.New("plain error")
			},
		})

		run := model.NewRun("https://example.com/")
		if err := p.Execute(context.Background(), run); err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(run.Failure.Origin, "pipeline.(*Pipeline).Execute") {
			t.Errorf("Origin = %q", run.Failure.Origin)
		}
	})
}
