package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goerrors "github.com/go-errors/errors"

	"github.com/nao1215/wordlefetch/internal/model"
)

// Step is one stage of the download pipeline.
// Steps run in sequence; each one reads what earlier steps stored in the
// run and adds its own result.
type Step interface {
	// Do executes the step, reading and updating run.
	// A returned error stops the pipeline.
	Do(ctx context.Context, run *model.Run) error

	// Name returns the step's name for logging and failure reports.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for step progress.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates an empty Pipeline.
// Steps are added with AddStep or AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	// Apply options
	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the end of the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends several steps, keeping their order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step in order and stops at the first error, which is
// recorded in run.Failure and returned unchanged. Cancellation is checked
// between steps; a cancelled context fails the run with ctx.Err().
// run.FinishedAt is set when Execute returns.
func (p *Pipeline) Execute(ctx context.Context, run *model.Run) error {
	defer func() {
		run.FinishedAt = time.Now()
	}()

	for _, step := range p.steps {
		// Check for cancellation before each step
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			run.Failure = newFailure(step.Name(), err)
			return err
		}

		p.logger.Info("executing step", "step", step.Name())

		if err := step.Do(ctx, run); err != nil {
			run.Failure = newFailure(step.Name(), err)
			p.logger.Error("step failed",
				"step", step.Name(),
				"origin", run.Failure.Origin,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed", "step", step.Name())
		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return nil
}

// newFailure records a failed step. The stack comes from the
// *goerrors.Error the failing code attached to err; errors raised without
// one get the stack of the caller of newFailure.
func newFailure(step string, err error) *model.Failure {
	var stackErr *goerrors.Error
	if !errors.As(err, &stackErr) {
		stackErr = goerrors.Wrap(err, 1)
	}

	return &model.Failure{
		Step:   step,
		Err:    err,
		Stack:  string(stackErr.Stack()),
		Origin: origin(stackErr.StackFrames()),
	}
}

// origin formats the innermost frame of a stack.
func origin(frames []goerrors.StackFrame) string {
	if len(frames) == 0 {
		return ""
	}
	f := frames[0]
	return fmt.Sprintf("%s.%s (%s:%d)", f.Package, f.Name, f.File, f.LineNumber)
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
