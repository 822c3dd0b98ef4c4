package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/wordlefetch/internal/extractor"
	"github.com/nao1215/wordlefetch/internal/fetcher"
	"github.com/nao1215/wordlefetch/internal/model"
)

// Step names.
const (
	StepFetchPage    = "fetch_page"
	StepLocateScript = "locate_script"
	StepFetchScript  = "fetch_script"
	StepExtractLists = "extract_lists"
	StepWriteLists   = "write_lists"
)

// Downloader retrieves the page and script text.
// *fetcher.Fetcher implements it.
type Downloader interface {
	FetchPage(ctx context.Context, baseURL string) (string, error)
	FetchScript(ctx context.Context, scriptURL string) (string, error)
}

// ListWriter persists the classified lists.
// *wordlist.Writer implements it.
type ListWriter interface {
	Write(possibleSecrets, allowedGuesses model.WordList) ([]model.OutputFile, error)
}

// FetchPageStep downloads the puzzle page into run.Page.
type FetchPageStep struct {
	downloader Downloader
	logger     *slog.Logger
}

// NewFetchPageStep creates a FetchPageStep.
func NewFetchPageStep(d Downloader, logger *slog.Logger) *FetchPageStep {
	return &FetchPageStep{downloader: d, logger: logger}
}

// Name returns the step name.
func (s *FetchPageStep) Name() string { return StepFetchPage }

// Do executes the step.
func (s *FetchPageStep) Do(ctx context.Context, run *model.Run) error {
	page, err := s.downloader.FetchPage(ctx, run.BaseURL)
	if err != nil {
		return err
	}
	run.Page = page
	s.logger.Debug("page fetched", "url", run.BaseURL, "bytes", len(page))
	return nil
}

// LocateScriptStep finds the main bundle reference in run.Page and derives
// run.ScriptURL from it.
type LocateScriptStep struct {
	logger *slog.Logger
}

// NewLocateScriptStep creates a LocateScriptStep.
func NewLocateScriptStep(logger *slog.Logger) *LocateScriptStep {
	return &LocateScriptStep{logger: logger}
}

// Name returns the step name.
func (s *LocateScriptStep) Name() string { return StepLocateScript }

// Do executes the step.
func (s *LocateScriptStep) Do(_ context.Context, run *model.Run) error {
	ref, err := fetcher.FindScriptRef(run.Page)
	if err != nil {
		return err
	}
	run.ScriptRef = ref
	run.ScriptURL = fetcher.ScriptURL(run.BaseURL, ref)
	s.logger.Debug("script located",
		"ref", ref,
		"candidates", len(fetcher.ScriptRefs(run.Page)),
		"url", run.ScriptURL,
	)
	return nil
}

// FetchScriptStep downloads run.ScriptURL into run.Script.
type FetchScriptStep struct {
	downloader Downloader
	logger     *slog.Logger
}

// NewFetchScriptStep creates a FetchScriptStep.
func NewFetchScriptStep(d Downloader, logger *slog.Logger) *FetchScriptStep {
	return &FetchScriptStep{downloader: d, logger: logger}
}

// Name returns the step name.
func (s *FetchScriptStep) Name() string { return StepFetchScript }

// Do executes the step.
func (s *FetchScriptStep) Do(ctx context.Context, run *model.Run) error {
	script, err := s.downloader.FetchScript(ctx, run.ScriptURL)
	if err != nil {
		return err
	}
	run.Script = script
	s.logger.Debug("script fetched", "url", run.ScriptURL, "bytes", len(script))
	return nil
}

// ExtractStep pulls the two word lists out of run.Script and classifies them.
type ExtractStep struct {
	logger *slog.Logger
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(logger *slog.Logger) *ExtractStep {
	return &ExtractStep{logger: logger}
}

// Name returns the step name.
func (s *ExtractStep) Name() string { return StepExtractLists }

// Do executes the step.
func (s *ExtractStep) Do(_ context.Context, run *model.Run) error {
	lists, err := extractor.Extract(run.Script)
	if err != nil {
		return err
	}
	run.WordLists = lists

	secrets, guesses, err := extractor.Classify(lists)
	if err != nil {
		return err
	}
	run.PossibleSecrets = secrets
	run.AllowedGuesses = guesses

	s.logger.Debug("word lists extracted",
		"possibleSecrets", secrets.Len(),
		"allowedGuesses", guesses.Len(),
	)
	return nil
}

// WriteStep writes the classified lists through a ListWriter.
type WriteStep struct {
	writer ListWriter
}

// NewWriteStep creates a WriteStep.
func NewWriteStep(w ListWriter) *WriteStep {
	return &WriteStep{writer: w}
}

// Name returns the step name.
func (s *WriteStep) Name() string { return StepWriteLists }

// Do executes the step. Files written before a failure are still recorded
// in run.Files.
func (s *WriteStep) Do(_ context.Context, run *model.Run) error {
	files, err := s.writer.Write(run.PossibleSecrets, run.AllowedGuesses)
	run.Files = files
	return err
}

// DefaultPipeline builds the five-step download pipeline.
func DefaultPipeline(d Downloader, w ListWriter, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewFetchPageStep(d, p.logger),
		NewLocateScriptStep(p.logger),
		NewFetchScriptStep(d, p.logger),
		NewExtractStep(p.logger),
		NewWriteStep(w),
	)
	return p
}
