// Package flow runs one rowdraw session from file selection to display.
//
// A run moves through SelectingFile, Loading, AwaitingSize, Sampling,
// Displaying and Done. Any failure moves it to Error and ends the run; there
// is no way back to file selection.
package flow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leapstack-labs/rowdraw/internal/dataset"
	"github.com/leapstack-labs/rowdraw/internal/sampler"
)

// Stage is a state of the run.
type Stage int

// Run stages in order.
const (
	StageSelectingFile Stage = iota
	StageLoading
	StageAwaitingSize
	StageSampling
	StageDisplaying
	StageDone
	StageError
)

var stageNames = [...]string{
	StageSelectingFile: "selecting file",
	StageLoading:       "loading",
	StageAwaitingSize:  "awaiting size",
	StageSampling:      "sampling",
	StageDisplaying:    "displaying",
	StageDone:          "done",
	StageError:         "error",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Prompter asks the user for the run's inputs. An empty string with a nil
// error means the user gave no answer.
type Prompter interface {
	SelectFile(ctx context.Context) (string, error)
	SubsetSize(ctx context.Context, rows int) (string, error)
}

// Displayer shows an accepted subset. draw counts from 1.
type Displayer interface {
	Display(ctx context.Context, sub sampler.Subset, draw int) error
}

// Config holds the inputs that do not come from prompts.
type Config struct {
	// Path skips file selection when set.
	Path string
	// Size skips the size prompt when set; it is parsed like typed input.
	Size string
	// Draws is the number of consecutive subsets to show; values below 1 mean 1.
	Draws   int
	Dataset dataset.Options
	Sampler sampler.Options
	// Source defaults to a clock-seeded PCG source.
	Source sampler.Source
	Logger *slog.Logger
}

// Result is what a completed run produced.
type Result struct {
	Path    string
	Dataset *dataset.Dataset
	Subsets []sampler.Subset
}

// Runner drives a single run.
type Runner struct {
	cfg      Config
	prompter Prompter
	display  Displayer
	logger   *slog.Logger

	stage Stage
	trace []Stage
}

// NewRunner creates a runner positioned at StageSelectingFile.
func NewRunner(cfg Config, p Prompter, d Displayer) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Sampler.Logger == nil {
		cfg.Sampler.Logger = logger
	}
	if cfg.Source == nil {
		cfg.Source = sampler.NewSource(0)
	}
	return &Runner{
		cfg:      cfg,
		prompter: p,
		display:  d,
		logger:   logger,
		stage:    StageSelectingFile,
		trace:    []Stage{StageSelectingFile},
	}
}

// Stage returns the current stage.
func (r *Runner) Stage() Stage { return r.stage }

// Trace returns every stage the run has entered, in order.
func (r *Runner) Trace() []Stage { return append([]Stage(nil), r.trace...) }

func (r *Runner) enter(s Stage) {
	r.logger.Debug("stage transition", "from", r.stage, "to", s)
	r.stage = s
	r.trace = append(r.trace, s)
}

func (r *Runner) fail(err error) error {
	failed := r.stage
	r.enter(StageError)
	return &Error{Stage: failed, Err: err}
}

// Run executes the run to completion. It returns a *Error on failure.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.stage != StageSelectingFile {
		return nil, errors.New("runner already used")
	}

	path := r.cfg.Path
	if path == "" {
		var err error
		path, err = r.prompter.SelectFile(ctx)
		if err != nil {
			return nil, r.fail(err)
		}
		if path == "" {
			return nil, r.fail(ErrNoFileSelected)
		}
	}

	r.enter(StageLoading)
	ds, err := dataset.Load(path, r.cfg.Dataset)
	if err != nil {
		r.logger.Error("failed to read csv", "path", path, "error", err)
		return nil, r.fail(err)
	}
	r.logger.Info("dataset loaded", "path", path, "rows", ds.Len(), "columns", len(ds.Header()))

	r.enter(StageAwaitingSize)
	input := r.cfg.Size
	if input == "" {
		input, err = r.prompter.SubsetSize(ctx, ds.Len())
		if err != nil {
			return nil, r.fail(err)
		}
	}
	size, err := ParseSize(input, ds.Len())
	if err != nil {
		return nil, r.fail(err)
	}

	draws := r.cfg.Draws
	if draws < 1 {
		draws = 1
	}

	res := &Result{Path: path, Dataset: ds}
	session := sampler.NewSession(ds, r.cfg.Source, r.cfg.Sampler)
	for session.Draws() < draws {
		r.enter(StageSampling)
		sub, err := session.Draw(size)
		if err != nil {
			return nil, r.fail(err)
		}
		r.logger.Debug("subset drawn", "draw", session.Draws(), "indices", sub.Indices, "attempts", sub.Attempts)
		res.Subsets = append(res.Subsets, sub)

		r.enter(StageDisplaying)
		if err := r.display.Display(ctx, sub, session.Draws()); err != nil {
			return nil, r.fail(err)
		}
	}

	r.enter(StageDone)
	return res, nil
}
