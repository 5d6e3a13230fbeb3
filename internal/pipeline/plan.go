// Package pipeline sequences the engine invocations for one run: extract,
// filter, finalize (copy, encode, or reattach), report, cleanup.
package pipeline

import (
	"context"
	"errors"

	"github.com/backmassage/audioscrub/internal/analysis"
	"github.com/backmassage/audioscrub/internal/config"
	"github.com/backmassage/audioscrub/internal/planner"
	"github.com/backmassage/audioscrub/internal/probe"
	"github.com/backmassage/audioscrub/internal/rotation"
)

// Engine runs one external media-engine invocation. Implemented by
// *ffmpeg.Executor; stubbed in tests.
type Engine interface {
	Run(ctx context.Context, args ...string) error
}

// Prober inspects an input container. Implemented by *probe.Prober.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.Result, error)
}

// Analyzer computes audio descriptors. Implemented by *analysis.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, path string) (analysis.Descriptors, error)
}

var (
	ErrInputNotFound     = errors.New("input file not found")
	ErrUnsupportedFormat = errors.New("unsupported input file format")
	ErrOutputExists      = errors.New("output file exists (use --overwrite)")
)

// RunPlan is the fully resolved description of one run. It is assembled
// once, before any side-effecting call, and executed read-only; a dry run
// prints it and stops without creating anything.
type RunPlan struct {
	Input  string
	Output string
	Kind   config.OutputKind

	Chain    planner.Chain
	Rotation *rotation.Request

	ImagePath string

	Overwrite bool
	DryRun    bool
	Report    bool
}

// NewRunPlan assembles the plan from the resolved options and the
// resolved filter chain.
func NewRunPlan(opts *config.Options, chain planner.Chain) *RunPlan {
	return &RunPlan{
		Input:     opts.Input,
		Output:    opts.Output,
		Kind:      opts.Kind,
		Chain:     chain,
		Rotation:  opts.Rotation,
		ImagePath: opts.ImagePath,
		Overwrite: opts.Overwrite,
		DryRun:    opts.DryRun,
		Report:    opts.Report,
	}
}
