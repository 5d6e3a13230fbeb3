package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/backmassage/audioscrub/internal/config"
	"github.com/backmassage/audioscrub/internal/display"
	"github.com/backmassage/audioscrub/internal/ffmpeg"
	"github.com/backmassage/audioscrub/internal/planner"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Orchestrator drives one run through the fixed stage sequence. Every
// engine call is synchronous; a failure at any stage is terminal for the
// whole run, and temporary artifacts are removed on every exit path.
type Orchestrator struct {
	Engine   Engine
	Prober   Prober
	Analyzer Analyzer
	Log      *zap.Logger
	Out      io.Writer // user-facing output; defaults to os.Stdout

	SampleRate int    // intermediate PCM rate
	MP3Quality int    // libmp3lame -q:a
	TempRoot   string // parent for the scratch dir; "" = system default
}

// Run executes the plan and returns the final output path.
func (o *Orchestrator) Run(ctx context.Context, plan *RunPlan) (string, error) {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.SampleRate <= 0 {
		o.SampleRate = 44100
	}

	// Stage 1: validate. Also resolves the rotation fragment so a bad
	// angle fails before any side effect.
	rotFilter, err := o.validate(plan)
	if err != nil {
		return "", err
	}

	// Stage 2: dry-run short circuit. Prints the resolved plan, creates
	// nothing.
	if plan.DryRun {
		o.printPlan(plan, rotFilter)
		return plan.Output, nil
	}

	runID := uuid.NewString()
	log := o.Log.With(zap.String("run", runID[:8]))

	tmpDir, err := os.MkdirTemp(o.TempRoot, "audioscrub-*")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			log.Warn("scratch dir cleanup failed", zap.Error(rmErr))
		}
	}()

	// Stage 3: extract audio into the canonical intermediate. Always
	// runs, even for audio-only input, so every later stage sees the
	// same sample format and rate.
	rawAudio := filepath.Join(tmpDir, "audio.wav")
	log.Info("extracting audio", zap.String("input", plan.Input))
	if err := o.Engine.Run(ctx, ffmpeg.ExtractAudioArgs(plan.Input, rawAudio, o.SampleRate)...); err != nil {
		return "", err
	}

	// Stage 4: apply the whole chain in one invocation.
	processed := filepath.Join(tmpDir, "processed.wav")
	log.Info("applying filters", zap.String("chain", plan.Chain.Join()))
	if err := o.Engine.Run(ctx, ffmpeg.FilterArgs(rawAudio, processed, plan.Chain.Join())...); err != nil {
		return "", err
	}

	// Stage 5: finalize. Output is always produced inside the scratch
	// dir first and moved into place, so a failed mux or encode never
	// leaves a truncated file at the output path.
	muxed, err := o.finalize(ctx, log, plan, tmpDir, processed, rotFilter)
	if err != nil {
		return "", err
	}

	// Stage 6: before/after report.
	if plan.Report {
		if err := o.report(ctx, plan, tmpDir, muxed); err != nil {
			return "", err
		}
	}

	if fi, err := os.Stat(plan.Output); err == nil {
		fmt.Fprintf(o.Out, "Output saved to: %s (%s)\n", plan.Output, display.FormatBytes(fi.Size()))
	}
	log.Info("run complete", zap.String("output", plan.Output))
	return plan.Output, nil
}

// validate is stage 1: existence and format checks plus rotation
// resolution. Nothing here touches the filesystem beyond stat calls.
func (o *Orchestrator) validate(plan *RunPlan) (rotFilter string, err error) {
	if _, err := os.Stat(plan.Input); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, plan.Input)
	}
	if !config.SupportedExtension(plan.Input) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, config.Extension(plan.Input))
	}
	if !plan.Overwrite {
		if _, err := os.Stat(plan.Output); err == nil {
			return "", fmt.Errorf("%w: %s", ErrOutputExists, plan.Output)
		}
	}
	if len(plan.Chain) == 0 {
		return "", planner.ErrEmptyFilterChain
	}
	if plan.ImagePath != "" {
		if _, err := os.Stat(plan.ImagePath); err != nil {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, plan.ImagePath)
		}
	}
	if plan.Rotation != nil {
		rotFilter, err = plan.Rotation.Fragment()
		if err != nil {
			return "", err
		}
	}
	return rotFilter, nil
}

func (o *Orchestrator) printPlan(plan *RunPlan, rotFilter string) {
	p := display.Plan{
		Input:   plan.Input,
		Output:  plan.Output,
		Filters: plan.Chain,
	}
	if plan.Rotation != nil {
		p.Rotation = fmt.Sprintf("%s (%s)", plan.Rotation, rotFilter)
	}
	display.PrintPlan(o.Out, p)
}

// finalize is stage 5. Reports whether the output is a muxed video
// container (the report stage must demux those before analyzing).
func (o *Orchestrator) finalize(ctx context.Context, log *zap.Logger, plan *RunPlan, tmpDir, processed, rotFilter string) (muxed bool, err error) {
	staged := filepath.Join(tmpDir, "out"+config.Extension(plan.Output))

	switch plan.Kind {
	case config.KindMP3:
		log.Info("encoding MP3")
		if err := o.Engine.Run(ctx, ffmpeg.EncodeMP3Args(processed, staged, o.MP3Quality)...); err != nil {
			return false, err
		}
		return false, moveFile(staged, plan.Output)

	case config.KindStillImage:
		log.Info("rendering still-image video", zap.String("image", plan.ImagePath))
		if err := o.Engine.Run(ctx, ffmpeg.StillImageArgs(plan.ImagePath, processed, staged)...); err != nil {
			return false, err
		}
		return true, moveFile(staged, plan.Output)

	case config.KindVideo:
		pr, err := o.Prober.Probe(ctx, plan.Input)
		if err != nil {
			return false, err
		}
		if !pr.HasVideo {
			// Video container without a video stream: plain audio out.
			log.Info("no video stream found, writing audio only")
			return false, copyFile(processed, plan.Output)
		}
		if err := o.reattach(ctx, log, plan, tmpDir, processed, staged, rotFilter); err != nil {
			return false, err
		}
		return true, moveFile(staged, plan.Output)
	}

	// KindWAV: the processed intermediate is the result.
	return false, copyFile(processed, plan.Output)
}

// reattach extracts the video stream, optionally rotates it, and muxes it
// with the processed audio (truncating to the shorter stream).
func (o *Orchestrator) reattach(ctx context.Context, log *zap.Logger, plan *RunPlan, tmpDir, processed, staged, rotFilter string) error {
	video := filepath.Join(tmpDir, "video.mp4")
	log.Info("extracting video stream")
	if err := o.Engine.Run(ctx, ffmpeg.ExtractVideoArgs(plan.Input, video)...); err != nil {
		return err
	}

	if rotFilter != "" {
		rotated := filepath.Join(tmpDir, "video_rotated.mp4")
		log.Info("rotating video", zap.String("rotation", plan.Rotation.String()), zap.String("filter", rotFilter))
		if err := o.Engine.Run(ctx, ffmpeg.RotateArgs(video, rotated, rotFilter)...); err != nil {
			return err
		}
		video = rotated
	}

	log.Info("muxing video and processed audio")
	return o.Engine.Run(ctx, ffmpeg.MuxArgs(video, processed, staged)...)
}

// report is stage 6: descriptors for the original input and the final
// output, printed side by side. A muxed output is demuxed back to audio
// first.
func (o *Orchestrator) report(ctx context.Context, plan *RunPlan, tmpDir string, muxed bool) error {
	before, err := o.Analyzer.Analyze(ctx, plan.Input)
	if err != nil {
		return err
	}

	target := plan.Output
	if muxed {
		target = filepath.Join(tmpDir, "final_out.wav")
		if err := o.Engine.Run(ctx, ffmpeg.ExtractAudioArgs(plan.Output, target, o.SampleRate)...); err != nil {
			return err
		}
	}

	after, err := o.Analyzer.Analyze(ctx, target)
	if err != nil {
		return err
	}

	display.PrintReport(o.Out, before, after)
	return nil
}
