package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/audioscrub/internal/analysis"
	"github.com/backmassage/audioscrub/internal/check"
	"github.com/backmassage/audioscrub/internal/config"
	"github.com/backmassage/audioscrub/internal/display"
	"github.com/backmassage/audioscrub/internal/ffmpeg"
	"github.com/backmassage/audioscrub/internal/logging"
	"github.com/backmassage/audioscrub/internal/pipeline"
	"github.com/backmassage/audioscrub/internal/planner"
	"github.com/backmassage/audioscrub/internal/probe"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func newRootCommand() *cobra.Command {
	var (
		raw        config.Raw
		configPath string
		runCheck   bool
	)

	rootCmd := &cobra.Command{
		Use:   "audioscrub [flags] <input>",
		Short: "Clean up recorded audio and reattach it to its video",
		Long: `audioscrub runs recorded audio through a chain of cleanup filters
(normalization, compression, EQ, de-essing) and, for video input,
reattaches the processed audio to the original video stream.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runCheck {
				settings, err := config.LoadSettings(configPath)
				if err != nil {
					return err
				}
				if !check.Run(cmd.OutOrStdout(), settings.Tools.FFmpeg, settings.Tools.FFprobe) {
					return errors.New("required tools are missing")
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("input file is required")
			}
			raw.Input = args[0]
			raw.RotateCWSet = cmd.Flags().Changed("rotate-cw")
			raw.RotateCCWSet = cmd.Flags().Changed("rotate-ccw")
			return run(cmd, &raw, configPath)
		},
	}

	f := rootCmd.Flags()
	f.SortFlags = false

	f.StringVarP(&raw.Out, "out", "o", "", "Output file path (default: <input>_cleaned.<ext>)")

	f.BoolVar(&raw.All, "all", false, "Apply the standard cleanup chain (EQ, compression, loudness)")
	f.BoolVar(&raw.Normalize, "normalize", false, "Dynamic loudness normalization")
	f.BoolVar(&raw.NormalizeX, "normalize-extra", false, "Stronger EBU R128 loudness normalization")
	f.BoolVar(&raw.Compress, "compress", false, "Gentle dynamic range compression")
	f.BoolVar(&raw.CompressX, "compress-extra", false, "Heavy dynamic range compression")
	f.BoolVar(&raw.EQ, "eq", false, "Highpass/lowpass cleanup EQ")
	f.BoolVar(&raw.EQExtra, "eq-extra", false, "Presence boost around 2 kHz")
	f.BoolVar(&raw.DeEss, "deess", false, "Reduce sibilance")
	f.IntVar(&raw.TameTreble, "tame-treble", 0, "Cut harsh treble, strength 1-10")
	f.StringVar(&raw.Preset, "preset", "", "Replace the chain with a preset (vocals, inst, music, podcast)")

	f.BoolVar(&raw.AutoSuggest, "auto-suggest", false, "Analyze the input and suggest flags, then exit")
	f.BoolVar(&raw.AutoApply, "auto-apply", false, "Analyze the input and apply the suggested chain")
	f.BoolVar(&raw.Classify, "classify", false, "Print the detected content type, then exit")

	f.Float64Var(&raw.RotateCW, "rotate-cw", 0, "Rotate video clockwise by degrees")
	f.Float64Var(&raw.RotateCCW, "rotate-ccw", 0, "Rotate video counterclockwise by degrees")

	f.StringVar(&raw.Image, "img", "", "Render audio under a looped still image (audio input only)")
	f.BoolVar(&raw.MP3, "mp3", false, "Encode the result as MP3")
	f.BoolVar(&raw.NoVideo, "no-vid", false, "Discard the video stream, output audio only")
	f.BoolVar(&raw.Overwrite, "overwrite", false, "Overwrite the output file if it exists")

	f.BoolVar(&raw.DryRun, "dry-run", false, "Print the resolved plan without running anything")
	f.BoolVar(&raw.Report, "report", false, "Print a before/after loudness report")
	f.BoolVarP(&raw.Verbose, "verbose", "v", false, "Verbose output, including engine logs")
	f.BoolVar(&raw.Debug, "debug", false, "Debug output (implies --verbose)")

	f.StringVar(&configPath, "config", "", "Settings file path (default: ~/.config/audioscrub/config.toml)")
	f.BoolVar(&runCheck, "check", false, "Check that the required tools are installed, then exit")

	return rootCmd
}

func run(cmd *cobra.Command, raw *config.Raw, configPath string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return err
	}

	opts, err := config.Resolve(raw)
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	log, err := logging.New(logging.Options{
		Verbose:    opts.Verbose,
		Debug:      opts.Debug,
		File:       settings.Log.File,
		MaxSizeMB:  settings.Log.MaxSizeMB,
		MaxBackups: settings.Log.MaxBackups,
		MaxAgeDays: settings.Log.MaxAgeDays,
		Compress:   settings.Log.Compress,
	})
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	stdout := cmd.OutOrStdout()
	needsEngine := !opts.DryRun || opts.Classify || opts.AutoSuggest || opts.AutoApply
	if needsEngine {
		if err := check.Deps(settings.Tools.FFmpeg, settings.Tools.FFprobe); err != nil {
			return err
		}
	}

	exec := ffmpeg.NewExecutor(settings.Tools.FFmpeg, opts.Verbose, log)
	analyzer := analysis.NewAnalyzer(exec)

	// Analysis-only modes print to stdout and stop.
	if opts.Classify {
		d, err := analyzer.Analyze(ctx, opts.Input)
		if err != nil {
			return err
		}
		analysis.PrintClassification(stdout, d)
		return nil
	}
	if opts.AutoSuggest {
		d, err := analyzer.Analyze(ctx, opts.Input)
		if err != nil {
			return err
		}
		analysis.Suggest(stdout, d)
		return nil
	}

	if !opts.DryRun {
		display.PrintBanner(stdout)
	}

	var desc *analysis.Descriptors
	if opts.AutoApply {
		d, err := analyzer.Analyze(ctx, opts.Input)
		if err != nil {
			return err
		}
		desc = &d
	}

	chain, err := planner.Plan(opts, desc, log)
	if err != nil {
		return err
	}

	orc := &pipeline.Orchestrator{
		Engine:     exec,
		Prober:     probe.NewProber(settings.Tools.FFprobe),
		Analyzer:   analyzer,
		Log:        log,
		Out:        stdout,
		SampleRate: settings.Audio.SampleRate,
		MP3Quality: settings.Audio.MP3Quality,
	}
	_, err = orc.Run(ctx, pipeline.NewRunPlan(opts, chain))
	return err
}
