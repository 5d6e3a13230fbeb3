// Package config holds the resolved run options and the optional TOML
// settings file. Options is built exactly once from CLI input and passed
// read-only through the planner and the pipeline.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/audioscrub/internal/rotation"
)

// OutputKind is the requested shape of the final artifact.
type OutputKind string

const (
	KindWAV        OutputKind = "wav"        // processed audio copied as-is
	KindMP3        OutputKind = "mp3"        // processed audio encoded to MP3
	KindVideo      OutputKind = "video"      // processed audio muxed back with the input video
	KindStillImage OutputKind = "stillimage" // processed audio under a looped still image
)

// supportedExtensions is the input allow-list. Anything else is rejected
// before the engine is ever invoked.
var supportedExtensions = map[string]bool{
	".wav":  true,
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".flac": true,
}

// videoExtensions are the container formats that may carry a video stream
// worth reattaching.
var videoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".mkv": true,
}

// audioOnlyExtensions are the formats --img accepts as input.
var audioOnlyExtensions = map[string]bool{
	".wav":  true,
	".flac": true,
}

// Options is the immutable resolved option set for one run. All
// cross-flag resolution (rotation exclusivity, output naming, output kind)
// happens in Resolve; afterwards nothing mutates this value.
type Options struct {
	Input  string
	Output string
	Kind   OutputKind

	// Filter selection.
	All           bool
	Normalize     bool
	NormalizeX    bool
	Compress      bool
	CompressX     bool
	EQ            bool
	EQExtra       bool
	DeEss         bool
	TameTreble    int // 0 = off, otherwise 1..10
	Preset        string
	AutoSuggest   bool
	AutoApply     bool
	Classify      bool

	// Output handling.
	Image     bool
	ImagePath string
	MP3       bool
	NoVideo   bool
	Overwrite bool

	// Rotation (nil when not requested).
	Rotation *rotation.Request

	// Behavior.
	DryRun  bool
	Report  bool
	Verbose bool
	Debug   bool
}

// Raw carries the flag values as parsed by the CLI, before resolution.
type Raw struct {
	Input string
	Out   string

	All        bool
	Normalize  bool
	NormalizeX bool
	Compress   bool
	CompressX  bool
	EQ         bool
	EQExtra    bool
	DeEss      bool
	TameTreble int
	Preset     string

	AutoSuggest bool
	AutoApply   bool
	Classify    bool

	Image     string
	MP3       bool
	NoVideo   bool
	Overwrite bool

	RotateCWSet  bool
	RotateCW     float64
	RotateCCWSet bool
	RotateCCW    float64

	DryRun  bool
	Report  bool
	Verbose bool
	Debug   bool
}

// Resolve builds the immutable Options from raw flag values. It settles
// rotation exclusivity, the output kind, and the default output name; it
// does not touch the filesystem.
func Resolve(raw *Raw) (*Options, error) {
	if raw.TameTreble != 0 && (raw.TameTreble < 1 || raw.TameTreble > 10) {
		return nil, fmt.Errorf("--tame-treble must be between 1 and 10 (got %d)", raw.TameTreble)
	}

	rot, err := rotation.Resolve(raw.RotateCWSet, raw.RotateCW, raw.RotateCCWSet, raw.RotateCCW)
	if err != nil {
		return nil, err
	}

	opts := &Options{
		Input:       raw.Input,
		All:         raw.All,
		Normalize:   raw.Normalize,
		NormalizeX:  raw.NormalizeX,
		Compress:    raw.Compress,
		CompressX:   raw.CompressX,
		EQ:          raw.EQ,
		EQExtra:     raw.EQExtra,
		DeEss:       raw.DeEss,
		TameTreble:  raw.TameTreble,
		Preset:      raw.Preset,
		AutoSuggest: raw.AutoSuggest,
		AutoApply:   raw.AutoApply,
		Classify:    raw.Classify,
		Image:       raw.Image != "",
		ImagePath:   raw.Image,
		MP3:         raw.MP3,
		NoVideo:     raw.NoVideo || raw.MP3,
		Overwrite:   raw.Overwrite,
		Rotation:    rot,
		DryRun:      raw.DryRun,
		Report:      raw.Report,
		Verbose:     raw.Verbose || raw.Debug,
		Debug:       raw.Debug,
	}

	opts.Kind = resolveKind(opts)
	opts.Output = resolveOutput(raw.Out, opts)
	return opts, nil
}

// resolveKind decides the requested output shape. Whether the input
// actually carries a video stream is probed later; an audio-only file in a
// video container falls back to the plain audio path during finalize.
func resolveKind(opts *Options) OutputKind {
	switch {
	case opts.Image:
		return KindStillImage
	case opts.MP3:
		return KindMP3
	case opts.NoVideo:
		return KindWAV
	case videoExtensions[Extension(opts.Input)]:
		return KindVideo
	}
	return KindWAV
}

// resolveOutput returns the explicit
// --out value, or "<base>_cleaned.<ext>" where the extension follows the
// output kind (reattached video keeps the input's own container).
func resolveOutput(out string, opts *Options) string {
	if out != "" {
		return out
	}

	base := strings.TrimSuffix(filepath.Base(opts.Input), filepath.Ext(opts.Input))
	switch opts.Kind {
	case KindMP3:
		return base + "_cleaned.mp3"
	case KindStillImage:
		return base + "_cleaned.mp4"
	case KindVideo:
		return base + "_cleaned" + strings.ToLower(filepath.Ext(opts.Input))
	}
	return base + "_cleaned.wav"
}

// Extension returns the lowercased extension of path, including the dot.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// SupportedExtension reports whether path is on the input allow-list.
func SupportedExtension(path string) bool {
	return supportedExtensions[Extension(path)]
}

// AudioOnlyExtension reports whether path is a pure-audio format, the only
// kind --img accepts.
func AudioOnlyExtension(path string) bool {
	return audioOnlyExtensions[Extension(path)]
}

// Validate checks cross-flag consistency that Resolve cannot express
// structurally.
func (o *Options) Validate() error {
	if o.Input == "" {
		return errors.New("input file is required")
	}
	if o.Image && o.Rotation != nil {
		return errors.New("--img and rotation cannot be combined")
	}
	if o.Image && !AudioOnlyExtension(o.Input) {
		return errors.New("--img can only be used with audio files")
	}
	return nil
}
