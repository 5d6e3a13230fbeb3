// Package planner resolves the run's filter chain from explicit flags, a
// named preset, or classifier output. Plan is a pure function of its
// inputs; the resulting chain is fixed before the pipeline runs.
package planner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/backmassage/audioscrub/internal/analysis"
	"github.com/backmassage/audioscrub/internal/config"
	"go.uber.org/zap"
)

// Chain is an ordered list of filter fragments. Order is semantic: the
// engine applies them left to right.
type Chain []string

// Join renders the chain as a single engine filter-graph expression.
func (c Chain) Join() string { return strings.Join(c, ",") }

func (c Chain) contains(fragment string) bool {
	for _, f := range c {
		if f == fragment {
			return true
		}
	}
	return false
}

var (
	// ErrEmptyFilterChain means no flag, preset, or auto mode produced any
	// fragment. An empty chain is an error, never a silent no-op.
	ErrEmptyFilterChain = errors.New("no filters specified/applied; use --all or other flags")

	// ErrInvalidTrebleLevel guards the [1,10] treble-taming range inside
	// the planner itself, independent of CLI validation.
	ErrInvalidTrebleLevel = errors.New("treble taming level must be between 1 and 10")
)

// Fragment constants shared by flags, presets, and auto mode.
const (
	fragDynaudnorm     = "dynaudnorm"
	fragLoudnorm       = "loudnorm=I=-14:TP=-1.5:LRA=11"
	fragLoudnormSpeech = "loudnorm=I=-16:TP=-2:LRA=10"
	fragCompressor     = "acompressor=threshold=-18dB:ratio=3:attack=20:release=250"
	fragCompressorHard = "acompressor=threshold=-24dB:ratio=6:attack=5:release=100"
	fragHighpass60     = "highpass=f=60"
	fragHighpass80     = "highpass=f=80"
	fragHighpass100    = "highpass=f=100"
	fragLowpass8k      = "lowpass=f=8000"
	fragLowpass12k     = "lowpass=f=12000"
	fragLowpass14k     = "lowpass=f=14000"
	fragLowpass16k     = "lowpass=f=16000"
	fragMidBoost       = "equalizer=f=2000:t=q:w=1:g=3"
	fragDeesser        = "deesser"
	fragHarshCut6k     = "equalizer=f=6000:t=q:w=1.5:g=-6"
	fragHarshCut10k    = "equalizer=f=10000:t=q:w=1.5:g=-8"
)

// allSequence is the fixed four-stage chain seeded by --all.
var allSequence = Chain{fragHighpass80, fragLowpass12k, fragCompressor, fragLoudnorm}

// presets are the named replacement chains. A preset discards whatever was
// accumulated before it.
var presets = map[string]Chain{
	"vocals":  {fragHighpass80, fragLowpass12k, fragDeesser, fragLoudnorm},
	"inst":    {fragHighpass60, fragLowpass16k, fragLoudnorm},
	"music":   {fragHighpass80, fragLowpass14k, fragCompressor, fragLoudnorm},
	"podcast": {fragHighpass100, fragLowpass8k, fragLoudnormSpeech},
}

// Plan resolves the final chain. desc is only consulted in auto-apply
// mode and may be nil otherwise.
//
// Rule order matters and matches the precedence contract: --all seeds,
// individual flags append (duplicates allowed), treble taming appends, a
// recognized preset replaces everything so far, and auto-apply replaces
// everything with the descriptor-driven chain. The empty-chain check runs
// once at the end, over the fully resolved result.
func Plan(opts *config.Options, desc *analysis.Descriptors, log *zap.Logger) (Chain, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var chain Chain
	if opts.All {
		chain = append(chain, allSequence...)
	}
	if opts.Normalize {
		chain = append(chain, fragDynaudnorm)
	}
	if opts.NormalizeX {
		chain = append(chain, fragLoudnorm)
	}
	if opts.Compress {
		chain = append(chain, fragCompressor)
	}
	if opts.CompressX {
		chain = append(chain, fragCompressorHard)
	}
	if opts.EQ {
		chain = append(chain, fragHighpass80, fragLowpass12k)
	}
	if opts.EQExtra {
		chain = append(chain, fragMidBoost)
	}
	if opts.DeEss {
		chain = append(chain, fragDeesser)
	}

	if opts.TameTreble != 0 {
		frags, err := TrebleTaming(opts.TameTreble)
		if err != nil {
			return nil, err
		}
		chain = append(chain, frags...)
	}

	if opts.Preset != "" {
		if seq, ok := presets[opts.Preset]; ok {
			chain = append(Chain(nil), seq...)
		} else {
			// Unknown preset leaves the chain untouched. Long-standing
			// loose edge, kept on purpose.
			log.Warn("unknown preset, chain unchanged", zap.String("preset", opts.Preset))
		}
	}

	if opts.AutoApply {
		if desc == nil {
			return nil, errors.New("auto-apply requires audio descriptors")
		}
		chain = AutoChain(*desc)
		log.Info("auto-applied filters", zap.Strings("chain", chain))
	}

	if len(chain) == 0 {
		return nil, ErrEmptyFilterChain
	}
	return chain, nil
}

// TrebleTaming maps an intensity level in [1,10] to parametric EQ cuts at
// 6 and 10 kHz, gains scaling linearly with level. A third, smaller cut
// at 14 kHz is added from level 6 up.
func TrebleTaming(level int) (Chain, error) {
	if level < 1 || level > 10 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidTrebleLevel, level)
	}

	chain := Chain{
		fmt.Sprintf("equalizer=f=6000:t=q:w=1.5:g=%d", -level),
		fmt.Sprintf("equalizer=f=10000:t=q:w=1.5:g=%s", formatGain(-1.5*float64(level))),
	}
	if level >= 6 {
		chain = append(chain, fmt.Sprintf("equalizer=f=14000:t=q:w=1.2:g=%s", formatGain(-0.75*float64(level))))
	}
	return chain, nil
}

// formatGain renders a dB gain with one decimal, e.g. "-4.5", "-6.0".
func formatGain(g float64) string {
	return strconv.FormatFloat(g, 'f', 1, 64)
}

// AutoChain builds the descriptor-driven chain: a base sequence keyed by
// the content label, then harshness and sibilance extras above secondary
// centroid thresholds. The EQ-pair and de-esser guards compare fragment
// strings, not meaning: an equivalent filter with different parameters is
// appended anyway.
func AutoChain(d analysis.Descriptors) Chain {
	var chain Chain
	switch analysis.Classify(d) {
	case analysis.LabelVocals:
		chain = Chain{fragHighpass80, fragLowpass12k, fragDeesser, fragLoudnorm}
	case analysis.LabelInstrumental:
		chain = Chain{fragHighpass60, fragLowpass16k, fragLoudnorm}
	case analysis.LabelSpeech:
		chain = Chain{fragHighpass100, fragLowpass8k, fragLoudnormSpeech}
	default:
		// music/mixed and sibilant/harsh share the music base; sibilance
		// is handled by the centroid extras below.
		chain = Chain{fragHighpass80, fragLowpass14k, fragCompressor, fragLoudnorm}
	}

	if d.Centroid > 6000 {
		chain = append(chain, fragHarshCut6k, fragHarshCut10k)
	}
	if d.Centroid > 3500 && !chain.contains(fragHighpass80) {
		chain = append(chain, fragHighpass80, fragLowpass12k)
	}
	if d.Centroid > 5000 && !chain.contains(fragDeesser) {
		chain = append(chain, fragDeesser)
	}
	return chain
}
