package analysis

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/backmassage/audioscrub/internal/ffmpeg"
)

// Analyzer computes Descriptors by running the engine's stats filters
// against the null muxer and parsing the stderr report. Deterministic for
// a given file.
type Analyzer struct {
	exec *ffmpeg.Executor
}

// NewAnalyzer wraps an engine executor for analysis passes.
func NewAnalyzer(exec *ffmpeg.Executor) *Analyzer {
	return &Analyzer{exec: exec}
}

var (
	reRMSLine  = regexp.MustCompile(`RMS level dB:\s*(-?[\d.]+)`)
	reZCR      = regexp.MustCompile(`Zero crossings rate:\s*([\d.]+)`)
	reCentroid = regexp.MustCompile(`lavfi\.aspectralstats\.\d+\.centroid=([\d.]+)`)
)

// Analyze runs the two stats passes and assembles the descriptor set.
func (a *Analyzer) Analyze(ctx context.Context, path string) (Descriptors, error) {
	astats, err := a.exec.Capture(ctx, ffmpeg.AStatsArgs(path)...)
	if err != nil {
		return Descriptors{}, fmt.Errorf("analyze %s: %w", path, err)
	}

	spectral, err := a.exec.Capture(ctx, ffmpeg.SpectralArgs(path)...)
	if err != nil {
		return Descriptors{}, fmt.Errorf("analyze %s: %w", path, err)
	}

	d, err := ParseStats(astats, spectral)
	if err != nil {
		return Descriptors{}, fmt.Errorf("analyze %s: %w", path, err)
	}
	return d, nil
}

// ParseStats extracts the descriptors from the raw stderr of the astats
// and spectral passes. Exported so tests can feed canned engine output.
func ParseStats(astats, spectral string) (Descriptors, error) {
	var d Descriptors

	rms, ok := lastMatchFloat(reRMSLine, astats)
	if !ok {
		return d, fmt.Errorf("no RMS level in astats output")
	}
	// astats reports dB full scale; the thresholds work on the linear ratio.
	d.RMS = math.Pow(10, rms/20)

	zcr, ok := lastMatchFloat(reZCR, astats)
	if !ok {
		return d, fmt.Errorf("no zero crossings rate in astats output")
	}
	d.ZeroCrossingRate = zcr

	d.Centroid = meanCentroid(spectral)
	return d, nil
}

// lastMatchFloat returns the final occurrence so the overall summary wins
// over any per-channel lines printed before it.
func lastMatchFloat(re *regexp.Regexp, text string) (float64, bool) {
	matches := re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(matches[len(matches)-1][1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// meanCentroid averages the per-frame centroid metadata lines. Returns 0
// when the pass produced none (e.g. silence-only input).
func meanCentroid(spectral string) float64 {
	var sum float64
	var n int
	sc := bufio.NewScanner(strings.NewReader(spectral))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if m := reCentroid.FindStringSubmatch(sc.Text()); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				sum += v
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
