// Package probe inspects the input container with a single ffprobe JSON
// call. The pipeline only needs to know whether a real video stream is
// present (cover art does not count) and a few audio basics.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Result is the parsed outcome of one probe call.
type Result struct {
	FormatName string
	Duration   float64
	HasAudio   bool
	HasVideo   bool // at least one non-attached-pic video stream
	SampleRate int
	Channels   int
}

// Prober runs ffprobe.
type Prober struct {
	Bin string
}

// NewProber returns a Prober for the given binary (default "ffprobe").
func NewProber(bin string) *Prober {
	if bin == "" {
		bin = "ffprobe"
	}
	return &Prober{Bin: bin}
}

// Probe inspects path.
func (p *Prober) Probe(ctx context.Context, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, p.Bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON into a Result. Exported for testing
// without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	r := &Result{
		FormatName: raw.Format.FormatName,
		Duration:   parseFloat(raw.Format.Duration),
	}
	for _, s := range raw.Streams {
		switch s.CodecType {
		case "video":
			// Embedded cover art shows up as a video stream with the
			// attached_pic disposition; it is not reattachable video.
			if s.Disposition["attached_pic"] != 1 {
				r.HasVideo = true
			}
		case "audio":
			if !r.HasAudio {
				r.HasAudio = true
				r.SampleRate = parseInt(s.SampleRate)
				r.Channels = s.Channels
			}
		}
	}
	return r, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

type ffprobeStream struct {
	CodecType   string         `json:"codec_type"`
	SampleRate  string         `json:"sample_rate"`
	Channels    int            `json:"channels"`
	Disposition map[string]int `json:"disposition"`
}

// ffprobe returns numbers as strings.

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
