package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// EngineError is a non-zero engine exit. It carries the tail of the
// captured stderr so the caller can show the engine's own diagnostics.
type EngineError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *EngineError) Error() string {
	msg := fmt.Sprintf("ffmpeg failed: %v", e.Err)
	if tail := stderrTail(e.Stderr, 10); tail != "" {
		msg += "\n" + tail
	}
	return msg
}

func (e *EngineError) Unwrap() error { return e.Err }

func stderrTail(stderr string, n int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// Executor runs the engine binary. When Verbose is set, stderr is teed to
// the terminal in real time; otherwise it is captured silently and only
// shown on failure.
type Executor struct {
	Bin     string
	Verbose bool
	Log     *zap.Logger
}

// NewExecutor returns an Executor with nil-safe logging.
func NewExecutor(bin string, verbose bool, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	if bin == "" {
		bin = "ffmpeg"
	}
	return &Executor{Bin: bin, Verbose: verbose, Log: log}
}

// Run executes one engine invocation. Every failure is terminal; there are
// no retries at this layer or above.
func (e *Executor) Run(ctx context.Context, args ...string) error {
	level := "error"
	if e.Verbose {
		level = "info"
	}
	full := e.commandArgs(level, args)
	e.Log.Debug("engine invocation", zap.Strings("args", full))

	cmd := exec.CommandContext(ctx, e.Bin, full...)

	var stderrBuf bytes.Buffer
	if e.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		return &EngineError{Args: full, Stderr: stderrBuf.String(), Err: err}
	}
	return nil
}

// Capture executes an analysis invocation and returns the full stderr
// text, which is where ffmpeg's stats filters write their reports.
func (e *Executor) Capture(ctx context.Context, args ...string) (string, error) {
	// Stats filters report via the log subsystem at info level, so the
	// analysis pass cannot run quieter than that.
	full := e.commandArgs("info", args)
	e.Log.Debug("engine analysis pass", zap.Strings("args", full))

	cmd := exec.CommandContext(ctx, e.Bin, full...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		return stderrBuf.String(), &EngineError{Args: full, Stderr: stderrBuf.String(), Err: err}
	}
	return stderrBuf.String(), nil
}

func (e *Executor) commandArgs(level string, args []string) []string {
	full := make([]string, 0, len(args)+5)
	full = append(full, "-hide_banner", "-nostdin", "-loglevel", level)
	full = append(full, args...)
	return full
}
