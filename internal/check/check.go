// Package check runs --check diagnostics: are the external engine
// binaries present and runnable.
package check

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Run probes each binary and prints one line per tool. Returns false when
// any tool is missing or refuses to run.
func Run(w io.Writer, ffmpegBin, ffprobeBin string) bool {
	ok := true
	for _, tool := range []struct {
		name string
		bin  string
	}{
		{"ffmpeg", ffmpegBin},
		{"ffprobe", ffprobeBin},
	} {
		version, err := toolVersion(tool.bin)
		if err != nil {
			fmt.Fprintf(w, "  %-8s MISSING (%v)\n", tool.name, err)
			ok = false
			continue
		}
		fmt.Fprintf(w, "  %-8s %s\n", tool.name, version)
	}
	return ok
}

// Deps verifies the engine binaries without printing; used before a real
// run so failures surface up front instead of mid-pipeline.
func Deps(ffmpegBin, ffprobeBin string) error {
	for _, bin := range []string{ffmpegBin, ffprobeBin} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("required tool not found: %s", bin)
		}
	}
	return nil
}

// toolVersion runs "<bin> -version" and returns the first output line.
func toolVersion(bin string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}
