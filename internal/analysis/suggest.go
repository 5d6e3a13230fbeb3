package analysis

import (
	"fmt"
	"io"
)

// Suggest prints the advisory analysis: descriptor stats, the guessed
// content label, the recommended preset, and individual flag hints. It
// never produces a filter chain; the run stops after this output.
func Suggest(w io.Writer, d Descriptors) {
	fmt.Fprintln(w, "# Smart-AF Auto Analysis:")
	fmt.Fprint(w, FormatStats(d))

	label := Classify(d)
	fmt.Fprintf(w, "Guessed content: %s\n", label)
	fmt.Fprintf(w, "Suggested preset: --preset=%s\n", Recommend(label))

	if d.RMS < 0.03 {
		fmt.Fprintln(w, "--normalize")
	}
	if d.RMS > 0.3 {
		fmt.Fprintln(w, "--compress")
	}
	if d.Centroid > 3500 {
		fmt.Fprintln(w, "--eq")
	}
	if d.Centroid > 5000 {
		fmt.Fprintln(w, "--deess  # (sibilance detected)")
	}
}

// PrintClassification prints the --classify output.
func PrintClassification(w io.Writer, d Descriptors) {
	label := Classify(d)
	fmt.Fprintf(w, "Guessed content type: %s\n", label)
	fmt.Fprintf(w, "Suggested preset: --preset=%s\n", Recommend(label))
}
