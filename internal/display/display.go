// Package display renders user-facing output: the banner, the dry-run
// plan, and the before/after descriptor report. Everything here writes to
// the writer it is given (stdout in production), never to the logger.
package display

import (
	"fmt"
	"io"

	"github.com/backmassage/audioscrub/internal/analysis"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintBanner prints the startup banner.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, `                 _ _                     _
  __ _ _  _ __| (_)___ ___ __ _ _ _  _| |__
 / _`+"`"+` | || / _`+"`"+` | / _ (_-</ _| '_| || | '_ \
 \__,_|\_,_\__,_|_\___/__/\__|_|  \_,_|_.__/
`)
	fmt.Fprintln(w)
}

// Plan is the resolved run description printed by --dry-run.
type Plan struct {
	Input    string
	Output   string
	Filters  []string
	Rotation string // e.g. "90 degrees cw (transpose=1)", empty when none
}

// PrintPlan prints the dry-run plan: input, output, the exact filter
// fragments in order, and the rotation if one was requested.
func PrintPlan(w io.Writer, p Plan) {
	fmt.Fprintf(w, "Input:  %s\n", p.Input)
	fmt.Fprintf(w, "Output: %s\n", p.Output)
	fmt.Fprintln(w, "Filters to apply:")
	for _, f := range p.Filters {
		fmt.Fprintf(w, "  - %s\n", f)
	}
	if p.Rotation != "" {
		fmt.Fprintf(w, "  - Video rotation: %s\n", p.Rotation)
	}
}

// PrintReport renders the before/after descriptor table.
func PrintReport(w io.Writer, before, after analysis.Descriptors) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Descriptor", "Before", "After"})
	tw.AppendRows([]table.Row{
		{"RMS loudness", fmt.Sprintf("%.5f", before.RMS), fmt.Sprintf("%.5f", after.RMS)},
		{"Zero-crossing rate", fmt.Sprintf("%.5f", before.ZeroCrossingRate), fmt.Sprintf("%.5f", after.ZeroCrossingRate)},
		{"Spectral centroid", fmt.Sprintf("%.2f Hz", before.Centroid), fmt.Sprintf("%.2f Hz", after.Centroid)},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	tw.Render()
}
