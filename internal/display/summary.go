package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/backmassage/mediacompress/internal/term"
)

// SizeEntry is one named byte total in a size summary.
type SizeEntry struct {
	Name  string
	Bytes int64
}

// SizeGroup is a directory total with its per-extension breakdown. Callers
// pass groups and children already sorted largest first.
type SizeGroup struct {
	SizeEntry
	Children []SizeEntry
}

// WriteSizeSummary prints a root's size breakdown by directory and, within
// each directory, by lowercase extension:
//
//	input_directory summary (4.2 GB in total):
//	input_directory -> 2023/summer (3.1 GB in total):
//	|  .mp4 only: 2.9 GB
//	|  .jpg only: 200 MB
func WriteSizeSummary(w io.Writer, label string, total int64, groups []SizeGroup) {
	fmt.Fprintf(w, "%s%s summary%s (%s in total):\n", term.Bold, label, term.NC, FormatBytes(total))
	for _, g := range groups {
		fmt.Fprintf(w, "%s -> %s (%s in total):\n", label, g.Name, FormatBytes(g.Bytes))
		for _, c := range g.Children {
			ext := c.Name
			if ext == "" {
				ext = "(no extension)"
			}
			fmt.Fprintf(w, "|  %s only: %s\n", ext, FormatBytes(c.Bytes))
		}
	}
	fmt.Fprintln(w)
}

// RunReport carries the end-of-run counters printed by [WriteRunReport].
type RunReport struct {
	Files        int64
	Compressed   int64
	Passthrough  int64
	Unrecognized int64
	Failed       int64
	Skipped      int64
	InputBytes   int64
	OutputBytes  int64
}

// WriteRunReport prints per-outcome counts and the space saved.
func WriteRunReport(w io.Writer, r RunReport) {
	var b strings.Builder
	fmt.Fprintf(&b, "%sRun summary%s\n", term.Bold, term.NC)
	fmt.Fprintf(&b, "  files:        %s\n", FormatCount(r.Files))
	fmt.Fprintf(&b, "  compressed:   %s\n", FormatCount(r.Compressed))
	fmt.Fprintf(&b, "  kept as-is:   %s\n", FormatCount(r.Passthrough))
	fmt.Fprintf(&b, "  unrecognized: %s\n", FormatCount(r.Unrecognized))
	if r.Failed > 0 {
		fmt.Fprintf(&b, "  %sfailed:       %s%s\n", term.Yellow, FormatCount(r.Failed), term.NC)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(&b, "  skipped:      %s\n", FormatCount(r.Skipped))
	}
	saved := r.InputBytes - r.OutputBytes
	fmt.Fprintf(&b, "  size:         %s -> %s (%s", FormatBytes(r.InputBytes), FormatBytes(r.OutputBytes), FormatBytesWithSign(-saved))
	if r.InputBytes > 0 {
		fmt.Fprintf(&b, ", %s saved", FormatPercent(float64(saved)/float64(r.InputBytes)))
	}
	b.WriteString(")\n")
	_, _ = io.WriteString(w, b.String())
}
