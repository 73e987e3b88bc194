// Package display formats sizes and reports for the console: the startup
// banner, per-directory size summaries, and the end-of-run report.
package display

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable size in decimal units (kB, MB, GB),
// e.g. "2.0 MB" for 2,000,000 bytes. Negative values keep their sign.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.Bytes(uint64(-bytes))
	}
	return humanize.Bytes(uint64(bytes))
}

// FormatBytesWithSign prefixes with + or - for delta display (e.g. "- 1.2 GB").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
		bytes = -bytes
	}
	return sign + FormatBytes(bytes)
}

// FormatPercent renders a fraction in [0, 1] as a percentage with one
// decimal ("37.5%").
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// FormatCount renders n with thousands separators ("12,408").
func FormatCount(n int64) string {
	return humanize.Comma(n)
}
