package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/term"
)

func TestWriteSizeSummary(t *testing.T) {
	term.Configure(config.ColorNever)

	var buf bytes.Buffer
	WriteSizeSummary(&buf, "input_directory", 3_200_000, []SizeGroup{
		{
			SizeEntry: SizeEntry{Name: "trip", Bytes: 3_000_000},
			Children:  []SizeEntry{{Name: ".mp4", Bytes: 2_500_000}, {Name: ".jpg", Bytes: 500_000}},
		},
		{
			SizeEntry: SizeEntry{Name: ".", Bytes: 200_000},
			Children:  []SizeEntry{{Name: "", Bytes: 200_000}},
		},
	})

	want := "input_directory summary (3.2 MB in total):\n" +
		"input_directory -> trip (3.0 MB in total):\n" +
		"|  .mp4 only: 2.5 MB\n" +
		"|  .jpg only: 500 kB\n" +
		"input_directory -> . (200 kB in total):\n" +
		"|  (no extension) only: 200 kB\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteRunReport(t *testing.T) {
	term.Configure(config.ColorNever)

	var buf bytes.Buffer
	WriteRunReport(&buf, RunReport{
		Files: 4, Compressed: 1, Passthrough: 2, Unrecognized: 1, Failed: 1,
		InputBytes: 4_000_000, OutputBytes: 3_000_000,
	})
	out := buf.String()
	require.Contains(t, out, "Run summary")
	assert.Contains(t, out, "compressed:   1")
	assert.Contains(t, out, "failed:       1")
	assert.NotContains(t, out, "skipped")
	assert.Contains(t, out, "4.0 MB -> 3.0 MB (- 1.0 MB, 25.0% saved)")
}

func TestPrintBanner_IncludesVersion(t *testing.T) {
	term.Configure(config.ColorNever)
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "version 1.2.3")
}
