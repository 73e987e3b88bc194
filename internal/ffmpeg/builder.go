package ffmpeg

import (
	"strconv"

	"github.com/backmassage/mediacompress/internal/planner"
)

// Binary is the ffmpeg executable looked up on PATH.
const Binary = "ffmpeg"

// BuildTranscode constructs the complete ffmpeg argument slice that
// re-encodes input into output with the video profile. The first element
// is the binary name.
//
// ffmpeg never prompts (-nostdin) and never overwrites (-n): an existing
// candidate is a failure, not something to clobber. Container metadata is
// carried over with -map_metadata 0 and written as MP4 user tags.
func BuildTranscode(input, output string, v planner.VideoProfile) []string {
	args := make([]string, 0, 24)

	// --- Preamble ---
	args = append(args, Binary, "-hide_banner", "-nostdin", "-loglevel", "error", "-nostats", "-n")

	// --- Input ---
	args = append(args, "-i", input)

	// --- Video codec ---
	args = append(args, "-vcodec", v.Codec)
	args = append(args, v.LogParams...)
	args = append(args, "-crf", strconv.Itoa(v.CRF))

	// --- Metadata ---
	args = append(args, "-movflags", "use_metadata_tags", "-map_metadata", "0")

	// --- Output ---
	args = append(args, output)
	return args
}

// BuildEncoderProbe constructs a one-second synthetic encode to the null
// muxer, used to confirm the configured encoder is usable.
func BuildEncoderProbe(codec string) []string {
	return []string{
		Binary, "-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc2=size=320x240:rate=10:duration=1",
		"-vcodec", codec, "-f", "null", "-",
	}
}
