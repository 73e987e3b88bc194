package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/mediacompress/internal/planner"
)

func TestBuildTranscode(t *testing.T) {
	v := planner.VideoProfile{
		Codec:     "libx265",
		CRF:       24,
		LogParams: []string{"-x265-params", "log-level=error"},
	}
	got := BuildTranscode("/in/a.mov", "/tmp/a.mp4", v)
	want := []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-loglevel", "error", "-nostats", "-n",
		"-i", "/in/a.mov",
		"-vcodec", "libx265", "-x265-params", "log-level=error", "-crf", "24",
		"-movflags", "use_metadata_tags", "-map_metadata", "0",
		"/tmp/a.mp4",
	}
	assert.Equal(t, want, got)
}

func TestBuildTranscode_NoLogParams(t *testing.T) {
	got := BuildTranscode("in.3gp", "out.mp4", planner.VideoProfile{Codec: "libsvtav1", CRF: 35})
	joined := strings.Join(got, " ")
	assert.Contains(t, joined, "-vcodec libsvtav1 -crf 35 -movflags")
	assert.NotContains(t, joined, "-params")
	assert.Equal(t, "out.mp4", got[len(got)-1])
}

func TestBuildEncoderProbe(t *testing.T) {
	got := BuildEncoderProbe("libx264")
	assert.Equal(t, Binary, got[0])
	assert.Contains(t, strings.Join(got, " "), "-vcodec libx264 -f null -")
}

func TestClassify(t *testing.T) {
	exitErr := errors.New("exit status 1")
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"unknown encoder", "Unknown encoder 'libx265'\n", "encoder not available"},
		{"overwrite refused", "File '/tmp/a.mp4' already exists. Exiting.\n", "candidate already exists"},
		{"disk full", "av_interleaved_write_frame(): No space left on device\n", "no space left on device"},
		{"corrupt input", "/in/a.mov: Invalid data found when processing input\n", "input is not decodable"},
		{"moov missing", "[mov,mp4] moov atom not found\n", "input is not decodable"},
		{"unmatched", "something odd\n", "exit status 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(tt.stderr, exitErr)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Reason)
			assert.ErrorIs(t, f, exitErr)
			assert.Contains(t, f.Error(), tt.want)
		})
	}
	assert.Nil(t, Classify("noise", nil))
}

func TestTail(t *testing.T) {
	s := "one\n\ntwo\nthree\n  four  \n"
	assert.Equal(t, "two | three | four", tail(s, 3))
	assert.Equal(t, "one", tail("one", 3))
	assert.Equal(t, "", tail("\n\n", 3))
}

func TestExecRunner_CapturesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	res := ExecRunner{}.Run(context.Background(), []string{"sh", "-c", "echo boom >&2; exit 3"})
	require.Error(t, res.Err)
	assert.Equal(t, "boom\n", res.Stderr)

	f := Classify(res.Stderr, res.Err)
	assert.Equal(t, "exit status 3", f.Reason)
	assert.Equal(t, "boom", f.Tail)
}

func TestExecRunner_CanceledContext(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := ExecRunner{}.Run(ctx, []string{"sleep", "5"})
	assert.Error(t, res.Err)
}
