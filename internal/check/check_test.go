package check

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/ffmpeg"
	"github.com/backmassage/mediacompress/internal/logging"
)

type fakeRunner struct {
	stderr string
	err    error
	args   [][]string
}

func (f *fakeRunner) Run(_ context.Context, args []string) ffmpeg.Result {
	f.args = append(f.args, args)
	return ffmpeg.Result{Stderr: f.stderr, Err: f.err}
}

func lookPath(missing ...string) func(string) (string, error) {
	return func(bin string) (string, error) {
		for _, m := range missing {
			if bin == m {
				return "", exec.ErrNotFound
			}
		}
		return "/usr/bin/" + bin, nil
	}
}

func TestCheckDeps(t *testing.T) {
	cfg := config.DefaultConfig()
	tests := []struct {
		name    string
		missing []string
		runErr  error
		wantErr error
	}{
		{name: "all present"},
		{name: "no ffmpeg", missing: []string{"ffmpeg"}, wantErr: ErrFfmpegNotFound},
		{name: "no ffprobe", missing: []string{"ffprobe"}, wantErr: ErrFfprobeNotFound},
		{name: "encoder broken", runErr: errors.New("exit status 1"), wantErr: ErrEncoderFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{err: tt.runErr, stderr: "Unknown encoder 'libx265'"}
			c := &Checker{Runner: r, LookPath: lookPath(tt.missing...)}

			err := c.CheckDeps(context.Background(), &cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Len(t, r.args, 1)
				assert.Contains(t, r.args[0], "libx265")
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckDeps_EncoderTestedFirst(t *testing.T) {
	cfg := config.DefaultConfig()
	r := &fakeRunner{}
	c := &Checker{Runner: r, LookPath: lookPath("ffprobe")}

	err := c.CheckDeps(context.Background(), &cfg)
	assert.ErrorIs(t, err, ErrFfprobeNotFound)
	assert.Len(t, r.args, 1, "encoder must be tested even when ffprobe is missing")
}

func TestRunCheck(t *testing.T) {
	cfg := config.DefaultConfig()

	c := &Checker{Runner: &fakeRunner{}, LookPath: lookPath()}
	assert.True(t, c.RunCheck(context.Background(), &cfg, logging.Discard()))

	c = &Checker{Runner: &fakeRunner{}, LookPath: lookPath("ffprobe")}
	assert.False(t, c.RunCheck(context.Background(), &cfg, logging.Discard()))

	c = &Checker{Runner: &fakeRunner{err: errors.New("exit status 1")}, LookPath: lookPath()}
	assert.False(t, c.RunCheck(context.Background(), &cfg, logging.Discard()))
}
