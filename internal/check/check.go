// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg, ffprobe and the configured
// video encoder.
package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/ffmpeg"
	"github.com/backmassage/mediacompress/internal/probe"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrEncoderFailed   = errors.New("video encoder test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Checker runs the probes. The zero value is not usable; see [New].
type Checker struct {
	Runner   ffmpeg.Runner
	LookPath func(string) (string, error)
}

// New returns a Checker that runs real binaries from PATH.
func New() *Checker {
	return &Checker{Runner: ffmpeg.ExecRunner{}, LookPath: exec.LookPath}
}

// CheckDeps validates the tools video compression needs: ffmpeg on PATH,
// a short test encode with cfg.VideoCodec, then ffprobe on PATH. Images are
// encoded in-process and need nothing external.
//
// ErrFfprobeNotFound is only returned once ffmpeg and the encoder passed, so
// callers may treat it as "videos work, but candidates cannot be checked".
func (c *Checker) CheckDeps(ctx context.Context, cfg *config.Config) error {
	if _, err := c.LookPath(ffmpeg.Binary); err != nil {
		return ErrFfmpegNotFound
	}
	if err := c.testEncoder(ctx, cfg.VideoCodec); err != nil {
		return err
	}
	if _, err := c.LookPath(probe.Binary); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// RunCheck runs the interactive --check flow and reports whether every
// probe passed. It does not stop at the first failure.
func (c *Checker) RunCheck(ctx context.Context, cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	ok := true

	for _, bin := range []string{ffmpeg.Binary, probe.Binary} {
		path, err := c.LookPath(bin)
		if err != nil {
			log.Error("%s not found", bin)
			ok = false
			continue
		}
		log.Success("%s: %s", bin, path)
	}
	if !ok {
		return false
	}

	log.Info("Testing video encoder %s...", cfg.VideoCodec)
	if err := c.testEncoder(ctx, cfg.VideoCodec); err != nil {
		log.Error("%v", err)
		ok = false
	} else {
		log.Success("Video encoder %s works", cfg.VideoCodec)
	}
	log.Success("JPEG and PNG compression are built in")
	return ok
}

func (c *Checker) testEncoder(ctx context.Context, codec string) error {
	res := c.Runner.Run(ctx, ffmpeg.BuildEncoderProbe(codec))
	if res.Err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncoderFailed, codec, ffmpeg.Classify(res.Stderr, res.Err))
	}
	return nil
}
