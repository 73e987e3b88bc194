package codec

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/backmassage/mediacompress/internal/ffmpeg"
	"github.com/backmassage/mediacompress/internal/naming"
	"github.com/backmassage/mediacompress/internal/planner"
	"github.com/backmassage/mediacompress/internal/probe"
)

// Video re-encodes videos with ffmpeg into an MP4 candidate. When Prober is
// set, a finished candidate is probed and rejected if it lost its video
// stream or is noticeably shorter than the source.
type Video struct {
	Fs     afero.Fs
	Runner ffmpeg.Runner
	Prober probe.Prober // optional
}

// Compress implements [Codec].
func (c *Video) Compress(ctx context.Context, input string, temp naming.IntendedPath, plan *planner.FilePlan) (naming.ResolvedPath, error) {
	cand := temp.WithExt(plan.Video.Container)
	if ok, _ := afero.Exists(c.Fs, cand.String()); ok {
		// Not ours to remove.
		return naming.ResolvedPath{}, fmt.Errorf("candidate %s already exists", cand)
	}
	args := ffmpeg.BuildTranscode(input, cand.String(), plan.Video)

	res := c.Runner.Run(ctx, args)
	if res.Err != nil {
		c.discard(cand)
		if ctx.Err() != nil {
			return cand, ctx.Err()
		}
		return cand, ffmpeg.Classify(res.Stderr, res.Err)
	}

	if c.Prober != nil {
		if err := c.validate(ctx, input, cand); err != nil {
			c.discard(cand)
			return cand, err
		}
	}
	return cand, nil
}

func (c *Video) validate(ctx context.Context, input string, cand naming.ResolvedPath) error {
	got, err := c.Prober.Probe(ctx, cand.String())
	if err != nil {
		return fmt.Errorf("probe candidate: %w", err)
	}
	src, err := c.Prober.Probe(ctx, input)
	if err != nil {
		// Without source facts only the stream check applies.
		src = &probe.Result{}
	}
	return probe.CheckCandidate(src, got)
}

func (c *Video) discard(cand naming.ResolvedPath) {
	if ok, _ := afero.Exists(c.Fs, cand.String()); ok {
		_ = c.Fs.Remove(cand.String())
	}
}
