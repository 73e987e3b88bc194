package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/mediacompress/internal/codec"
	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/logging"
	"github.com/backmassage/mediacompress/internal/naming"
	"github.com/backmassage/mediacompress/internal/planner"
	"github.com/backmassage/mediacompress/internal/term"
)

// Dispatcher runs per-file work on a bounded pool of cfg.Workers
// goroutines. Files are independent; the only shared state is the
// filesystem, the logger and the stats counters.
type Dispatcher struct {
	Fs       afero.Fs
	Cfg      *config.Config
	Image    codec.Codec
	Video    codec.Codec
	Resolver *Resolver
	Log      *logging.Logger
	Stats    *RunStats
	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
}

// Dispatch processes every rel and returns once all started work has
// finished. Per-file codec failures degrade to a copy of the original; the
// first fatal error (or cancellation of ctx) stops new work and is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, rels []string) error {
	roots := naming.Roots{Input: d.Cfg.InputDir, Temp: d.Cfg.TempDir, Output: d.Cfg.OutputDir}
	bar := newProgressBar(len(rels), d.Progress)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.Cfg.Workers)
	for _, rel := range rels {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := d.process(gctx, newMediaFile(d.Fs, d.Cfg, roots, rel))
			_ = bar.Add(1)
			return err
		})
	}
	err := g.Wait()
	_ = bar.Finish()
	if err == nil {
		err = ctx.Err()
	}
	return err
}

func (d *Dispatcher) process(ctx context.Context, f *MediaFile) error {
	d.Stats.Total.Add(1)

	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		d.Stats.Skipped.Add(1)
		d.Log.Debug(d.Cfg.Verbose, "Input file disappeared, skipping: %s", f.Rel)
		return nil
	}

	var (
		cand    naming.ResolvedPath
		outcome = Compressed
	)
	switch c := d.codecFor(f.Kind); {
	case c == nil:
		outcome = Unrecognized
		d.Log.Warn("Unrecognized file extension, copying as-is: %s", f.Rel)
	default:
		start := time.Now()
		cand, err = c.Compress(ctx, f.Input, f.Temp, f.Plan)
		switch {
		case err == nil:
			d.Log.Debug(d.Cfg.Verbose, "Compressed %s in %s", f.Rel, time.Since(start).Round(time.Millisecond))
		case errors.Is(err, codec.ErrUnrecognized):
			outcome = Unrecognized
			d.Log.Warn("Not a supported %s, copying as-is: %s (%v)", f.Kind, f.Rel, err)
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			outcome = Failed
			d.Log.Warn("Compression failed, keeping original: %s: %v", f.Rel, err)
		}
	}

	res, err := d.Resolver.Resolve(f.Input, cand, f.Output)
	if err != nil {
		d.Log.Error("%s: %v", f.Rel, err)
		return err
	}
	if res.Outcome == Passthrough && outcome != Compressed {
		res.Outcome = outcome
	}
	d.Stats.Record(res.Outcome, res.InputBytes, res.OutputBytes)
	d.Log.Debug(d.Cfg.Verbose, "%s: %s (%d -> %d bytes)", f.Rel, res.Outcome, res.InputBytes, res.OutputBytes)
	return nil
}

func (d *Dispatcher) codecFor(k planner.Kind) codec.Codec {
	switch k {
	case planner.KindImage:
		return d.Image
	case planner.KindVideo:
		return d.Video
	default:
		return nil
	}
}

func newProgressBar(n int, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	width := 30
	if f, ok := w.(*os.File); ok {
		width = min(50, max(10, term.Width(f, 80)/3))
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Compressing input files"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(width),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionEnableColorCodes(term.Enabled()),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
