package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/backmassage/mediacompress/internal/check"
	"github.com/backmassage/mediacompress/internal/codec"
	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/display"
	"github.com/backmassage/mediacompress/internal/ffmpeg"
	"github.com/backmassage/mediacompress/internal/logging"
	"github.com/backmassage/mediacompress/internal/naming"
	"github.com/backmassage/mediacompress/internal/planner"
	"github.com/backmassage/mediacompress/internal/probe"
)

// Runner holds everything a run needs. Cfg must already be validated and
// have its roots resolved.
type Runner struct {
	Fs    afero.Fs
	Cfg   *config.Config
	Log   *logging.Logger
	Image codec.Codec
	Video codec.Codec
	// Deps validates the external video tools when the input holds videos.
	// Nil skips the check.
	Deps *check.Checker
	// Out receives the size summaries and the run report.
	Out io.Writer
	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
}

// NewRunner wires the production codecs: the in-process image adapter and
// ffmpeg/ffprobe for videos. Child process stderr is mirrored to the
// terminal in verbose mode.
func NewRunner(fsys afero.Fs, cfg *config.Config, log *logging.Logger) *Runner {
	exec := ffmpeg.ExecRunner{}
	if cfg.Verbose {
		exec.Tee = os.Stderr
	}
	return &Runner{
		Fs:       fsys,
		Cfg:      cfg,
		Log:      log,
		Image:    &codec.Image{Fs: fsys},
		Video:    &codec.Video{Fs: fsys, Runner: exec, Prober: probe.FFProbe{}},
		Deps:     check.New(),
		Out:      os.Stdout,
		Progress: os.Stderr,
	}
}

// Run executes one compression run end to end:
//
//  1. check the roots and mirror the input directory tree
//  2. enumerate inputs, print the input size summary
//  3. reject canonical name collisions before any file is written
//  4. check the video tools, if any input is a video
//  5. compress and resolve every file on the worker pool
//  6. verify the output tree, then remove the temp tree
//  7. print the output size summary and the run report
//
// Any error returned is fatal; the run leaves whatever it wrote in place.
func (r *Runner) Run(ctx context.Context) (*RunStats, error) {
	cfg := r.Cfg
	stats := &RunStats{}
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	if err := cfg.CheckRoots(r.Fs); err != nil {
		return stats, err
	}
	if err := Scaffold(r.Fs, cfg); err != nil {
		return stats, fmt.Errorf("scaffold: %w", err)
	}

	inputs, err := Discover(r.Fs, cfg.InputDir)
	if err != nil {
		return stats, fmt.Errorf("enumerate input directory: %w", err)
	}
	r.Log.Info("Found %s input files in %s", display.FormatCount(int64(len(inputs))), cfg.InputDir)
	if err := r.writeSummary(out, "input_directory", cfg.InputDir, inputs); err != nil {
		return stats, err
	}

	report := naming.DetectCollisions(inputs, cfg.Suffix)
	for _, c := range report.Collisions {
		r.Log.Error("Found multiple files (%d) with the same name! %q", c.Count(), c.Paths)
	}
	for _, rel := range report.Suffixed {
		r.Log.Error("Input file name already carries the suffix %q: %s", cfg.Suffix, rel)
	}
	if err := report.Err(); err != nil {
		return stats, err
	}

	video := r.Video
	if hasVideo(inputs) {
		video = r.checkVideoTools(ctx, video)
	}

	d := &Dispatcher{
		Fs:       r.Fs,
		Cfg:      cfg,
		Image:    r.Image,
		Video:    video,
		Resolver: &Resolver{Fs: r.Fs, Suffix: cfg.Suffix},
		Log:      r.Log,
		Stats:    stats,
		Progress: r.Progress,
	}
	if err := d.Dispatch(ctx, inputs); err != nil {
		return stats, err
	}

	r.Log.Info("Verifying output directory...")
	v, err := Verify(r.Fs, cfg, inputs)
	if err != nil {
		return stats, err
	}
	r.Log.Success("Output directory appears consistent with the input (%d files, highest compression %s)",
		v.Pairs, display.FormatPercent(v.MaxRate))

	if err := Reclaim(r.Fs, cfg.TempDir); err != nil {
		return stats, err
	}

	outputs, err := Discover(r.Fs, cfg.OutputDir)
	if err != nil {
		return stats, fmt.Errorf("enumerate output directory: %w", err)
	}
	if err := r.writeSummary(out, "output_directory", cfg.OutputDir, outputs); err != nil {
		return stats, err
	}
	display.WriteRunReport(out, stats.Report())
	return stats, nil
}

// checkVideoTools runs the dependency check and returns the video codec to
// dispatch with. A missing ffprobe only disables candidate checks. Any other
// failure leaves videos to be copied through uncompressed.
func (r *Runner) checkVideoTools(ctx context.Context, video codec.Codec) codec.Codec {
	if r.Deps == nil {
		return video
	}
	err := r.Deps.CheckDeps(ctx, r.Cfg)
	switch {
	case err == nil:
		return video
	case errors.Is(err, check.ErrFfprobeNotFound):
		r.Log.Warn("%v; encoded videos will not be checked", err)
		if v, ok := video.(*codec.Video); ok {
			unchecked := *v
			unchecked.Prober = nil
			return &unchecked
		}
		return video
	default:
		r.Log.Warn("%v; videos will be copied uncompressed", err)
		return unavailable{err}
	}
}

// unavailable fails every compression with the reason the codec cannot run.
type unavailable struct{ err error }

func (u unavailable) Compress(context.Context, string, naming.IntendedPath, *planner.FilePlan) (naming.ResolvedPath, error) {
	return naming.ResolvedPath{}, u.err
}

func hasVideo(rels []string) bool {
	for _, rel := range rels {
		if planner.Classify(naming.LowerExt(rel)) == planner.KindVideo {
			return true
		}
	}
	return false
}

func (r *Runner) writeSummary(w io.Writer, label, root string, rels []string) error {
	files, err := Measure(r.Fs, root, rels)
	if err != nil {
		return fmt.Errorf("measure %s: %w", label, err)
	}
	s := Summarize(files)
	display.WriteSizeSummary(w, label, s.Total(), s.Groups())
	return nil
}
