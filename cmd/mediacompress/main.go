// Command mediacompress mirrors a photo and video tree into a new output
// tree, keeping a compressed copy of each file only when it is smaller.
//
// It parses flags, validates configuration and paths, and either runs
// system diagnostics (--check) or the compression pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/backmassage/mediacompress/internal/check"
	"github.com/backmassage/mediacompress/internal/config"
	"github.com/backmassage/mediacompress/internal/display"
	"github.com/backmassage/mediacompress/internal/logging"
	"github.com/backmassage/mediacompress/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()
	exit := 0

	cmd := &cobra.Command{
		Use:           "mediacompress -i INPUT -o OUTPUT [flags]",
		Short:         "Compress a directory of photos and videos into a new directory",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	st := config.BindFlags(cmd.Flags(), &cfg)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := config.Finalize(cmd.Flags(), &cfg, st); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		exit = execute(cmd.Context(), &cfg)
		return nil
	}

	// Canceled on SIGINT/SIGTERM: workers stop taking files and in-flight
	// ffmpeg children are killed.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mediacompress: %v\n", err)
		return 1
	}
	return exit
}

// execute runs once flags are parsed and valid. From here on all output
// goes through the logger.
func execute(ctx context.Context, cfg *config.Config) int {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mediacompress: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(os.Stdout, version)

	checker := check.New()
	if cfg.CheckOnly {
		if !checker.RunCheck(ctx, cfg, log) {
			return 1
		}
		return 0
	}

	if err := cfg.ResolvePaths(); err != nil {
		log.Error("%v", err)
		return 1
	}
	if cfg.Verbose {
		for _, kv := range cfg.Summary() {
			log.Debug(true, "%s: %s", kv[0], kv[1])
		}
	}

	fsys := afero.NewOsFs()
	if err := cfg.CheckRoots(fsys); err != nil {
		log.Error("%v", err)
		return 1
	}

	stats, err := pipeline.NewRunner(fsys, cfg, log).Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		r := stats.Report()
		log.Warn("Interrupted after %d of %d files; temp directory left at %s",
			r.Compressed+r.Passthrough+r.Unrecognized+r.Failed, r.Files, cfg.TempDir)
		return 1
	case err != nil:
		log.Error("%v", err)
		return 1
	}
	log.Success("Done. %s saved", display.FormatBytes(stats.SpaceSaved()))
	return 0
}
