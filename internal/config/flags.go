package config

// This file binds CLI flags onto a Config. Flags are grouped into roots,
// image profile, video profile, behavior, and display. Display toggles
// (--color / --no-color) are captured separately and applied after Parse so
// the Config default holds unless the user passes one of them.

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names shared between binding, profile-file overlay, and tests.
const (
	FlagInput           = "input-directory"
	FlagOutput          = "output-directory"
	FlagTemp            = "temp-directory"
	FlagDeleteExisting  = "delete-existing"
	FlagSuffix          = "suffix"
	FlagMinDimension    = "minimum-image-dimension"
	FlagProcesses       = "processes"
	FlagJPEGQuality     = "jpeg-quality"
	FlagJPEGSubsampling = "jpeg-subsampling"
	FlagVideoCodec      = "video-codec"
	FlagVideoCRF        = "video-crf"
	FlagMaxCompression  = "maximum-expected-compression"
	FlagVerbose         = "verbose"
	FlagConfig          = "config"
	FlagLog             = "log"
	FlagCheck           = "check"
	FlagColor           = "color"
	FlagNoColor         = "no-color"
)

// FlagState holds flags that are applied to Config after Parse rather than
// bound directly to a field.
type FlagState struct {
	forceColor bool
	noColor    bool
}

// BindFlags registers every CLI flag on fs, using the current cfg values as
// defaults. Call [Finalize] after the flag set has been parsed.
func BindFlags(fs *pflag.FlagSet, cfg *Config) *FlagState {
	st := &FlagState{}
	defineRootFlags(fs, cfg)
	defineImageFlags(fs, cfg)
	defineVideoFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, st)
	return st
}

// defineRootFlags registers -i, -o, -t, -d.
func defineRootFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.InputDir, FlagInput, "i", cfg.InputDir, "Input media directory")
	fs.StringVarP(&cfg.OutputDir, FlagOutput, "o", cfg.OutputDir, "Output media directory to create")
	fs.StringVarP(&cfg.TempDir, FlagTemp, "t", cfg.TempDir, "Temporary directory to create for intermediate files (default: temp<suffix> next to the output directory)")
	fs.BoolVarP(&cfg.DeleteExisting, FlagDeleteExisting, "d", cfg.DeleteExisting, "Delete existing output and temp directories before starting")
}

// defineImageFlags registers -m, --jpeg-quality and --jpeg-subsampling.
func defineImageFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.MinImageDimension, FlagMinDimension, "m", cfg.MinImageDimension, "Resolution to reduce the smaller image dimension to, if needed")
	fs.IntVar(&cfg.JPEGQuality, FlagJPEGQuality, cfg.JPEGQuality, "Quality setting for compressing JPEG images")
	fs.StringVar(&cfg.JPEGSubsampling, FlagJPEGSubsampling, cfg.JPEGSubsampling, "Chroma subsampling for compressing JPEG images (4:4:4, 4:2:2 or 4:2:0)")
}

// defineVideoFlags registers --video-codec and --video-crf.
func defineVideoFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.VideoCodec, FlagVideoCodec, cfg.VideoCodec, "Codec for compressing videos with ffmpeg")
	fs.IntVar(&cfg.VideoCRF, FlagVideoCRF, cfg.VideoCRF, "Constant rate factor for compressing videos with ffmpeg")
}

// defineBehaviorFlags registers -s, -p, --maximum-expected-compression, --config.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Suffix, FlagSuffix, "s", cfg.Suffix, "Suffix to append to file names when compressed")
	fs.IntVarP(&cfg.Workers, FlagProcesses, "p", cfg.Workers, "Maximum number of files compressed in parallel")
	fs.Float64Var(&cfg.MaxExpectedCompression, FlagMaxCompression, cfg.MaxExpectedCompression,
		"Maximum compression percentage for sanity checks; exceeding it on any file aborts the run")
	fs.StringVar(&cfg.ConfigFile, FlagConfig, cfg.ConfigFile, "YAML profile supplying defaults for any flag not given")
}

// defineDisplayFlags registers -v, -l, -c, --color, --no-color.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, st *FlagState) {
	fs.BoolVarP(&cfg.Verbose, FlagVerbose, "v", cfg.Verbose, "Increase the verbosity of printed information")
	fs.StringVarP(&cfg.LogFile, FlagLog, "l", cfg.LogFile, "Append logs to file")
	fs.BoolVarP(&cfg.CheckOnly, FlagCheck, "c", cfg.CheckOnly, "Run system diagnostics (ffmpeg, ffprobe, encoder) and exit")
	fs.BoolVar(&st.forceColor, FlagColor, false, "Force colored logs")
	fs.BoolVar(&st.noColor, FlagNoColor, false, "Disable colored logs")
}

// Finalize applies post-parse state: the YAML profile (for flags the user
// did not set), the color toggles, and directory normalization.
func Finalize(fs *pflag.FlagSet, cfg *Config, st *FlagState) error {
	if cfg.ConfigFile != "" {
		pf, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		pf.Apply(cfg, fs.Changed)
	}

	if st.noColor {
		cfg.ColorMode = ColorNever
	} else if st.forceColor {
		cfg.ColorMode = ColorAlways
	}

	if !cfg.CheckOnly {
		if !fs.Changed(FlagInput) && cfg.InputDir == "" {
			return fmt.Errorf("required flag --%s not set", FlagInput)
		}
		if !fs.Changed(FlagOutput) && cfg.OutputDir == "" {
			return fmt.Errorf("required flag --%s not set", FlagOutput)
		}
	}
	cfg.InputDir = NormalizeDirArg(cfg.InputDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	cfg.TempDir = NormalizeDirArg(cfg.TempDir)
	return nil
}
