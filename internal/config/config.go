// Package config holds runtime configuration: defaults, CLI flag binding, the
// optional YAML profile file, and validation. Defaults keep the naming of
// trees written by earlier runs.
package config

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// DefaultSuffix tags files whose compressed candidate was kept.
const DefaultSuffix = "_RG01COMPRESS"

// Codec parameter bounds enforced by [Config.Validate].
const (
	JPEGQualityMin = 1
	JPEGQualityMax = 100
	VideoCRFMin    = 0
	VideoCRFMax    = 51
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Sentinel errors for root validation. All of them are fatal before any
// work starts.
var (
	ErrMissingRoots   = errors.New("need both --input-directory and --output-directory")
	ErrDuplicateRoots = errors.New("input, output, and temp directories should all be unique")
	ErrNestedRoot     = errors.New("input, output, and temp directories must not be nested in each other")
	ErrInputMissing   = errors.New("input directory does not exist")
	ErrInputNotDir    = errors.New("input path is not a directory")
	ErrOutputExists   = errors.New("output directory should not exist (did you mean to include --delete-existing?)")
	ErrTempExists     = errors.New("temp directory should not exist (did you mean to include --delete-existing?)")
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by the optional profile file and CLI flags, then validated and
// handed (by pointer, read-only) to every worker.
type Config struct {
	// Roots.
	InputDir       string
	OutputDir      string
	TempDir        string // Default: "temp<Suffix>" next to OutputDir.
	DeleteExisting bool   // Remove pre-existing output/temp roots before scaffolding.

	// Naming.
	Suffix string // Default: "_RG01COMPRESS".

	// Image profile.
	MinImageDimension int    // Default: 2160 (smaller side of a 4K frame).
	JPEGQuality       int    // Default: 95.
	JPEGSubsampling   string // Default: "4:4:4".

	// Video profile.
	VideoCodec string // Default: "libx265".
	VideoCRF   int    // Default: 24.

	// Sanity ceiling, in percent, for 1 - output/input on any single file.
	MaxExpectedCompression float64 // Default: 99.

	// Parallelism.
	Workers int // Default: runtime.NumCPU().

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	CheckOnly  bool      // Run --check diagnostics and exit.
	ConfigFile string    // Optional YAML profile.
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Suffix:                 DefaultSuffix,
		MinImageDimension:      2160,
		JPEGQuality:            95,
		JPEGSubsampling:        "4:4:4",
		VideoCodec:             "libx265",
		VideoCRF:               24,
		MaxExpectedCompression: 99,
		Workers:                runtime.NumCPU(),
		ColorMode:              ColorAuto,
	}
}

// subsamplingRatios are the accepted --jpeg-subsampling values.
var subsamplingRatios = map[string]image.YCbCrSubsampleRatio{
	"4:4:4": image.YCbCrSubsampleRatio444,
	"4:2:2": image.YCbCrSubsampleRatio422,
	"4:2:0": image.YCbCrSubsampleRatio420,
}

// ParseSubsampling maps a J:a:b chroma subsampling string to its ratio.
func ParseSubsampling(s string) (image.YCbCrSubsampleRatio, error) {
	r, ok := subsamplingRatios[s]
	if !ok {
		return 0, fmt.Errorf("invalid JPEG subsampling %q (use '4:4:4', '4:2:2' or '4:2:0')", s)
	}
	return r, nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks value ranges and enum fields. When not in CheckOnly mode
// it also requires the input and output roots.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.Suffix == "" {
		return errors.New("suffix must not be empty")
	}
	if strings.ContainsRune(c.Suffix, filepath.Separator) || strings.ContainsRune(c.Suffix, '/') {
		return fmt.Errorf("suffix %q must not contain a path separator", c.Suffix)
	}
	if filepath.Ext(c.Suffix) != "" {
		return fmt.Errorf("suffix %q must not contain a '.'", c.Suffix)
	}
	if c.MinImageDimension <= 0 {
		return fmt.Errorf("minimum image dimension must be positive (got %d)", c.MinImageDimension)
	}
	if c.JPEGQuality < JPEGQualityMin || c.JPEGQuality > JPEGQualityMax {
		return fmt.Errorf("JPEG quality must be within %d-%d (got %d)", JPEGQualityMin, JPEGQualityMax, c.JPEGQuality)
	}
	if _, err := ParseSubsampling(c.JPEGSubsampling); err != nil {
		return err
	}
	if strings.TrimSpace(c.VideoCodec) == "" {
		return errors.New("video codec must not be empty")
	}
	if c.VideoCRF < VideoCRFMin || c.VideoCRF > VideoCRFMax {
		return fmt.Errorf("video CRF must be within %d-%d (got %d)", VideoCRFMin, VideoCRFMax, c.VideoCRF)
	}
	if c.MaxExpectedCompression <= 0 || c.MaxExpectedCompression > 100 {
		return fmt.Errorf("maximum expected compression must be within (0, 100] percent (got %g)", c.MaxExpectedCompression)
	}
	if c.Workers < 1 {
		return fmt.Errorf("process count must be at least 1 (got %d)", c.Workers)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return ErrMissingRoots
	}
	return nil
}

// ResolvePaths makes all three roots absolute and clean, derives the temp
// root when none was given, and rejects duplicate or nested roots.
func (c *Config) ResolvePaths() error {
	in, err := filepath.Abs(c.InputDir)
	if err != nil {
		return fmt.Errorf("resolve input directory: %w", err)
	}
	out, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	tmp := c.TempDir
	if tmp == "" {
		tmp = filepath.Join(filepath.Dir(out), "temp"+c.Suffix)
	}
	tmp, err = filepath.Abs(tmp)
	if err != nil {
		return fmt.Errorf("resolve temp directory: %w", err)
	}

	c.InputDir, c.OutputDir, c.TempDir = in, out, tmp

	if in == out || in == tmp || out == tmp {
		return ErrDuplicateRoots
	}
	return c.ValidatePaths(in, out, tmp)
}

// ValidatePaths ensures no root lies inside another. An output root inside
// the input would be enumerated as input; an input inside the output would
// be deleted by --delete-existing. All arguments must be absolute.
func (c *Config) ValidatePaths(inputAbs, outputAbs, tempAbs string) error {
	roots := []string{inputAbs, outputAbs, tempAbs}
	for i, a := range roots {
		for j, b := range roots {
			if i != j && isWithin(a, b) {
				return fmt.Errorf("%w: %s is inside %s", ErrNestedRoot, a, b)
			}
		}
	}
	return nil
}

func isWithin(path, root string) bool {
	sep := string(filepath.Separator)
	return strings.HasPrefix(path+sep, strings.TrimSuffix(root, sep)+sep)
}

// CheckRoots verifies the filesystem state the run starts from: the input
// root exists and is a directory, and unless DeleteExisting is set neither
// the output nor the temp root exists yet.
func (c *Config) CheckRoots(fsys afero.Fs) error {
	fi, err := fsys.Stat(c.InputDir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInputMissing, c.InputDir)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrInputNotDir, c.InputDir)
	}
	if c.DeleteExisting {
		return nil
	}
	if ok, _ := afero.Exists(fsys, c.OutputDir); ok {
		return fmt.Errorf("%w: %s", ErrOutputExists, c.OutputDir)
	}
	if ok, _ := afero.Exists(fsys, c.TempDir); ok {
		return fmt.Errorf("%w: %s", ErrTempExists, c.TempDir)
	}
	return nil
}

// Summary returns the validated option set as ordered name/value pairs for
// the verbose startup dump.
func (c *Config) Summary() [][2]string {
	return [][2]string{
		{"input_directory", c.InputDir},
		{"output_directory", c.OutputDir},
		{"temp_directory", c.TempDir},
		{"delete_existing", fmt.Sprint(c.DeleteExisting)},
		{"suffix", c.Suffix},
		{"minimum_image_dimension", fmt.Sprint(c.MinImageDimension)},
		{"jpeg_quality", fmt.Sprint(c.JPEGQuality)},
		{"jpeg_subsampling", c.JPEGSubsampling},
		{"video_codec", c.VideoCodec},
		{"video_crf", fmt.Sprint(c.VideoCRF)},
		{"maximum_expected_compression", fmt.Sprint(c.MaxExpectedCompression)},
		{"processes", fmt.Sprint(c.Workers)},
		{"verbose", fmt.Sprint(c.Verbose)},
	}
}
