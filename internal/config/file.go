package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProfileFile is the YAML shape accepted by --config. Every field is
// optional; a nil pointer leaves the corresponding Config field alone.
//
//	input_directory: /photos
//	output_directory: /photos-compressed
//	suffix: _small
//	jpeg_quality: 90
//	video:
//	  codec: libx264
//	  crf: 23
type ProfileFile struct {
	InputDir               *string  `yaml:"input_directory"`
	OutputDir              *string  `yaml:"output_directory"`
	TempDir                *string  `yaml:"temp_directory"`
	DeleteExisting         *bool    `yaml:"delete_existing"`
	Suffix                 *string  `yaml:"suffix"`
	MinImageDimension      *int     `yaml:"minimum_image_dimension"`
	JPEGQuality            *int     `yaml:"jpeg_quality"`
	JPEGSubsampling        *string  `yaml:"jpeg_subsampling"`
	MaxExpectedCompression *float64 `yaml:"maximum_expected_compression"`
	Processes              *int     `yaml:"processes"`
	Verbose                *bool    `yaml:"verbose"`
	LogFile                *string  `yaml:"log"`
	Video                  struct {
		Codec *string `yaml:"codec"`
		CRF   *int    `yaml:"crf"`
	} `yaml:"video"`
}

// LoadFile reads and strictly decodes a YAML profile. Unknown keys are an
// error so a typo does not silently fall back to a default.
func LoadFile(path string) (*ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes YAML profile bytes. Exported for tests.
func ParseFile(data []byte) (*ProfileFile, error) {
	var pf ProfileFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		// An empty document decodes to io.EOF; treat it as "no overrides".
		if len(bytes.TrimSpace(data)) == 0 {
			return &pf, nil
		}
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &pf, nil
}

// Apply copies every set profile field into cfg unless the matching CLI
// flag was given explicitly; changed reports that (usually pflag's
// FlagSet.Changed). CLI flags always win over the profile.
func (pf *ProfileFile) Apply(cfg *Config, changed func(name string) bool) {
	setString(&cfg.InputDir, pf.InputDir, changed(FlagInput))
	setString(&cfg.OutputDir, pf.OutputDir, changed(FlagOutput))
	setString(&cfg.TempDir, pf.TempDir, changed(FlagTemp))
	setBool(&cfg.DeleteExisting, pf.DeleteExisting, changed(FlagDeleteExisting))
	setString(&cfg.Suffix, pf.Suffix, changed(FlagSuffix))
	setInt(&cfg.MinImageDimension, pf.MinImageDimension, changed(FlagMinDimension))
	setInt(&cfg.JPEGQuality, pf.JPEGQuality, changed(FlagJPEGQuality))
	setString(&cfg.JPEGSubsampling, pf.JPEGSubsampling, changed(FlagJPEGSubsampling))
	setInt(&cfg.Workers, pf.Processes, changed(FlagProcesses))
	setBool(&cfg.Verbose, pf.Verbose, changed(FlagVerbose))
	setString(&cfg.LogFile, pf.LogFile, changed(FlagLog))
	setString(&cfg.VideoCodec, pf.Video.Codec, changed(FlagVideoCodec))
	setInt(&cfg.VideoCRF, pf.Video.CRF, changed(FlagVideoCRF))
	if pf.MaxExpectedCompression != nil && !changed(FlagMaxCompression) {
		cfg.MaxExpectedCompression = *pf.MaxExpectedCompression
	}
}

func setString(dst *string, v *string, flagSet bool) {
	if v != nil && !flagSet {
		*dst = *v
	}
}

func setInt(dst *int, v *int, flagSet bool) {
	if v != nil && !flagSet {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool, flagSet bool) {
	if v != nil && !flagSet {
		*dst = *v
	}
}
