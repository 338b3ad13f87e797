// Package config holds the render parameters, their defaults, YAML presets
// and the remembered paths of the previous run.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"srtbadge/badge"
	"srtbadge/placement"
	"srtbadge/subtitle"
	"srtbadge/timing"
)

// ErrInvalid marks configuration errors: everything that is rejected
// before any canvas work starts.
var ErrInvalid = errors.New("invalid configuration")

const (
	DefaultOutput = "out.png"
	DefaultWidth  = 1920
	DefaultHeight = 1080
	DefaultScale  = 1.0
)

// Options is the full parameter set of one render.
type Options struct {
	BadgePath  string `yaml:"badge"`
	CuePath    string `yaml:"cues"`
	OutputPath string `yaml:"output"`

	// Baseline is the distance from the canvas bottom to the badge bottom.
	Baseline    int             `yaml:"baseline"`
	Scale       float64         `yaml:"scale"`
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	Strategy    timing.Strategy `yaml:"strategy"`
	RaiseHeight int             `yaml:"raise"`

	// TotalDuration overrides the end of the last cue when positive.
	TotalDuration time.Duration `yaml:"total_duration"`
	// Video, when set, supplies TotalDuration through ffprobe.
	Video    string `yaml:"video"`
	Encoding string `yaml:"encoding"`
}

func Defaults() Options {
	return Options{
		OutputPath:  DefaultOutput,
		Scale:       DefaultScale,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Strategy:    timing.End,
		RaiseHeight: placement.DefaultRaiseHeight,
		Encoding:    subtitle.EncodingAuto,
	}
}

// LoadPreset reads a YAML preset on top of Defaults. Relative paths inside
// the preset are resolved against the preset's directory.
func LoadPreset(path string) (Options, error) {
	opts := Defaults()
	f, err := os.Open(path)
	if err != nil {
		return opts, fmt.Errorf("%w: preset: %w", ErrInvalid, err)
	}
	defer f.Close()

	// An output the preset leaves unset stays relative to the working directory.
	opts.OutputPath = ""
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return opts, fmt.Errorf("%w: preset %s: %w", ErrInvalid, filepath.Base(path), err)
	}

	if opts.OutputPath == "" {
		opts.OutputPath = DefaultOutput
	} else if !filepath.IsAbs(opts.OutputPath) {
		opts.OutputPath = filepath.Join(filepath.Dir(path), opts.OutputPath)
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&opts.BadgePath, &opts.CuePath, &opts.Video} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return opts, nil
}

// Normalize fills in derived values: an output path without extension
// gets ".png".
func (o *Options) Normalize() {
	o.OutputPath = strings.TrimSpace(o.OutputPath)
	if o.OutputPath == "" {
		o.OutputPath = DefaultOutput
	}
	if filepath.Ext(o.OutputPath) == "" {
		o.OutputPath += ".png"
	}
	if o.Encoding == "" {
		o.Encoding = subtitle.EncodingAuto
	}
}

// Validate checks every parameter and the input paths, returning all
// problems at once wrapped in ErrInvalid.
func (o Options) Validate() error {
	var errs []error

	errs = append(errs, checkInput("badge", o.BadgePath, badge.IsPNG, "only PNG images are supported"))
	errs = append(errs, checkInput("cue file", o.CuePath, subtitle.Supported, "only .srt and .vtt files are supported"))

	if o.OutputPath == "" {
		errs = append(errs, errors.New("output path is required"))
	} else if !badge.IsPNG(o.OutputPath) {
		errs = append(errs, fmt.Errorf("output %s: only PNG output is supported", o.OutputPath))
	}
	if o.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale factor must be positive, got %v", o.Scale))
	}
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Errorf("background size must be positive, got %dx%d", o.Width, o.Height))
	}
	if o.RaiseHeight < 0 {
		errs = append(errs, fmt.Errorf("raise height must not be negative, got %d", o.RaiseHeight))
	}
	if o.TotalDuration < 0 {
		errs = append(errs, fmt.Errorf("total duration must not be negative, got %v", o.TotalDuration))
	}
	if _, err := timing.ParseStrategy(o.Strategy.String()); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func checkInput(kind, path string, accept func(string) bool, formatMsg string) error {
	if path == "" {
		return fmt.Errorf("%s path is required", kind)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("invalid %s path: %s does not exist", kind, path)
	}
	if info.IsDir() {
		return fmt.Errorf("invalid %s path: %s is a directory", kind, path)
	}
	if !accept(path) {
		return fmt.Errorf("invalid %s format: %s", kind, formatMsg)
	}
	return nil
}
