// Package pipeline provides the core rendering pipeline.
//
// This package implements the complete load → scene → render pipeline used
// by the CLI and the HTTP server. Centralizing it here keeps behavior
// consistent across entry points and gives both the same caching layer.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read sounding profiles from JSON or NetCDF inputs
//  2. Scene: Compute the diagram geometry (draw command list)
//  3. Render: Serialize the scene to output formats (SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Inputs:  []string{"sounding.json"},
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	profiles, err := runner.Load(ctx, opts)
//
//	// Scene with loaded profiles
//	scene, err := runner.ComputeScene(ctx, profiles, opts)
//
//	// Render an existing scene
//	artifacts, err := runner.Render(ctx, scene, profiles, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aerolab/skewt/pkg/cache"
	"github.com/aerolab/skewt/pkg/errors"
	"github.com/aerolab/skewt/pkg/skewt"
	"github.com/aerolab/skewt/pkg/sounding"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// DefaultScale is the default PNG supersampling factor.
const DefaultScale = 2.0

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Inputs   []string `json:"inputs,omitempty"`   // file paths, .json or .nc
	Document []byte   `json:"document,omitempty"` // inline sounding JSON
	Refresh  bool     `json:"refresh,omitempty"`  // bypass cached results

	// Scene options
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	SkewAngle float64 `json:"skew_angle,omitempty"`
	TMin      float64 `json:"t_min,omitempty"`
	TMax      float64 `json:"t_max,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	BarbSize  float64 `json:"barb_size,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG supersampling factor

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Profiles are the loaded sounding profiles, primary first.
	Profiles []*sounding.Profile

	// ProfileHash is the content hash of the loaded profiles.
	ProfileHash string

	// Scene is the computed diagram geometry.
	Scene *skewt.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ProfileCount int
	SampleCount  int
	LoadTime     time.Duration
	SceneTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetSceneDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if len(o.Inputs) == 0 && len(o.Document) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "inputs or document is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetSceneDefaults sets default values for scene computation. Defaults are
// applied here rather than left to the geometry layer so cache keys are
// stable regardless of which fields the caller filled in.
func (o *Options) SetSceneDefaults() {
	if o.Width == 0 {
		o.Width = skewt.MarginLeft + skewt.DefaultWidth + skewt.MarginRight
	}
	if o.Height == 0 {
		o.Height = skewt.MarginTop + skewt.DefaultHeight + skewt.MarginBottom
	}
	if o.SkewAngle == 0 {
		o.SkewAngle = skewt.DefaultSkewAngle
	}
	if o.TMin == 0 && o.TMax == 0 {
		o.TMin = skewt.DefaultTMin
		o.TMax = skewt.DefaultTMax
	}
	if o.Unit == "" {
		o.Unit = string(sounding.DefaultSpeedUnit)
	}
	if o.BarbSize == 0 {
		o.BarbSize = skewt.DefaultBarbSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForScene validates and sets defaults for scene computation.
func (o *Options) ValidateForScene() error {
	o.SetSceneDefaults()
	if !sounding.SpeedUnit(o.Unit).Valid() {
		return errors.New(errors.ErrCodeInvalidUnit, "invalid unit: %q", o.Unit)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForScene(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// SceneOptions converts pipeline options to geometry options.
func (o *Options) SceneOptions() skewt.Options {
	return skewt.Options{
		Width:     o.Width,
		Height:    o.Height,
		Unit:      sounding.SpeedUnit(o.Unit),
		SkewAngle: o.SkewAngle,
		BarbSize:  o.BarbSize,
		TMin:      o.TMin,
		TMax:      o.TMax,
	}
}

// SceneKeyOpts returns cache key options for scene computation.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		SkewAngle: o.SkewAngle,
		TMin:      o.TMin,
		TMax:      o.TMax,
		Unit:      o.Unit,
		BarbSize:  o.BarbSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
