package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aerolab/skewt/pkg/cache"
	"github.com/aerolab/skewt/pkg/errors"
	"github.com/aerolab/skewt/pkg/observability"
	"github.com/aerolab/skewt/pkg/skewt"
	"github.com/aerolab/skewt/pkg/skewt/sink"
	"github.com/aerolab/skewt/pkg/sounding"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → scene → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	profiles, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Profiles = profiles
	result.ProfileHash = ProfileHash(profiles)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ProfileCount = len(profiles)
	for _, p := range profiles {
		result.Stats.SampleCount += len(p.Samples)
	}

	r.Logger.Info("loaded soundings",
		"profiles", result.Stats.ProfileCount,
		"samples", result.Stats.SampleCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Scene
	sceneStart := time.Now()
	scene, sceneHit, err := r.ComputeSceneWithCacheInfo(ctx, profiles, opts)
	if err != nil {
		return nil, err
	}
	result.Scene = scene
	result.Stats.SceneTime = time.Since(sceneStart)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("computed scene",
		"commands", len(scene.Commands),
		"duration", result.Stats.SceneTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, profiles, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// sceneDoc is the cached representation of a scene. Everything except the
// data-derived top pressure can be rebuilt from the options, so only the
// command list and the top pressure are stored.
type sceneDoc struct {
	TopPressure float64         `json:"top_pressure"`
	Commands    []skewt.Command `json:"commands"`
}

// ComputeSceneWithCacheInfo computes the scene with caching and returns
// cache hit info.
func (r *Runner) ComputeSceneWithCacheInfo(ctx context.Context, profiles []*sounding.Profile, opts Options) (*skewt.Scene, bool, error) {
	if err := opts.ValidateForScene(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Render().OnSceneStart(ctx, len(profiles))
	start := time.Now()

	profileHash := ProfileHash(profiles)
	cacheKey := r.Keyer.SceneKey(profileHash, opts.SceneKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "scene")
			scene, err := r.rebuildScene(data, opts)
			if err == nil {
				observability.Render().OnSceneComplete(ctx, len(scene.Commands), time.Since(start), nil)
				return scene, true, nil
			}
			// Corrupt entry, fall through to recompute.
		} else {
			observability.Cache().OnCacheMiss(ctx, "scene")
		}
	}

	scene, err := skewt.ComputeScene(profiles, opts.SceneOptions())
	observability.Render().OnSceneComplete(ctx, sceneLen(scene), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		doc := sceneDoc{
			TopPressure: scene.Frame.TopPressure,
			Commands:    scene.Commands,
		}
		if data, err := json.Marshal(doc); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
			observability.Cache().OnCacheSet(ctx, "scene", len(data))
		}
	}

	return scene, false, nil
}

// ComputeScene is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeScene(ctx context.Context, profiles []*sounding.Profile, opts Options) (*skewt.Scene, error) {
	scene, _, err := r.ComputeSceneWithCacheInfo(ctx, profiles, opts)
	return scene, err
}

// rebuildScene reconstructs a scene from its cached representation. The
// frame and glyph set are deterministic functions of the options and the
// stored top pressure.
func (r *Runner) rebuildScene(data []byte, opts Options) (*skewt.Scene, error) {
	var doc sceneDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	frame, err := skewt.NewFrame(skewt.FrameConfig{
		Width:       opts.Width - skewt.MarginLeft - skewt.MarginRight,
		Height:      opts.Height - skewt.MarginTop - skewt.MarginBottom,
		TMin:        opts.TMin,
		TMax:        opts.TMax,
		TopPressure: doc.TopPressure,
		SkewAngle:   opts.SkewAngle,
	})
	if err != nil {
		return nil, err
	}

	return &skewt.Scene{
		Width:    opts.Width,
		Height:   opts.Height,
		Frame:    frame,
		Glyphs:   skewt.GlyphSetFor(opts.BarbSize),
		Commands: doc.Commands,
	}, nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info. The profiles are only used for cache key derivation.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene *skewt.Scene, profiles []*sounding.Profile, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Render().OnSinkStart(ctx, opts.Formats)
	start := time.Now()

	sceneHash := cache.Hash(sceneHashInput(scene, profiles, opts))

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Render().OnSinkComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			rendered[format] = sink.RenderSVG(scene)
		case FormatPNG:
			data, err := sink.RenderPNG(scene, sink.WithScale(opts.Scale))
			if err != nil {
				observability.Render().OnSinkComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, false, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
			}
			rendered[format] = data
		}
	}

	// Cache each format
	if !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	observability.Render().OnSinkComplete(ctx, opts.Formats, time.Since(start), nil)
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, scene *skewt.Scene, profiles []*sounding.Profile, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, scene, profiles, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// sceneHashInput derives the artifact cache key material: the profile
// content plus every scene option that shapes the geometry.
func sceneHashInput(scene *skewt.Scene, profiles []*sounding.Profile, opts Options) []byte {
	payload := struct {
		ProfileHash string             `json:"profile_hash"`
		SceneOpts   cache.SceneKeyOpts `json:"scene_opts"`
	}{
		ProfileHash: ProfileHash(profiles),
		SceneOpts:   opts.SceneKeyOpts(),
	}
	data, _ := json.Marshal(payload)
	return data
}

func sceneLen(s *skewt.Scene) int {
	if s == nil {
		return 0
	}
	return len(s.Commands)
}
