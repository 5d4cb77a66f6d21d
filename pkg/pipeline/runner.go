package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pieforge/pieforge/pkg/cache"
	"github.com/pieforge/pieforge/pkg/dataset"
	"github.com/pieforge/pieforge/pkg/errors"
	"github.com/pieforge/pieforge/pkg/geom"
	"github.com/pieforge/pieforge/pkg/scene"
	"github.com/pieforge/pieforge/pkg/style"
	svgrender "github.com/pieforge/pieforge/pkg/render/svg"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it does not
// store pipeline results. Multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer. A nil keyer
// falls back to the default keyer; a nil cache disables caching.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete pipeline with caching: process → geometry →
// labels → scene → style, then any requested render formats.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		return nil, errors.Wrap(code, err, "invalid options")
	}
	r.applyLogger(&opts)

	resultKey := r.resultKey(opts)

	result, hit := r.cachedResult(ctx, opts, resultKey)
	if !hit {
		result = Compute(opts)
		if data, err := json.Marshal(payloadOf(result)); err == nil {
			result.ResultHash = cache.Hash(data)
			if !opts.Refresh {
				_ = r.Cache.Set(ctx, resultKey, data, cache.TTLResult)
			}
		}
	}
	result.CacheInfo.ResultHit = hit

	opts.Logger.Info("computed chart",
		"slices", result.Stats.SliceCount,
		"nodes", result.Stats.NodeCount,
		"cached", hit)

	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, renderHit, err := r.renderWithCache(ctx, result, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		opts.Logger.Info("rendered outputs",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// Compute runs the five pure stages without touching the cache. Given
// equal inputs it always produces an equal result.
func Compute(opts Options) *Result {
	result := &Result{}

	processStart := time.Now()
	data := dataset.Process(opts.Dataset, opts.Mapping)
	result.Data = data
	result.Stats.ProcessTime = time.Since(processStart)
	result.Stats.SliceCount = len(data.Slices)

	geomStart := time.Now()
	slices := geom.ComputeSlices(data, opts.Config, opts.Overrides.Slices)
	labels, leaders := geom.PlaceLabels(slices, opts.Config, opts.Overrides.Labels)
	result.Geometry = geom.State{
		Config:      opts.Config,
		Slices:      slices,
		Labels:      labels,
		Leaders:     leaders,
		Annotations: opts.Overrides.Annotations,
		Overrides:   opts.Overrides,
	}
	result.Stats.GeometryTime = time.Since(geomStart)

	sceneStart := time.Now()
	result.Scene = scene.Build(result.Geometry, opts.Theme.TransformOverrides)
	result.Stats.SceneTime = time.Since(sceneStart)
	result.Stats.NodeCount = result.Scene.Len()

	styleStart := time.Now()
	result.Styles = style.ResolveAll(result.Scene, opts.Theme)
	result.Stats.StyleTime = time.Since(styleStart)

	return result
}

// resultKey derives the cache key from all computation inputs.
func (r *Runner) resultKey(opts Options) string {
	return r.Keyer.ResultKey(cache.HashJSON(opts.Dataset), cache.ResultKeyOpts{
		MappingHash:   cache.HashJSON(opts.Mapping),
		ConfigHash:    cache.HashJSON(opts.Config),
		OverridesHash: cache.HashJSON(opts.Overrides),
		ThemeHash:     cache.HashJSON(opts.Theme),
	})
}

// resultPayload is the cacheable, hashable portion of a Result: the pure
// stage outputs, without run-local stats.
type resultPayload struct {
	Data     dataset.ProcessedPieData  `json:"data"`
	Geometry geom.State                `json:"geometry"`
	Scene    *scene.Graph              `json:"scene"`
	Styles   map[string]style.Resolved `json:"styles"`
}

func payloadOf(result *Result) resultPayload {
	return resultPayload{
		Data:     result.Data,
		Geometry: result.Geometry,
		Scene:    result.Scene,
		Styles:   result.Styles,
	}
}

// cachedResult loads a previously computed result. Stale or corrupt
// entries fall through to recomputation.
func (r *Runner) cachedResult(ctx context.Context, opts Options, key string) (*Result, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var payload resultPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Scene == nil {
		return nil, false
	}
	// The lookup table is not serialized.
	payload.Scene.Reindex()
	result := &Result{
		Data:       payload.Data,
		Geometry:   payload.Geometry,
		Scene:      payload.Scene,
		Styles:     payload.Styles,
		ResultHash: cache.Hash(data),
		Stats:      Stats{SliceCount: len(payload.Data.Slices), NodeCount: payload.Scene.Len()},
	}
	return result, true
}

// renderWithCache renders the requested formats, serving each from the
// render cache when possible.
func (r *Runner) renderWithCache(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := result.ResultHash != ""

	if allCached && !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.RenderKey(result.ResultHash, cache.RenderKeyOpts{Format: format})
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	for _, format := range opts.Formats {
		data, err := Render(result, format)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data
		if result.ResultHash != "" {
			key := r.Keyer.RenderKey(result.ResultHash, cache.RenderKeyOpts{Format: format})
			_ = r.Cache.Set(ctx, key, data, cache.TTLRender)
		}
	}
	return artifacts, false, nil
}

// Render produces one artifact from a computed result.
func Render(result *Result, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svgrender.Render(result.Scene, result.Styles, result.Geometry.Config)
	case FormatJSON:
		return json.MarshalIndent(result, "", "  ")
	default:
		return nil, ValidateFormat(format)
	}
}

// Close releases resources held by the runner, primarily the cache.
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
