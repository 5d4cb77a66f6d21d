// Package pipeline runs the complete chart computation pipeline.
//
// This package wires the pure stages into one entry point shared by the
// CLI, the HTTP server, and tests. Centralizing the orchestration keeps
// caching and logging consistent across all surfaces.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Process: aggregate raw rows into ordered slices with percentages
//  2. Geometry: compute arc geometry for every slice
//  3. Labels: place labels and leader lines
//  4. Scene: assemble the addressable node hierarchy
//  5. Style: resolve the final paint description per node
//
// Every stage is a pure function of its inputs. Caching happens only at
// the pipeline boundary, keyed by hashes of all inputs, so a cache never
// changes what a run computes.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Dataset: ds,
//	    Theme:   style.DefaultTheme(),
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pieforge/pieforge/pkg/board"
	"github.com/pieforge/pieforge/pkg/dataset"
	"github.com/pieforge/pieforge/pkg/errors"
	"github.com/pieforge/pieforge/pkg/geom"
	"github.com/pieforge/pieforge/pkg/scene"
	"github.com/pieforge/pieforge/pkg/style"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options contains all inputs of a pipeline run. The struct supports JSON
// serialization for API requests.
type Options struct {
	Dataset   dataset.Dataset      `json:"dataset"`
	Mapping   dataset.FieldMapping `json:"mapping,omitempty"`
	Config    geom.Config          `json:"config,omitempty"`
	Overrides board.Overrides      `json:"overrides,omitempty"`
	Theme     style.Theme          `json:"theme,omitempty"`

	// Formats selects the rendered artifacts. Empty means none; the
	// computed result is always returned.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the processed dataset: ordered slices with percentages.
	Data dataset.ProcessedPieData `json:"data"`

	// Geometry bundles slices, labels, and leaders with the config and
	// overrides that produced them.
	Geometry geom.State `json:"geometry"`

	// Scene is the addressable node hierarchy.
	Scene *scene.Graph `json:"scene"`

	// Styles is the resolved paint description per node id.
	Styles map[string]style.Resolved `json:"styles"`

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte `json:"-"`

	// ResultHash is the content hash of the computed result, usable as a
	// render cache key and as an ETag.
	ResultHash string `json:"resultHash,omitempty"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo `json:"cacheInfo"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SliceCount int `json:"sliceCount"`
	NodeCount  int `json:"nodeCount"`

	ProcessTime  time.Duration `json:"processTime"`
	GeometryTime time.Duration `json:"geometryTime"`
	SceneTime    time.Duration `json:"sceneTime"`
	StyleTime    time.Duration `json:"styleTime"`
	RenderTime   time.Duration `json:"renderTime"`
}

// CacheInfo tracks cache hits for the cacheable stages.
type CacheInfo struct {
	ResultHit bool `json:"resultHit"` // computed result came from cache
	RenderHit bool `json:"renderHit"` // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks all inputs and applies defaults. The
// method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := o.validateDataset(); err != nil {
		return err
	}
	if err := o.validateConfig(); err != nil {
		return err
	}
	if err := o.validateOverrides(); err != nil {
		return err
	}

	o.Theme = o.Theme.ApplyDefaults()
	if err := o.Theme.Validate(); err != nil {
		return err
	}

	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

func (o *Options) validateDataset() error {
	for _, d := range o.Dataset.Dimensions {
		if err := errors.ValidateFieldID(d.ID); err != nil {
			return err
		}
	}
	for _, m := range o.Dataset.Measures {
		if err := errors.ValidateFieldID(m.ID); err != nil {
			return err
		}
	}
	if o.Mapping.CategoryField != "" {
		if err := errors.ValidateFieldID(o.Mapping.CategoryField); err != nil {
			return err
		}
	}
	if o.Mapping.ValueField != "" {
		if err := errors.ValidateFieldID(o.Mapping.ValueField); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) validateConfig() error {
	// A zero config means "use defaults".
	if o.Config == (geom.Config{}) {
		o.Config = geom.DefaultConfig()
	}
	c := o.Config
	if err := errors.ValidateRadius("inner radius", c.InnerRadius); err != nil {
		return err
	}
	if err := errors.ValidateRadius("outer radius", c.OuterRadius); err != nil {
		return err
	}
	if c.OuterRadius == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "outer radius must be positive")
	}
	if c.InnerRadius >= c.OuterRadius {
		return errors.New(errors.ErrCodeInvalidConfig,
			"inner radius (%v) must be smaller than outer radius (%v)", c.InnerRadius, c.OuterRadius)
	}
	if err := errors.ValidateAngle("start angle", c.StartAngle); err != nil {
		return err
	}
	if err := errors.ValidateAngle("end angle", c.EndAngle); err != nil {
		return err
	}
	if err := errors.ValidateAngle("pad angle", c.PadAngle); err != nil {
		return err
	}
	if c.PadAngle < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pad angle must be >= 0, got %v", c.PadAngle)
	}
	if err := errors.ValidateRadius("corner radius", c.CornerRadius); err != nil {
		return err
	}
	if c.LabelAnchorMode != "" && !c.LabelAnchorMode.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown label anchor mode: %q", c.LabelAnchorMode)
	}
	if c.LabelAnchorMode == "" {
		o.Config.LabelAnchorMode = geom.AnchorCentroid
	}
	return nil
}

func (o *Options) validateOverrides() error {
	for id, a := range o.Overrides.Annotations {
		if a.ID != id {
			return errors.New(errors.ErrCodeInvalidAnnotation,
				"annotation key %q does not match its id %q", id, a.ID)
		}
		if err := errors.ValidateAnnotationType(string(a.Type)); err != nil {
			return err
		}
		if a.Type == board.AnnotationImage {
			if err := errors.ValidateURL(a.ImageURL); err != nil {
				return err
			}
		}
	}
	return nil
}
