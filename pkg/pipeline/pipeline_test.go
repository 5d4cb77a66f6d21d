package pipeline

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/pieforge/pieforge/pkg/board"
	"github.com/pieforge/pieforge/pkg/cache"
	"github.com/pieforge/pieforge/pkg/dataset"
	"github.com/pieforge/pieforge/pkg/errors"
	"github.com/pieforge/pieforge/pkg/geom"
	"github.com/pieforge/pieforge/pkg/style"
)

func testDataset(pairs ...any) dataset.Dataset {
	ds := dataset.Dataset{
		Dimensions: []dataset.Dimension{{ID: "category", Type: dataset.FieldString}},
		Measures:   []dataset.Measure{{ID: "value", Type: dataset.FieldNumber, Aggregation: dataset.AggSum}},
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		ds.Rows = append(ds.Rows, dataset.DataRow{"category": pairs[i], "value": pairs[i+1]})
	}
	return ds
}

func TestExecuteEndToEnd(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Dataset: testDataset("North", 60.0, "South", 25.0, "East", 15.0),
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.SliceCount != 3 {
		t.Errorf("slice count = %d, want 3", result.Stats.SliceCount)
	}
	// 1 root + 1 ring + 3×(group+arc+pct) + 1 label layer + 3 labels.
	if result.Stats.NodeCount != 15 {
		t.Errorf("node count = %d, want 15", result.Stats.NodeCount)
	}

	var pctSum float64
	for _, s := range result.Data.Slices {
		pctSum += s.Percentage
	}
	if math.Abs(pctSum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", pctSum)
	}

	// Every node has a resolved style.
	for id := range result.Scene.Nodes {
		if _, ok := result.Styles[id]; !ok {
			t.Errorf("node %s has no resolved style", id)
		}
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "north-arc") {
		t.Error("svg artifact should contain the north arc")
	}
	var decoded Result
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &decoded); err != nil {
		t.Errorf("json artifact should round-trip: %v", err)
	}

	if result.ResultHash == "" {
		t.Error("result hash should be set")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := Options{
		Dataset: testDataset("a", 5.0, "b", 3.0, "c", 2.0),
		Theme:   style.DefaultTheme(),
	}

	r1, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if r1.ResultHash != r2.ResultHash {
		t.Errorf("equal inputs should hash equally: %s vs %s", r1.ResultHash, r2.ResultHash)
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Dataset: testDataset("a", 1.0, "b", 2.0)}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ResultHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ResultHit {
		t.Error("second run should hit the cache")
	}
	if second.ResultHash != first.ResultHash {
		t.Errorf("cached hash %s != computed hash %s", second.ResultHash, first.ResultHash)
	}
	// The cached scene must be usable: lookup table rebuilt.
	if _, ok := second.Scene.Lookup("a-arc"); !ok {
		t.Error("cached scene should have a reindexed lookup table")
	}
	if err := second.Scene.Validate(); err != nil {
		t.Errorf("cached scene should validate: %v", err)
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.ResultHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteDifferentInputsDifferentKeys(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	if _, err := runner.Execute(ctx, Options{Dataset: testDataset("a", 1.0)}); err != nil {
		t.Fatal(err)
	}

	// Same dataset, different config: must not hit.
	cfg := geom.DefaultConfig()
	cfg.InnerRadius = 60
	result, err := runner.Execute(ctx, Options{Dataset: testDataset("a", 1.0), Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.ResultHit {
		t.Error("changed config should produce a different cache key")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name: "InnerNotBelowOuter",
			opts: Options{
				Dataset: testDataset("a", 1.0),
				Config:  geom.Config{InnerRadius: 150, OuterRadius: 100, LabelAnchorMode: geom.AnchorCentroid},
			},
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name: "NaNAngle",
			opts: Options{
				Dataset: testDataset("a", 1.0),
				Config: func() geom.Config {
					c := geom.DefaultConfig()
					c.StartAngle = math.NaN()
					return c
				}(),
			},
			wantCode: errors.ErrCodeInvalidConfig,
		},
		{
			name: "BadFormat",
			opts: Options{
				Dataset: testDataset("a", 1.0),
				Formats: []string{"pdf"},
			},
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name: "BadAnnotationType",
			opts: Options{
				Dataset: testDataset("a", 1.0),
				Overrides: board.Overrides{Annotations: map[string]board.Annotation{
					"ann-1": {ID: "ann-1", Type: "sticker"},
				}},
			},
			wantCode: errors.ErrCodeInvalidAnnotation,
		},
		{
			name: "MismatchedAnnotationKey",
			opts: Options{
				Dataset: testDataset("a", 1.0),
				Overrides: board.Overrides{Annotations: map[string]board.Annotation{
					"ann-1": {ID: "ann-2", Type: board.AnnotationText},
				}},
			},
			wantCode: errors.ErrCodeInvalidAnnotation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestValidateDefaultsApplied(t *testing.T) {
	opts := Options{Dataset: testDataset("a", 1.0)}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Config.OuterRadius != 150 {
		t.Errorf("default outer radius = %v, want 150", opts.Config.OuterRadius)
	}
	if opts.Config.LabelAnchorMode != geom.AnchorCentroid {
		t.Errorf("default anchor mode = %q", opts.Config.LabelAnchorMode)
	}
	if len(opts.Theme.Palette) == 0 {
		t.Error("default theme should be applied")
	}
	if opts.Logger == nil {
		t.Error("default logger should be set")
	}
}

func TestComputeZeroTotal(t *testing.T) {
	result := Compute(Options{
		Dataset: testDataset("a", 0.0, "b", 0.0),
		Config:  geom.DefaultConfig(),
		Theme:   style.DefaultTheme(),
	})
	for _, s := range result.Data.Slices {
		if s.Percentage != 50 {
			t.Errorf("zero total should split equally, got %v", s.Percentage)
		}
	}
}
