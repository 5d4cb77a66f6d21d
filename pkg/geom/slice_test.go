package geom

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/pieforge/pieforge/pkg/board"
	"github.com/pieforge/pieforge/pkg/dataset"
)

func pieData(pairs ...any) dataset.ProcessedPieData {
	ds := dataset.Dataset{
		Dimensions: []dataset.Dimension{{ID: "category", Type: dataset.FieldString}},
		Measures:   []dataset.Measure{{ID: "value", Type: dataset.FieldNumber, Aggregation: dataset.AggSum}},
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		ds.Rows = append(ds.Rows, dataset.DataRow{"category": pairs[i], "value": pairs[i+1]})
	}
	return dataset.Process(ds, dataset.FieldMapping{})
}

func TestComputeSlicesScenario(t *testing.T) {
	// {A:30, B:30, C:40} on the default full circle: C first, then the
	// tied pair in encounter order, spans 0.8π/0.6π/0.6π.
	data := pieData("A", 30.0, "B", 30.0, "C", 40.0)
	cfg := DefaultConfig()
	out := ComputeSlices(data, cfg, nil)

	if len(out) != 3 {
		t.Fatalf("slice count = %d, want 3", len(out))
	}
	wantOrder := []string{"c", "a", "b"}
	wantSpans := []float64{0.8 * math.Pi, 0.6 * math.Pi, 0.6 * math.Pi}
	spans := make([]float64, len(out))
	for i, s := range out {
		spans[i] = s.Span()
		if s.SliceID != wantOrder[i] {
			t.Errorf("slice[%d] id = %s, want %s", i, s.SliceID, wantOrder[i])
		}
		if math.Abs(spans[i]-wantSpans[i]) > 1e-9 {
			t.Errorf("slice[%d] span = %v, want %v", i, spans[i], wantSpans[i])
		}
	}
	if got := floats.Sum(spans); math.Abs(got-2*math.Pi) > 1e-9 {
		t.Errorf("span sum = %v, want 2π", got)
	}
}

func TestComputeSlicesSpansAreContiguous(t *testing.T) {
	data := pieData("a", 1.0, "b", 2.0, "c", 3.0, "d", 0.5, "e", 11.0)
	cfg := DefaultConfig()
	cfg.StartAngle = 0.3
	cfg.EndAngle = 4.1
	out := ComputeSlices(data, cfg, nil)

	if out[0].StartAngle != cfg.StartAngle {
		t.Errorf("first start = %v, want %v", out[0].StartAngle, cfg.StartAngle)
	}
	for i := 1; i < len(out); i++ {
		if out[i].StartAngle != out[i-1].EndAngle {
			t.Errorf("slice %d starts at %v but previous ends at %v", i, out[i].StartAngle, out[i-1].EndAngle)
		}
	}
	if out[len(out)-1].EndAngle != cfg.EndAngle {
		t.Errorf("last end = %v, want exactly %v", out[len(out)-1].EndAngle, cfg.EndAngle)
	}

	spans := make([]float64, len(out))
	for i, s := range out {
		spans[i] = s.Span()
	}
	if !scalar.EqualWithinAbs(floats.Sum(spans), cfg.AngularRange(), 1e-9) {
		t.Errorf("span sum = %v, want %v", floats.Sum(spans), cfg.AngularRange())
	}
}

func TestComputeSlicesZeroValuesEqualSpans(t *testing.T) {
	data := pieData("a", 0.0, "b", 0.0, "c", 0.0, "d", 0.0)
	out := ComputeSlices(data, DefaultConfig(), nil)

	for _, s := range out {
		if math.Abs(s.Span()-math.Pi/2) > 1e-9 {
			t.Errorf("slice %s span = %v, want π/2", s.SliceID, s.Span())
		}
	}
}

func TestComputeSlicesOverrides(t *testing.T) {
	data := pieData("a", 1.0, "b", 1.0)
	cfg := DefaultConfig()
	overrides := map[string]board.SliceOverride{
		"a": {
			OuterRadius:       board.Float(100),
			OuterRadiusOffset: board.Float(20),
			InnerRadius:       board.Float(30),
			Explode:           board.Float(10),
		},
	}
	out := ComputeSlices(data, cfg, overrides)

	var a, b SliceGeometry
	for _, s := range out {
		switch s.SliceID {
		case "a":
			a = s
		case "b":
			b = s
		}
	}

	if a.OuterRadius != 120 {
		t.Errorf("a outer radius = %v, want 100+20", a.OuterRadius)
	}
	if a.InnerRadius != 30 {
		t.Errorf("a inner radius = %v, want 30", a.InnerRadius)
	}
	if b.OuterRadius != cfg.OuterRadius || b.InnerRadius != cfg.InnerRadius {
		t.Errorf("b radii = (%v, %v), want config values", b.InnerRadius, b.OuterRadius)
	}

	wantExplode := Pt(math.Cos(a.MidAngle)*10, math.Sin(a.MidAngle)*10)
	if math.Abs(a.Explode.X-wantExplode.X) > 1e-9 || math.Abs(a.Explode.Y-wantExplode.Y) > 1e-9 {
		t.Errorf("explode = %+v, want %+v", a.Explode, wantExplode)
	}
	if got := a.Center.Sub(cfg.Center); math.Abs(got.X-wantExplode.X) > 1e-9 {
		t.Errorf("center displaced by %+v, want %+v", got, wantExplode)
	}
	if b.Center != cfg.Center {
		t.Errorf("b center = %+v, should remain %+v", b.Center, cfg.Center)
	}
}

func TestComputeSlicesAnchorPoints(t *testing.T) {
	data := pieData("only", 10.0)
	cfg := DefaultConfig()
	cfg.InnerRadius = 50
	out := ComputeSlices(data, cfg, nil)

	s := out[0]
	mid := (cfg.InnerRadius + cfg.OuterRadius) / 2
	if d := s.Centroid.Distance(cfg.Center); math.Abs(d-mid) > 1e-9 {
		t.Errorf("centroid radius = %v, want %v", d, mid)
	}
	if d := s.OuterEdge.Distance(cfg.Center); math.Abs(d-cfg.OuterRadius) > 1e-9 {
		t.Errorf("outer edge radius = %v, want %v", d, cfg.OuterRadius)
	}
	if d := s.InnerEdge.Distance(cfg.Center); math.Abs(d-cfg.InnerRadius) > 1e-9 {
		t.Errorf("inner edge radius = %v, want %v", d, cfg.InnerRadius)
	}
}

func TestComputeSlicesEmptyData(t *testing.T) {
	out := ComputeSlices(dataset.ProcessedPieData{}, DefaultConfig(), nil)
	if len(out) != 0 {
		t.Errorf("no slices expected, got %d", len(out))
	}
}

func TestPathEmptyWhenPaddedSpanCollapses(t *testing.T) {
	// Four slices but one is so thin that a large pad angle swallows it.
	data := pieData("big", 1000.0, "tiny", 0.001)
	cfg := DefaultConfig()
	cfg.PadAngle = 0.1
	out := ComputeSlices(data, cfg, nil)

	for _, s := range out {
		padded := s.Span() - cfg.PadAngle
		if padded <= 0 {
			if s.Path != "" {
				t.Errorf("slice %s: collapsed span should give empty path, got %q", s.SliceID, s.Path)
			}
		} else {
			if !strings.HasPrefix(s.Path, "M") {
				t.Errorf("slice %s: path should start with a move command, got %q", s.SliceID, s.Path)
			}
		}
	}
}

func TestPathWedgeAndRingForms(t *testing.T) {
	data := pieData("a", 1.0, "b", 1.0, "c", 2.0)

	wedgeCfg := DefaultConfig() // inner radius 0
	for _, s := range ComputeSlices(data, wedgeCfg, nil) {
		// A wedge starts at the slice center.
		wantStart := "M " + fc(s.Center.X) + " " + fc(s.Center.Y)
		if !strings.HasPrefix(s.Path, wantStart) {
			t.Errorf("wedge path should start at center: %q", s.Path)
		}
		if strings.Count(s.Path, "A") != 1 {
			t.Errorf("wedge should have one arc, got %q", s.Path)
		}
	}

	ringCfg := DefaultConfig()
	ringCfg.InnerRadius = 60
	for _, s := range ComputeSlices(data, ringCfg, nil) {
		if strings.Count(s.Path, "A") != 2 {
			t.Errorf("ring segment should have two arcs, got %q", s.Path)
		}
	}
}

func TestPathLargeArcFlag(t *testing.T) {
	// 75/25 split: the large slice spans 1.5π (> π), the small one 0.5π.
	data := pieData("big", 75.0, "small", 25.0)
	out := ComputeSlices(data, DefaultConfig(), nil)

	var big, small SliceGeometry
	for _, s := range out {
		if s.SliceID == "big" {
			big = s
		} else {
			small = s
		}
	}
	if !strings.Contains(big.Path, " 0 1 1 ") {
		t.Errorf("big slice should use the large-arc flag: %q", big.Path)
	}
	if !strings.Contains(small.Path, " 0 0 1 ") {
		t.Errorf("small slice should not use the large-arc flag: %q", small.Path)
	}
}

func TestPathCornerRadiusRounding(t *testing.T) {
	data := pieData("a", 1.0, "b", 1.0, "c", 2.0)

	wedgeCfg := DefaultConfig()
	wedgeCfg.CornerRadius = 8
	for _, s := range ComputeSlices(data, wedgeCfg, nil) {
		if s.CornerRadius != 8 {
			t.Errorf("slice %s corner radius = %v, want 8", s.SliceID, s.CornerRadius)
		}
		// Two corner arcs plus the rim arc.
		if got := strings.Count(s.Path, "A"); got != 3 {
			t.Errorf("rounded wedge should have 3 arcs, got %d: %q", got, s.Path)
		}
	}

	ringCfg := DefaultConfig()
	ringCfg.InnerRadius = 60
	ringCfg.CornerRadius = 8
	for _, s := range ComputeSlices(data, ringCfg, nil) {
		// Four corner arcs plus the two rim arcs.
		if got := strings.Count(s.Path, "A"); got != 6 {
			t.Errorf("rounded ring segment should have 6 arcs, got %d: %q", got, s.Path)
		}
	}
}

func TestCornerRadiusClamped(t *testing.T) {
	data := pieData("a", 1.0, "b", 1.0)

	cfg := DefaultConfig()
	cfg.InnerRadius = 100
	cfg.OuterRadius = 120
	cfg.CornerRadius = 50
	for _, s := range ComputeSlices(data, cfg, nil) {
		if s.CornerRadius != 10 {
			t.Errorf("corner radius = %v, want clamp to half thickness 10", s.CornerRadius)
		}
	}

	cfg.CornerRadius = -3
	for _, s := range ComputeSlices(data, cfg, nil) {
		if s.CornerRadius != 0 {
			t.Errorf("negative corner radius = %v, want 0", s.CornerRadius)
		}
	}
}

func TestCornerRadiusOverrideChangesPath(t *testing.T) {
	data := pieData("a", 1.0, "b", 1.0)
	cfg := DefaultConfig()

	plain := make(map[string]string)
	for _, s := range ComputeSlices(data, cfg, nil) {
		plain[s.SliceID] = s.Path
	}

	overrides := map[string]board.SliceOverride{
		"a": {CornerRadius: board.Float(10)},
	}
	for _, s := range ComputeSlices(data, cfg, overrides) {
		switch s.SliceID {
		case "a":
			if s.Path == plain["a"] {
				t.Error("corner radius override should change the drawn path")
			}
			if got := strings.Count(s.Path, "A"); got != 3 {
				t.Errorf("rounded wedge should have 3 arcs, got %d: %q", got, s.Path)
			}
		case "b":
			if s.Path != plain["b"] {
				t.Error("override on a must not affect b's path")
			}
		}
	}
}

func TestFullCircleIgnoresCornerRadius(t *testing.T) {
	data := pieData("all", 1.0)
	cfg := DefaultConfig()
	cfg.CornerRadius = 10
	p := ComputeSlices(data, cfg, nil)[0].Path
	if strings.Count(p, "A") != 2 {
		t.Errorf("closed circle has no corners to round, got %q", p)
	}
}

func TestPathFullCircleSingleSlice(t *testing.T) {
	data := pieData("all", 42.0)
	cfg := DefaultConfig()
	out := ComputeSlices(data, cfg, nil)

	p := out[0].Path
	if p == "" {
		t.Fatal("full-circle slice must not have an empty path")
	}
	// The full circle is two half arcs with distinct endpoints, not a
	// single arc whose endpoints coincide.
	if strings.Count(p, "A") != 2 {
		t.Errorf("full circle should be two arcs, got %q", p)
	}

	cfg.InnerRadius = 60
	donut := ComputeSlices(data, cfg, nil)[0].Path
	if strings.Count(donut, "A") != 4 {
		t.Errorf("full annulus should be four arcs, got %q", donut)
	}
	if strings.Count(donut, "M") != 2 {
		t.Errorf("full annulus should have two subpaths, got %q", donut)
	}
}
