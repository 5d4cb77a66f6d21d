package geom

import (
	"math"

	"github.com/pieforge/pieforge/pkg/board"
	"github.com/pieforge/pieforge/pkg/dataset"
)

// SliceGeometry is the fully computed geometry of one slice.
type SliceGeometry struct {
	SliceID    string  `json:"sliceId"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`

	StartAngle float64 `json:"startAngle"`
	MidAngle   float64 `json:"midAngle"`
	EndAngle   float64 `json:"endAngle"`

	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
	// CornerRadius is the effective corner radius: the config or override
	// value clamped to half the radial thickness.
	CornerRadius float64 `json:"cornerRadius"`

	// Center is the slice's effective center: the chart center displaced
	// by the explode vector.
	Center Point `json:"center"`
	// Explode is the displacement vector applied to Center.
	Explode Point `json:"explode"`

	// Centroid sits at the mid-angle, halfway between the radii.
	Centroid Point `json:"centroid"`
	// OuterEdge and InnerEdge sit at the mid-angle on the two radii.
	OuterEdge Point `json:"outerEdge"`
	InnerEdge Point `json:"innerEdge"`

	// Path is SVG path data for the slice shape. Empty when the padded
	// angular span collapses to nothing.
	Path string `json:"path"`
}

// Span returns the slice's angular span in radians.
func (s SliceGeometry) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// ComputeSlices assigns each processed slice an angular span proportional
// to its percentage of the configured angle range and resolves its radii,
// explode displacement, anchor points, and path data.
//
// Spans are exactly contiguous: each slice starts where the previous one
// ended, and the last slice ends at cfg.EndAngle. Per-slice overrides win
// over the config values; an OuterRadiusOffset override is added on top of
// the resolved outer radius. The function is total — degenerate spans
// produce empty path data, never an error.
func ComputeSlices(data dataset.ProcessedPieData, cfg Config, overrides map[string]board.SliceOverride) []SliceGeometry {
	out := make([]SliceGeometry, 0, len(data.Slices))
	total := cfg.AngularRange()

	cursor := cfg.StartAngle
	for i, ps := range data.Slices {
		start := cursor
		end := start + total*ps.Percentage/100
		if i == len(data.Slices)-1 {
			// Snap the final edge so spans telescope exactly to EndAngle
			// regardless of accumulated floating error.
			end = cfg.EndAngle
		}
		cursor = end

		g := SliceGeometry{
			SliceID:      ps.SliceID,
			Label:        ps.Label,
			Value:        ps.RawValue,
			Percentage:   ps.Percentage,
			StartAngle:   start,
			EndAngle:     end,
			MidAngle:     (start + end) / 2,
			InnerRadius:  cfg.InnerRadius,
			OuterRadius:  cfg.OuterRadius,
			CornerRadius: cfg.CornerRadius,
			Center:       cfg.Center,
		}

		if ov, ok := overrides[ps.SliceID]; ok {
			applySliceOverride(&g, ov)
		}
		g.CornerRadius = clampCornerRadius(g.CornerRadius, g.InnerRadius, g.OuterRadius)

		midRadius := (g.InnerRadius + g.OuterRadius) / 2
		g.Centroid = PointOnCircle(g.Center, midRadius, g.MidAngle)
		g.OuterEdge = PointOnCircle(g.Center, g.OuterRadius, g.MidAngle)
		g.InnerEdge = PointOnCircle(g.Center, g.InnerRadius, g.MidAngle)

		a1 := g.StartAngle + cfg.PadAngle/2
		a2 := g.EndAngle - cfg.PadAngle/2
		g.Path = slicePath(g.Center, g.InnerRadius, g.OuterRadius, a1, a2, g.CornerRadius)

		out = append(out, g)
	}

	return out
}

// applySliceOverride resolves the spatial overrides for one slice.
// Radii and corner radius replace the config values; the outer radius
// offset is additive; explode displaces the effective center along the
// mid-angle ray.
func applySliceOverride(g *SliceGeometry, ov board.SliceOverride) {
	if ov.InnerRadius != nil {
		g.InnerRadius = *ov.InnerRadius
	}
	if ov.OuterRadius != nil {
		g.OuterRadius = *ov.OuterRadius
	}
	if ov.OuterRadiusOffset != nil {
		g.OuterRadius += *ov.OuterRadiusOffset
	}
	if ov.CornerRadius != nil {
		g.CornerRadius = *ov.CornerRadius
	}
	if ov.Explode != nil && *ov.Explode != 0 {
		amount := *ov.Explode
		g.Explode = Pt(math.Cos(g.MidAngle)*amount, math.Sin(g.MidAngle)*amount)
		g.Center = g.Center.Add(g.Explode)
	}
}

// clampCornerRadius limits a corner radius to what the annulus can hold:
// never negative and at most half the radial thickness. The path generator
// shrinks it further when the angular span is too narrow for the arcs.
func clampCornerRadius(cr, inner, outer float64) float64 {
	if cr < 0 {
		return 0
	}
	if limit := (outer - inner) / 2; cr > limit {
		return math.Max(limit, 0)
	}
	return cr
}
