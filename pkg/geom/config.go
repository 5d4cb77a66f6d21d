package geom

import "math"

// AnchorMode selects the strategy for placing a label relative to its slice.
type AnchorMode string

const (
	// AnchorCentroid places the label at the slice centroid.
	AnchorCentroid AnchorMode = "centroid"
	// AnchorEdge places the label on the slice's outer edge point.
	AnchorEdge AnchorMode = "edge"
	// AnchorOutside places the label beyond the outer radius along the
	// slice's mid-angle ray, connected by a leader line.
	AnchorOutside AnchorMode = "outside"
)

// Valid reports whether m is a recognized anchor mode.
func (m AnchorMode) Valid() bool {
	switch m {
	case AnchorCentroid, AnchorEdge, AnchorOutside:
		return true
	}
	return false
}

// SortOrder controls the slice ordering the geometry stage expects.
// Ordering itself happens in the data processor; the config records the
// choice so that a board document fully describes its chart.
type SortOrder string

const (
	// SortDescending orders slices by value, largest first. Default.
	SortDescending SortOrder = "desc"
	// SortNone keeps the encounter order of categories.
	SortNone SortOrder = "none"
)

// Config describes the spatial layout of a pie or donut chart.
// All angles are radians; all lengths are in the target coordinate space.
type Config struct {
	Center       Point   `json:"center"`
	InnerRadius  float64 `json:"innerRadius"`
	OuterRadius  float64 `json:"outerRadius"`
	StartAngle   float64 `json:"startAngle"`
	EndAngle     float64 `json:"endAngle"`
	PadAngle     float64 `json:"padAngle"`
	CornerRadius float64 `json:"cornerRadius"`

	// LabelAnchorMode is the default anchor mode for labels without an
	// explicit override.
	LabelAnchorMode AnchorMode `json:"labelAnchorMode"`
	// LabelRadiusOffset is the distance beyond the outer radius at which
	// outside labels are anchored.
	LabelRadiusOffset float64 `json:"labelRadiusOffset"`

	// SortOrder records how slices were ordered by the data processor.
	SortOrder SortOrder `json:"sortOrder"`
}

// DefaultConfig returns the layout used by a fresh board: a full circle
// starting at twelve o'clock, 150px outer radius, centroid labels.
func DefaultConfig() Config {
	return Config{
		Center:            Pt(200, 200),
		InnerRadius:       0,
		OuterRadius:       150,
		StartAngle:        -math.Pi / 2,
		EndAngle:          3 * math.Pi / 2,
		PadAngle:          0,
		CornerRadius:      0,
		LabelAnchorMode:   AnchorCentroid,
		LabelRadiusOffset: 24,
		SortOrder:         SortDescending,
	}
}

// AngularRange returns the total angle covered by the chart.
func (c Config) AngularRange() float64 {
	return c.EndAngle - c.StartAngle
}
