package geom

import (
	"math"

	"github.com/pieforge/pieforge/pkg/board"
)

// Label display sides.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// labelFontSize is the nominal font size used for bounding box estimates.
// The actual typography comes from the theme at style-resolution time; the
// estimate only needs to be stable and roughly proportional.
const labelFontSize = 12.0

// LabelGeometry describes the placement of one slice label.
type LabelGeometry struct {
	SliceID    string     `json:"sliceId"`
	Text       string     `json:"text"`
	Anchor     Point      `json:"anchor"`
	AnchorMode AnchorMode `json:"anchorMode"`
	// Offset is the manual positional offset applied to the anchor.
	Offset Point `json:"offset"`
	// Side is "right" when the slice mid-angle points right of the
	// vertical axis, else "left".
	Side string `json:"side"`
	// Box is a rough bounding box estimate centered on the anchor.
	Box Rect `json:"box"`
	// Manual is set when a caller override moved the label.
	Manual bool `json:"manual"`
	// Hidden is set when a caller override suppressed the label.
	Hidden bool `json:"hidden"`
}

// LeaderLineGeometry is the connector between a slice's outer edge and an
// outside-anchored label.
type LeaderLineGeometry struct {
	SliceID string `json:"sliceId"`
	Start   Point  `json:"start"`
	End     Point  `json:"end"`
	Path    string `json:"path"`
}

// PlaceLabels produces exactly one label per slice and a leader line for
// every label whose effective anchor mode is outside. Overrides win over
// config defaults; a manual offset marks the label as manually positioned.
//
// Multi-label-per-slice is a deliberate extension point: the "-0" ordinal
// in derived scene node ids leaves room for additional labels, but this
// placer emits only the first.
func PlaceLabels(slices []SliceGeometry, cfg Config, overrides map[string]board.LabelOverride) ([]LabelGeometry, []LeaderLineGeometry) {
	labels := make([]LabelGeometry, 0, len(slices))
	var leaders []LeaderLineGeometry

	for _, s := range slices {
		lg := placeLabel(s, cfg, overrides)
		labels = append(labels, lg)

		if lg.AnchorMode == AnchorOutside && !lg.Hidden {
			leaders = append(leaders, LeaderLineGeometry{
				SliceID: s.SliceID,
				Start:   s.OuterEdge,
				End:     lg.Anchor,
				Path:    linePath(s.OuterEdge, lg.Anchor),
			})
		}
	}

	return labels, leaders
}

func placeLabel(s SliceGeometry, cfg Config, overrides map[string]board.LabelOverride) LabelGeometry {
	mode := cfg.LabelAnchorMode
	if !mode.Valid() {
		mode = AnchorCentroid
	}

	text := s.Label
	var offset Point
	manual := false
	hidden := false

	ov, hasOverride := overrides[s.SliceID]
	if hasOverride {
		if ov.AnchorMode != nil && AnchorMode(*ov.AnchorMode).Valid() {
			mode = AnchorMode(*ov.AnchorMode)
		}
		if ov.Text != nil {
			text = *ov.Text
		}
		if ov.OffsetX != nil || ov.OffsetY != nil {
			manual = true
			if ov.OffsetX != nil {
				offset.X = *ov.OffsetX
			}
			if ov.OffsetY != nil {
				offset.Y = *ov.OffsetY
			}
		}
		if ov.Hidden != nil {
			hidden = *ov.Hidden
		}
	}

	var anchor Point
	switch mode {
	case AnchorEdge:
		anchor = s.OuterEdge
	case AnchorOutside:
		anchor = PointOnCircle(s.Center, s.OuterRadius+cfg.LabelRadiusOffset, s.MidAngle)
	default: // AnchorCentroid
		anchor = s.Centroid
	}
	anchor = anchor.Add(offset)

	side := SideLeft
	if math.Cos(s.MidAngle) >= 0 {
		side = SideRight
	}

	return LabelGeometry{
		SliceID:    s.SliceID,
		Text:       text,
		Anchor:     anchor,
		AnchorMode: mode,
		Offset:     offset,
		Side:       side,
		Box:        estimateBox(text, anchor),
		Manual:     manual,
		Hidden:     hidden,
	}
}

// estimateBox approximates the rendered extent of a label, centered on its
// anchor. Average glyph width is taken as 0.6em, line height as 1.2em.
func estimateBox(text string, anchor Point) Rect {
	w := float64(len([]rune(text))) * labelFontSize * 0.6
	h := labelFontSize * 1.2
	return Rect{
		X: anchor.X - w/2,
		Y: anchor.Y - h/2,
		W: w,
		H: h,
	}
}
