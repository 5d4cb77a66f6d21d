package style

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pieforge/pieforge/pkg/scene"
)

// Resolved is a fully populated paint description. No downstream consumer
// may encounter an absent required field; optional extras (shadow, icon)
// are nil/empty when not in play.
type Resolved struct {
	Fill        Fill    `json:"fill"`
	FillOpacity float64 `json:"fillOpacity"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	StrokeDash  string  `json:"strokeDash"`
	Opacity     float64 `json:"opacity"`

	FontFamily string `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	FontWeight int    `json:"fontWeight"`
	TextColor  string `json:"textColor"`

	Shadow *Shadow `json:"shadow,omitempty"`
	Icon   string  `json:"icon,omitempty"`
}

// Fixed default strokes.
const (
	arcStroke       = "#FFFFFF"
	leaderStroke    = "#999999"
	annotationLine  = "#666666"
	annotationFill  = "#E8E8E8"
	noPaint         = "none"
	defaultWeight   = 400
	boldWeight      = 700
)

// Resolve computes the final style of one scene node: kind-based defaults
// seeded from the theme, then the theme's per-node override merged on top,
// then coercion of any still-unset field to its documented default.
// sliceIndex is the node's ordinal among unique data-bound slices and
// drives palette rotation for arc nodes. Resolution is total for any
// partial or absent override.
func Resolve(n *scene.Node, th Theme, sliceIndex int) Resolved {
	r := baseStyle(n, th, sliceIndex)
	if ov, ok := th.StyleOverrides[n.ID]; ok {
		mergeOverride(&r, ov)
	}
	return finalize(r, th)
}

// ResolveAll resolves every node of the graph and returns a node-id-keyed
// style map. Slice ordinals are assigned from arc order in the tree, so a
// slice keeps its palette color as long as its rank is unchanged.
func ResolveAll(g *scene.Graph, th Theme) map[string]Resolved {
	ordinals := make(map[string]int)
	next := 0
	g.Walk(func(n *scene.Node) {
		if n.Kind == scene.KindArc && n.DataID != "" {
			if _, ok := ordinals[n.DataID]; !ok {
				ordinals[n.DataID] = next
				next++
			}
		}
	})

	out := make(map[string]Resolved, g.Len())
	g.Walk(func(n *scene.Node) {
		out[n.ID] = Resolve(n, th, ordinals[n.DataID])
	})
	return out
}

// baseStyle seeds the per-kind defaults. The switch is exhaustive over the
// node kinds; structural kinds paint nothing themselves.
func baseStyle(n *scene.Node, th Theme, sliceIndex int) Resolved {
	r := Resolved{
		Fill:        Solid(noPaint),
		FillOpacity: 1,
		Stroke:      noPaint,
		Opacity:     1,
		FontFamily:  th.Typography.FontFamily,
		FontSize:    th.Typography.FontSize,
		FontWeight:  th.Typography.FontWeight,
		TextColor:   th.Typography.Color,
	}

	switch n.Kind {
	case scene.KindRoot:
		r.Fill = Solid(th.Background)

	case scene.KindRing, scene.KindSliceGroup, scene.KindLabelLayer,
		scene.KindCenterGroup, scene.KindAnnotationLayer:
		// Structural nodes paint nothing.

	case scene.KindArc:
		r.Fill = Solid(th.Palette[sliceIndex%len(th.Palette)])
		r.Stroke = arcStroke
		r.StrokeWidth = 2

	case scene.KindPercentLabel:
		r.TextColor = ContrastColor(th.Background)
		r.FontWeight = boldWeight

	case scene.KindLabel:
		r.FontWeight = boldWeight

	case scene.KindLeaderLine:
		r.Stroke = leaderStroke
		r.StrokeWidth = 1

	case scene.KindCenterContent:
		r.FontSize = th.Typography.FontSize * 1.5
		r.FontWeight = boldWeight

	case scene.KindAnnotationCircle, scene.KindAnnotationRect:
		r.Fill = Solid(annotationFill)
		r.Stroke = annotationLine
		r.StrokeWidth = 1

	case scene.KindAnnotationText:
		// Plain theme typography.

	case scene.KindAnnotationIcon:
		r.Fill = Solid(th.Typography.Color)
		if n.Annotation != nil {
			r.Icon = n.Annotation.Icon
		}

	case scene.KindAnnotationImage:
		// Image content comes from the annotation itself.
	}

	return r
}

// mergeOverride copies every present override field over the base style.
func mergeOverride(r *Resolved, ov Override) {
	if ov.Fill != nil {
		r.Fill = *ov.Fill
	}
	if ov.FillOpacity != nil {
		r.FillOpacity = *ov.FillOpacity
	}
	if ov.Stroke != nil {
		r.Stroke = *ov.Stroke
	}
	if ov.StrokeWidth != nil {
		r.StrokeWidth = *ov.StrokeWidth
	}
	if ov.StrokeDash != nil {
		r.StrokeDash = *ov.StrokeDash
	}
	if ov.Opacity != nil {
		r.Opacity = *ov.Opacity
	}
	if ov.FontFamily != nil {
		r.FontFamily = *ov.FontFamily
	}
	if ov.FontSize != nil {
		r.FontSize = *ov.FontSize
	}
	if ov.FontWeight != nil {
		r.FontWeight = *ov.FontWeight
	}
	if ov.TextColor != nil {
		r.TextColor = *ov.TextColor
	}
	if ov.Shadow != nil {
		s := *ov.Shadow
		r.Shadow = &s
	}
	if ov.Icon != nil {
		r.Icon = *ov.Icon
	}
}

// finalize coerces any field an override may have blanked back to a safe
// default, so the resolved style is always complete.
func finalize(r Resolved, th Theme) Resolved {
	if r.Fill.IsZero() {
		r.Fill = Solid(noPaint)
	}
	if r.FontFamily == "" {
		r.FontFamily = th.Typography.FontFamily
	}
	if r.FontSize <= 0 {
		r.FontSize = th.Typography.FontSize
	}
	if r.FontWeight <= 0 {
		r.FontWeight = defaultWeight
	}
	if r.TextColor == "" {
		r.TextColor = th.Typography.Color
	}
	if r.Stroke == "" {
		r.Stroke = noPaint
	}
	return r
}

// ContrastColor picks a high-contrast text color for the given background
// using relative luminance in linear RGB. Unparseable backgrounds get
// white text, matching the dark fallback painters use.
func ContrastColor(background string) string {
	c, err := colorful.Hex(background)
	if err != nil {
		return "#FFFFFF"
	}
	lr, lg, lb := c.LinearRgb()
	luminance := 0.2126*lr + 0.7152*lg + 0.0722*lb
	if luminance > 0.5 {
		return "#1A1A1A"
	}
	return "#FFFFFF"
}
