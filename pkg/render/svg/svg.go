package svg

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/pieforge/pieforge/pkg/geom"
	"github.com/pieforge/pieforge/pkg/scene"
	"github.com/pieforge/pieforge/pkg/style"
)

// margin is the padding added around the chart extent.
const margin = 20.0

// Render produces a complete SVG document for the scene. Styles must come
// from resolving the same graph; nodes without a resolved style fall back
// to the default theme's resolution for their kind.
func Render(g *scene.Graph, styles map[string]style.Resolved, cfg geom.Config) ([]byte, error) {
	if g == nil || g.Root == nil {
		return nil, fmt.Errorf("render: empty scene graph")
	}

	width := cfg.Center.X * 2
	height := cfg.Center.Y * 2
	if width <= 0 || height <= 0 {
		width = (cfg.OuterRadius + margin) * 2
		height = width
	}

	r := renderer{styles: styles}

	var body bytes.Buffer
	r.renderNode(&body, g.Root)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.defs.Len() > 0 {
		buf.WriteString("<defs>\n")
		buf.Write(r.defs.Bytes())
		buf.WriteString("</defs>\n")
	}
	// Background from the root style.
	root := r.styleFor(g.Root)
	if root.Fill.Kind == style.FillSolid && root.Fill.Color != "none" {
		fmt.Fprintf(&buf, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(root.Fill.Color))
	}
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

type renderer struct {
	styles map[string]style.Resolved
	defs   bytes.Buffer
}

func (r *renderer) styleFor(n *scene.Node) style.Resolved {
	if s, ok := r.styles[n.ID]; ok {
		return s
	}
	return style.Resolve(n, style.DefaultTheme(), 0)
}

func (r *renderer) renderNode(buf *bytes.Buffer, n *scene.Node) {
	if !n.Visible {
		return
	}

	group := len(n.Children) > 0
	if group && n.Kind != scene.KindRoot {
		fmt.Fprintf(buf, `<g id=%q%s>`+"\n", n.ID, transformAttr(n.Transform))
	}
	// Leaves carry their transform on the element itself.
	tattr := ""
	if !group {
		tattr = transformAttr(n.Transform)
	}

	s := r.styleFor(n)
	switch n.Kind {
	case scene.KindArc:
		r.renderArc(buf, n, s, tattr)
	case scene.KindPercentLabel, scene.KindCenterContent:
		if n.Text != nil && n.Text.Text != "" {
			r.renderText(buf, n.ID, n.Text.Text, n.Text.Anchor, "middle", s, tattr)
		}
	case scene.KindLabel:
		r.renderLabel(buf, n, s, tattr)
	case scene.KindLeaderLine:
		if n.Leader != nil {
			fmt.Fprintf(buf, `<path id=%q d=%q fill="none" stroke=%q stroke-width="%s"%s%s/>`+"\n",
				n.ID, n.Leader.Path, s.Stroke, f(s.StrokeWidth), dashAttr(s), tattr)
		}
	default:
		if n.IsAnnotation() && n.Annotation != nil {
			r.renderAnnotation(buf, n, s, tattr)
		}
	}

	for _, c := range n.Children {
		r.renderNode(buf, c)
	}

	if group && n.Kind != scene.KindRoot {
		buf.WriteString("</g>\n")
	}
}

func (r *renderer) renderArc(buf *bytes.Buffer, n *scene.Node, s style.Resolved, tattr string) {
	if n.Arc == nil || n.Arc.Path == "" {
		return
	}
	fmt.Fprintf(buf, `<path id=%q d=%q fill=%q`, n.ID, n.Arc.Path, r.fillRef(n.ID, s))
	buf.WriteString(tattr)
	if s.FillOpacity != 1 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, f(s.FillOpacity))
	}
	if s.Stroke != "none" && s.StrokeWidth > 0 {
		fmt.Fprintf(buf, ` stroke=%q stroke-width="%s"`, s.Stroke, f(s.StrokeWidth))
	}
	if s.Opacity != 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, f(s.Opacity))
	}
	buf.WriteString(` fill-rule="nonzero"/>` + "\n")
}

func (r *renderer) renderLabel(buf *bytes.Buffer, n *scene.Node, s style.Resolved, tattr string) {
	if n.Label == nil || n.Label.Hidden {
		return
	}
	anchor := "middle"
	if n.Label.AnchorMode == geom.AnchorOutside {
		// Outside labels grow away from the chart.
		if n.Label.Side == geom.SideRight {
			anchor = "start"
		} else {
			anchor = "end"
		}
	}
	r.renderText(buf, n.ID, n.Label.Text, n.Label.Anchor, anchor, s, tattr)
}

func (r *renderer) renderText(buf *bytes.Buffer, id, text string, at geom.Point, anchor string, s style.Resolved, tattr string) {
	fmt.Fprintf(buf,
		`<text id=%q x="%s" y="%s" text-anchor="%s" dominant-baseline="central" font-family=%q font-size="%s" font-weight="%d" fill=%q%s>%s</text>`+"\n",
		id, f(at.X), f(at.Y), anchor, s.FontFamily, f(s.FontSize), s.FontWeight, s.TextColor, tattr, escape(text))
}

func (r *renderer) renderAnnotation(buf *bytes.Buffer, n *scene.Node, s style.Resolved, tattr string) {
	a := n.Annotation
	switch n.Kind {
	case scene.KindAnnotationCircle:
		fmt.Fprintf(buf, `<circle id=%q cx="%s" cy="%s" r="%s" fill=%q stroke=%q stroke-width="%s"%s/>`+"\n",
			n.ID, f(a.X), f(a.Y), f(a.Radius), r.fillRef(n.ID, s), s.Stroke, f(s.StrokeWidth), tattr)
	case scene.KindAnnotationRect:
		fmt.Fprintf(buf, `<rect id=%q x="%s" y="%s" width="%s" height="%s" fill=%q stroke=%q stroke-width="%s"%s/>`+"\n",
			n.ID, f(a.X), f(a.Y), f(a.Width), f(a.Height), r.fillRef(n.ID, s), s.Stroke, f(s.StrokeWidth), tattr)
	case scene.KindAnnotationText:
		r.renderText(buf, n.ID, a.Text, geom.Pt(a.X, a.Y), "start", s, tattr)
	case scene.KindAnnotationIcon:
		// Icons are glyph references resolved by the embedding surface; the
		// SVG sink renders the glyph name as text.
		r.renderText(buf, n.ID, s.Icon, geom.Pt(a.X, a.Y), "middle", s, tattr)
	case scene.KindAnnotationImage:
		fmt.Fprintf(buf, `<image id=%q x="%s" y="%s" width="%s" height="%s" href=%q%s/>`+"\n",
			n.ID, f(a.X), f(a.Y), f(a.Width), f(a.Height), escape(a.ImageURL), tattr)
	}
}

// fillRef returns the fill attribute value for a resolved fill, emitting a
// gradient or pattern def when needed.
func (r *renderer) fillRef(nodeID string, s style.Resolved) string {
	switch s.Fill.Kind {
	case style.FillGradient:
		if s.Fill.Gradient == nil {
			return "none"
		}
		id := "fill-" + nodeID
		r.writeGradientDef(id, *s.Fill.Gradient)
		return "url(#" + id + ")"
	case style.FillImage:
		id := "fill-" + nodeID
		fmt.Fprintf(&r.defs, `<pattern id=%q width="1" height="1" patternContentUnits="objectBoundingBox"><image href=%q width="1" height="1" preserveAspectRatio="xMidYMid slice"/></pattern>`+"\n",
			id, escape(s.Fill.ImageURL))
		return "url(#" + id + ")"
	default:
		if s.Fill.Color == "" {
			return "none"
		}
		return s.Fill.Color
	}
}

func (r *renderer) writeGradientDef(id string, g style.Gradient) {
	if g.Kind == style.GradientRadial {
		fmt.Fprintf(&r.defs, `<radialGradient id=%q>`, id)
		r.writeStops(g.Stops)
		r.defs.WriteString("</radialGradient>\n")
		return
	}
	// Angle 0 points right; the gradient vector rotates around the center.
	rad := g.Angle * math.Pi / 180
	x2 := 0.5 + math.Cos(rad)/2
	y2 := 0.5 + math.Sin(rad)/2
	fmt.Fprintf(&r.defs, `<linearGradient id=%q x1="%s" y1="%s" x2="%s" y2="%s">`,
		id, f(1-x2), f(1-y2), f(x2), f(y2))
	r.writeStops(g.Stops)
	r.defs.WriteString("</linearGradient>\n")
}

func (r *renderer) writeStops(stops []style.GradientStop) {
	for _, st := range stops {
		fmt.Fprintf(&r.defs, `<stop offset="%s" stop-color=%q stop-opacity="%s"/>`,
			f(st.Offset), st.Color, f(st.Opacity))
	}
}

func transformAttr(t scene.Transform) string {
	if t == scene.Identity() {
		return ""
	}
	var parts []string
	if t.X != 0 || t.Y != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s %s)", f(t.X), f(t.Y)))
	}
	if t.Rotate != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s)", f(t.Rotate)))
	}
	if t.Scale != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s)", f(t.Scale)))
	}
	return fmt.Sprintf(" transform=%q", strings.Join(parts, " "))
}

func dashAttr(s style.Resolved) string {
	if s.StrokeDash == "" {
		return ""
	}
	return fmt.Sprintf(" stroke-dasharray=%q", s.StrokeDash)
}

// f formats a float with up to three decimals, trimming trailing zeros.
func f(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return textEscaper.Replace(s)
}
