package geom

import (
	"fmt"
	"math"
	"strings"
)

// fullCircleEpsilon is the slack under which a padded span is treated as
// covering the entire circle. An SVG arc whose endpoints coincide renders
// nothing, so full circles need a dedicated two-arc form.
const fullCircleEpsilon = 1e-9

// fc formats a coordinate for path data with three decimal places, enough
// for sub-pixel accuracy without unstable trailing digits.
func fc(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	// Avoid the distinct "-0.000" spelling produced by negative zero.
	if s == "-0.000" {
		return "0.000"
	}
	return s
}

// pathBuilder accumulates SVG path commands.
type pathBuilder struct {
	b strings.Builder
}

func (p *pathBuilder) moveTo(pt Point) {
	fmt.Fprintf(&p.b, "M %s %s", fc(pt.X), fc(pt.Y))
}

func (p *pathBuilder) lineTo(pt Point) {
	fmt.Fprintf(&p.b, " L %s %s", fc(pt.X), fc(pt.Y))
}

// arcTo appends an elliptical arc of radius r to pt. largeArc selects the
// long way around; sweep selects the drawing direction (1 = clockwise in
// screen coordinates).
func (p *pathBuilder) arcTo(r float64, largeArc, sweep int, pt Point) {
	fmt.Fprintf(&p.b, " A %s %s 0 %d %d %s %s", fc(r), fc(r), largeArc, sweep, fc(pt.X), fc(pt.Y))
}

func (p *pathBuilder) close() {
	p.b.WriteString(" Z")
}

func (p *pathBuilder) String() string {
	return p.b.String()
}

// slicePath generates SVG path data for one slice covering [a1, a2] around
// center c. The angles must already include pad-angle trimming. An empty
// string is returned when the span has collapsed.
//
// Three shapes are emitted:
//   - a filled wedge when the inner radius is zero,
//   - a ring segment when the inner radius is positive,
//   - a full-circle variant built from two half arcs when the span covers
//     the whole circle, since a single arc with coincident endpoints would
//     collapse to nothing.
//
// A positive corner radius replaces each corner with a tangent arc; a
// closed full circle has no corners, so the radius is ignored there.
func slicePath(c Point, inner, outer, a1, a2, corner float64) string {
	span := a2 - a1
	if span <= 0 {
		return ""
	}
	if span >= 2*math.Pi-fullCircleEpsilon {
		return fullCirclePath(c, inner, outer, a1)
	}
	if cr := roundedCornerRadius(corner, inner, outer, span); cr > 0 {
		return roundedSlicePath(c, inner, outer, a1, a2, cr)
	}

	largeArc := 0
	if span > math.Pi {
		largeArc = 1
	}

	var p pathBuilder
	if inner <= 0 {
		// Filled wedge: center, out to the rim, arc, back to center.
		p.moveTo(c)
		p.lineTo(PointOnCircle(c, outer, a1))
		p.arcTo(outer, largeArc, 1, PointOnCircle(c, outer, a2))
		p.close()
		return p.String()
	}

	// Ring segment: along the outer rim, inward, back along the inner rim.
	p.moveTo(PointOnCircle(c, outer, a1))
	p.arcTo(outer, largeArc, 1, PointOnCircle(c, outer, a2))
	p.lineTo(PointOnCircle(c, inner, a2))
	p.arcTo(inner, largeArc, 0, PointOnCircle(c, inner, a1))
	p.close()
	return p.String()
}

// roundedCornerRadius shrinks a requested corner radius until both corner
// arcs of each rim fit: within half the radial thickness, and within half
// the angular span at the rim where the corner sits. Returns 0 when
// nothing usable remains.
func roundedCornerRadius(cr, inner, outer, span float64) float64 {
	if cr <= 0 {
		return 0
	}
	if limit := (outer - inner) / 2; cr > limit {
		cr = limit
	}
	sinHalf := math.Sin(span / 2)
	if limit := outer * sinHalf / (1 + sinHalf); cr > limit {
		cr = limit
	}
	if inner > 0 && sinHalf < 1 {
		if limit := inner * sinHalf / (1 - sinHalf); cr > limit {
			cr = limit
		}
	}
	if cr < 1e-6 {
		return 0
	}
	return cr
}

// roundedSlicePath emits the slice shape with every corner replaced by a
// tangent arc of radius cr. A corner circle sits cr inside its rim, offset
// from the radial edge by the angle that makes it tangent to both; the rim
// arc and the straight edge are shortened to the tangent points.
func roundedSlicePath(c Point, inner, outer, a1, a2, cr float64) string {
	span := a2 - a1

	// Outer corners: centers at radius outer-cr, angular offset do from
	// each edge, edge tangent at radius eo on the edge itself.
	do := math.Asin(cr / (outer - cr))
	eo := (outer - cr) * math.Cos(do)

	outerLarge := 0
	if span-2*do > math.Pi {
		outerLarge = 1
	}

	var p pathBuilder
	if inner <= 0 {
		p.moveTo(c)
		p.lineTo(PointOnCircle(c, eo, a1))
		p.arcTo(cr, 0, 1, PointOnCircle(c, outer, a1+do))
		p.arcTo(outer, outerLarge, 1, PointOnCircle(c, outer, a2-do))
		p.arcTo(cr, 0, 1, PointOnCircle(c, eo, a2))
		p.close()
		return p.String()
	}

	// Inner corners: centers at radius inner+cr, offset di from each edge.
	di := math.Asin(cr / (inner + cr))
	ei := (inner + cr) * math.Cos(di)

	innerLarge := 0
	if span-2*di > math.Pi {
		innerLarge = 1
	}

	p.moveTo(PointOnCircle(c, eo, a1))
	p.arcTo(cr, 0, 1, PointOnCircle(c, outer, a1+do))
	p.arcTo(outer, outerLarge, 1, PointOnCircle(c, outer, a2-do))
	p.arcTo(cr, 0, 1, PointOnCircle(c, eo, a2))
	p.lineTo(PointOnCircle(c, ei, a2))
	p.arcTo(cr, 0, 1, PointOnCircle(c, inner, a2-di))
	p.arcTo(inner, innerLarge, 0, PointOnCircle(c, inner, a1+di))
	p.arcTo(cr, 0, 1, PointOnCircle(c, ei, a1))
	p.close()
	return p.String()
}

// fullCirclePath draws a complete circle (or annulus) anchored at angle a.
// The outer rim is two clockwise half arcs; for an annulus the inner rim is
// drawn counter-clockwise so the nonzero fill rule leaves the hole open.
func fullCirclePath(c Point, inner, outer, a float64) string {
	var p pathBuilder

	oStart := PointOnCircle(c, outer, a)
	oHalf := PointOnCircle(c, outer, a+math.Pi)
	p.moveTo(oStart)
	p.arcTo(outer, 1, 1, oHalf)
	p.arcTo(outer, 1, 1, oStart)
	p.close()

	if inner > 0 {
		iStart := PointOnCircle(c, inner, a)
		iHalf := PointOnCircle(c, inner, a+math.Pi)
		p.moveTo(iStart)
		p.arcTo(inner, 1, 0, iHalf)
		p.arcTo(inner, 1, 0, iStart)
		p.close()
	}

	return p.String()
}

// linePath generates path data for a straight two-point connector.
func linePath(from, to Point) string {
	var p pathBuilder
	p.moveTo(from)
	p.lineTo(to)
	return p.String()
}
