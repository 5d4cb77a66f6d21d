// Package geom computes the polar geometry of a pie or donut chart.
//
// The package covers two pipeline stages. ComputeSlices turns processed
// slice data into per-slice angular spans, radii, centroids, edge points,
// and SVG path data, honoring per-slice spatial overrides. PlaceLabels then
// derives one label anchor per slice and, for outside anchors, a leader
// line connecting the slice edge to the label.
//
// Both entry points are total functions: degenerate input (zero slices,
// collapsed angular spans, zero radii) is expressed in the output data
// model — typically as an empty path string — never as an error.
//
// Angles are in radians. The coordinate convention is the usual screen
// space one: x grows right, y grows down, and positive angles sweep
// clockwise. A start angle of -π/2 places the first slice at twelve
// o'clock.
package geom
