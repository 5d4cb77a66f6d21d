// Package render groups the artifact renderers for computed charts.
//
// Rendering consumes a finished scene graph plus its resolved styles and
// produces bytes in a concrete output format. The [svg] subpackage is the
// canonical renderer; JSON export lives in the pipeline package because it
// serializes the full result rather than a drawing.
//
// Renderers never recompute geometry or styles. Everything they need is
// already on the scene nodes, so a renderer is a pure serialization pass.
package render
