// Package svg renders a computed scene graph to an SVG document.
//
// The renderer walks the tree in child order, so paint order matches the
// builder's ordering guarantees: ring before labels, labels before
// annotations. Each element carries its scene node id, which lets
// embedding surfaces correlate DOM elements with scene nodes.
package svg
