// Package style resolves the paint description of scene nodes.
//
// A Theme supplies the palette, background, default typography, and
// two node-keyed override mappings (style and transform). Resolution seeds
// a base style from fixed per-node-kind defaults, merges the theme's
// override for the node id (override fields win unconditionally), and
// coerces the result so that every required field is populated. Downstream
// painters never see an absent field.
//
// Fills are a tagged variant — solid color, gradient, or image — and
// consumers are expected to switch exhaustively on the kind.
package style
