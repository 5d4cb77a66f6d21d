// Package scene assembles chart geometry into a renderable node tree.
//
// The scene graph has a fixed shape: a root holding a ring of slice
// groups, a label layer, an optional center container for donuts, and an
// optional annotation layer. Every node carries a kind tag from a closed
// set; consumers dispatch exhaustively on it rather than via inheritance.
//
// Node identity is structural: ids derive deterministically from the
// owning slice or annotation id plus a fixed per-role suffix, so a rebuilt
// graph can be diffed against its predecessor by id. Nodes own their
// children; ParentID is a back-reference resolved through the graph's flat
// lookup table and never a reverse pointer, which keeps the ownership
// graph acyclic.
package scene
