package scene

import (
	"github.com/pieforge/pieforge/pkg/board"
	"github.com/pieforge/pieforge/pkg/geom"
)

// Kind tags a scene node with its role in the chart hierarchy.
type Kind string

// The closed set of node kinds. Structural kinds group children; leaf
// kinds carry the payload a painter consumes.
const (
	KindRoot          Kind = "root"
	KindRing          Kind = "ring"
	KindSliceGroup    Kind = "slice-group"
	KindArc           Kind = "arc"
	KindPercentLabel  Kind = "percent-label"
	KindLabelLayer    Kind = "label-layer"
	KindLabel         Kind = "label"
	KindLeaderLine    Kind = "leader-line"
	KindCenterGroup   Kind = "center-group"
	KindCenterContent Kind = "center-content"

	KindAnnotationLayer  Kind = "annotation-layer"
	KindAnnotationCircle Kind = "annotation-circle"
	KindAnnotationRect   Kind = "annotation-rect"
	KindAnnotationText   Kind = "annotation-text"
	KindAnnotationIcon   Kind = "annotation-icon"
	KindAnnotationImage  Kind = "annotation-image"
)

// Transform is a node's local 2D transform. The identity is
// {X: 0, Y: 0, Scale: 1, Rotate: 0}.
type Transform struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Scale  float64 `json:"scale"`
	Rotate float64 `json:"rotate"`
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// TransformOverride is a partial transform supplied by the theme, keyed by
// node id. Present fields win over the node's base transform; absent
// fields keep the base value.
type TransformOverride struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Scale  *float64 `json:"scale,omitempty"`
	Rotate *float64 `json:"rotate,omitempty"`
}

// Apply merges the override over a base transform, field by field.
func (o TransformOverride) Apply(base Transform) Transform {
	out := base
	if o.X != nil {
		out.X = *o.X
	}
	if o.Y != nil {
		out.Y = *o.Y
	}
	if o.Scale != nil {
		out.Scale = *o.Scale
	}
	if o.Rotate != nil {
		out.Rotate = *o.Rotate
	}
	return out
}

// TextData is the payload of label-like leaves.
type TextData struct {
	Text   string     `json:"text"`
	Anchor geom.Point `json:"anchor"`
	Side   string     `json:"side,omitempty"`
}

// Node is one addressable entity in the rendered hierarchy.
//
// A node owns its Children; ParentID is a lookup key into the graph's
// flat node table, used only for upward navigation. DataID links leaf
// nodes back to the slice or annotation they visualize.
type Node struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	ParentID string  `json:"parentId,omitempty"`
	Children []*Node `json:"children,omitempty"`
	DataID   string  `json:"dataId,omitempty"`

	Transform   Transform `json:"transform"`
	Interactive bool      `json:"interactive"`
	Visible     bool      `json:"visible"`

	// Per-kind payload. Exactly one is non-nil for leaf kinds; all are
	// nil for structural kinds.
	Arc        *geom.SliceGeometry      `json:"arc,omitempty"`
	Label      *geom.LabelGeometry      `json:"label,omitempty"`
	Leader     *geom.LeaderLineGeometry `json:"leader,omitempty"`
	Text       *TextData                `json:"text,omitempty"`
	Annotation *board.Annotation        `json:"annotation,omitempty"`
}

// IsAnnotation reports whether the node is an annotation leaf.
func (n *Node) IsAnnotation() bool {
	switch n.Kind {
	case KindAnnotationCircle, KindAnnotationRect, KindAnnotationText,
		KindAnnotationIcon, KindAnnotationImage:
		return true
	}
	return false
}
