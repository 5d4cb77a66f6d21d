package board

import "github.com/google/uuid"

// AnnotationType tags the shape of a freeform board object.
type AnnotationType string

// Supported annotation types.
const (
	AnnotationCircle AnnotationType = "circle"
	AnnotationRect   AnnotationType = "rect"
	AnnotationText   AnnotationType = "text"
	AnnotationIcon   AnnotationType = "icon"
	AnnotationImage  AnnotationType = "image"
)

// Annotation is a freeform object placed on the board alongside the chart.
// Annotations are owned by the override layer, not by geometry: the pipeline
// copies them into the scene graph but never creates or removes them.
type Annotation struct {
	ID   string         `json:"id"`
	Type AnnotationType `json:"type"`

	// Position of the annotation. For circles this is the center; for
	// rects, text, icons, and images it is the top-left corner.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Size. Radius applies to circles; Width/Height to the rest.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Radius float64 `json:"radius,omitempty"`

	// Content, depending on Type.
	Text     string `json:"text,omitempty"`
	Icon     string `json:"icon,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`

	// Meta carries free-form authoring metadata (locked flags, z-hints).
	// The pipeline passes it through untouched.
	Meta map[string]any `json:"meta,omitempty"`
}

// NewAnnotation creates an annotation of the given type at (x, y) with a
// fresh unique id. The id is stable for the lifetime of the board; scene
// node identity for the annotation derives from it.
func NewAnnotation(typ AnnotationType, x, y float64) Annotation {
	return Annotation{
		ID:   "ann-" + uuid.NewString(),
		Type: typ,
		X:    x,
		Y:    y,
	}
}
