package board

// SliceOverride adjusts the spatial properties of a single slice.
// All fields are optional; nil means "use the computed value".
type SliceOverride struct {
	// InnerRadius replaces the config inner radius for this slice.
	InnerRadius *float64 `json:"innerRadius,omitempty"`
	// OuterRadius replaces the config outer radius for this slice.
	OuterRadius *float64 `json:"outerRadius,omitempty"`
	// OuterRadiusOffset is added to the resolved outer radius.
	OuterRadiusOffset *float64 `json:"outerRadiusOffset,omitempty"`
	// Explode displaces the slice away from the chart center along its
	// mid-angle by the given distance.
	Explode *float64 `json:"explode,omitempty"`
	// CornerRadius replaces the config corner radius for this slice.
	CornerRadius *float64 `json:"cornerRadius,omitempty"`
}

// LabelOverride adjusts placement of a single slice label.
type LabelOverride struct {
	// AnchorMode replaces the config default anchor mode
	// ("centroid", "edge", or "outside").
	AnchorMode *string `json:"anchorMode,omitempty"`
	// OffsetX and OffsetY shift the computed anchor point.
	OffsetX *float64 `json:"offsetX,omitempty"`
	OffsetY *float64 `json:"offsetY,omitempty"`
	// Text replaces the slice label text.
	Text *string `json:"text,omitempty"`
	// Hidden suppresses the label entirely.
	Hidden *bool `json:"hidden,omitempty"`
}

// Overrides aggregates the three caller-owned override containers.
// The zero value is usable; nil maps behave as empty.
type Overrides struct {
	Slices      map[string]SliceOverride `json:"slices,omitempty"`
	Labels      map[string]LabelOverride `json:"labels,omitempty"`
	Annotations map[string]Annotation    `json:"annotations,omitempty"`
}

// Slice returns the override for a slice id, if present.
func (o Overrides) Slice(id string) (SliceOverride, bool) {
	ov, ok := o.Slices[id]
	return ov, ok
}

// Label returns the override for a slice's label, if present.
func (o Overrides) Label(id string) (LabelOverride, bool) {
	ov, ok := o.Labels[id]
	return ov, ok
}

// WithSlice returns a copy of the overrides with the slice override for id
// replaced. The receiver is not modified.
func (o Overrides) WithSlice(id string, ov SliceOverride) Overrides {
	out := o
	out.Slices = cloneWith(o.Slices, id, ov)
	return out
}

// WithLabel returns a copy of the overrides with the label override for id
// replaced. The receiver is not modified.
func (o Overrides) WithLabel(id string, ov LabelOverride) Overrides {
	out := o
	out.Labels = cloneWith(o.Labels, id, ov)
	return out
}

// WithAnnotation returns a copy of the overrides with the annotation
// replaced under its own id. The receiver is not modified.
func (o Overrides) WithAnnotation(a Annotation) Overrides {
	out := o
	out.Annotations = cloneWith(o.Annotations, a.ID, a)
	return out
}

// Without returns a copy of the overrides with every entry for id removed
// from all three containers. Used when a slice or annotation disappears.
func (o Overrides) Without(id string) Overrides {
	out := o
	out.Slices = cloneWithout(o.Slices, id)
	out.Labels = cloneWithout(o.Labels, id)
	out.Annotations = cloneWithout(o.Annotations, id)
	return out
}

func cloneWith[V any](m map[string]V, id string, v V) map[string]V {
	out := make(map[string]V, len(m)+1)
	for k, val := range m {
		out[k] = val
	}
	out[id] = v
	return out
}

func cloneWithout[V any](m map[string]V, id string) map[string]V {
	if _, ok := m[id]; !ok {
		return m
	}
	out := make(map[string]V, len(m))
	for k, val := range m {
		if k != id {
			out[k] = val
		}
	}
	return out
}

// Float returns a pointer to v. Convenience for building overrides.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v. Convenience for building overrides.
func String(v string) *string { return &v }

// Bool returns a pointer to v. Convenience for building overrides.
func Bool(v bool) *bool { return &v }
