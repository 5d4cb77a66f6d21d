package board

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestWithSliceDoesNotMutateReceiver(t *testing.T) {
	base := Overrides{
		Slices: map[string]SliceOverride{
			"alpha": {Explode: Float(10)},
		},
	}

	updated := base.WithSlice("beta", SliceOverride{OuterRadiusOffset: Float(5)})

	if _, ok := base.Slices["beta"]; ok {
		t.Error("WithSlice mutated the receiver")
	}
	if _, ok := updated.Slices["beta"]; !ok {
		t.Error("WithSlice did not add the new entry")
	}
	if _, ok := updated.Slices["alpha"]; !ok {
		t.Error("WithSlice dropped an existing entry")
	}
}

func TestWithLabelReplacesEntry(t *testing.T) {
	base := Overrides{}.WithLabel("alpha", LabelOverride{AnchorMode: String("edge")})
	updated := base.WithLabel("alpha", LabelOverride{AnchorMode: String("outside")})

	if got := *updated.Labels["alpha"].AnchorMode; got != "outside" {
		t.Errorf("anchor mode = %q, want outside", got)
	}
	if got := *base.Labels["alpha"].AnchorMode; got != "edge" {
		t.Errorf("receiver anchor mode changed to %q", got)
	}
}

func TestWithoutRemovesAcrossContainers(t *testing.T) {
	ann := NewAnnotation(AnnotationText, 10, 20)
	o := Overrides{}.
		WithSlice("alpha", SliceOverride{Explode: Float(8)}).
		WithLabel("alpha", LabelOverride{Hidden: Bool(true)}).
		WithAnnotation(ann)

	pruned := o.Without("alpha")
	if _, ok := pruned.Slices["alpha"]; ok {
		t.Error("slice override not removed")
	}
	if _, ok := pruned.Labels["alpha"]; ok {
		t.Error("label override not removed")
	}
	if _, ok := pruned.Annotations[ann.ID]; !ok {
		t.Error("unrelated annotation should survive")
	}

	// Removing an absent id is a no-op that keeps the same maps.
	same := pruned.Without("missing")
	if !reflect.DeepEqual(same.Annotations, pruned.Annotations) {
		t.Error("Without on absent id should not rebuild containers")
	}
}

func TestNewAnnotationIDs(t *testing.T) {
	a := NewAnnotation(AnnotationCircle, 1, 2)
	b := NewAnnotation(AnnotationCircle, 1, 2)

	if a.ID == b.ID {
		t.Error("annotation ids must be unique")
	}
	if !strings.HasPrefix(a.ID, "ann-") {
		t.Errorf("annotation id %q should carry the ann- prefix", a.ID)
	}
	if a.Type != AnnotationCircle || a.X != 1 || a.Y != 2 {
		t.Errorf("unexpected annotation: %+v", a)
	}
}

func TestOverridesJSONRoundTrip(t *testing.T) {
	o := Overrides{
		Slices: map[string]SliceOverride{
			"alpha": {Explode: Float(12), OuterRadius: Float(160)},
		},
		Labels: map[string]LabelOverride{
			"alpha": {AnchorMode: String("outside"), OffsetX: Float(-4)},
		},
		Annotations: map[string]Annotation{
			"ann-1": {ID: "ann-1", Type: AnnotationRect, X: 5, Y: 6, Width: 40, Height: 20},
		},
	}

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Overrides
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(o, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, o)
	}
}
