package geom

import "github.com/pieforge/pieforge/pkg/board"

// State bundles everything the geometry stages produced for one pipeline
// run, together with the config and overrides that produced it. It is the
// input of the scene graph builder and part of the pipeline's public
// output, letting the editor surface correlate geometry with the settings
// behind it.
type State struct {
	Config      Config                    `json:"config"`
	Slices      []SliceGeometry           `json:"slices"`
	Labels      []LabelGeometry           `json:"labels"`
	Leaders     []LeaderLineGeometry      `json:"leaders"`
	Annotations map[string]board.Annotation `json:"annotations,omitempty"`
	Overrides   board.Overrides           `json:"overrides"`
}
