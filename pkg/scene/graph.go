package scene

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pieforge/pieforge/pkg/board"
	"github.com/pieforge/pieforge/pkg/geom"
)

var (
	// ErrDanglingParent is returned by [Graph.Validate] when a node's
	// ParentID does not resolve through the lookup table.
	ErrDanglingParent = errors.New("parent id does not resolve to a node")

	// ErrNotATree is returned by [Graph.Validate] when a node is reachable
	// through more than one ownership path.
	ErrNotATree = errors.New("node set does not form a tree")
)

// Well-known structural node ids.
const (
	IDRoot            = "root"
	IDRing            = "ring"
	IDLabelLayer      = "labels"
	IDCenterGroup     = "center"
	IDCenterContent   = "center-content"
	IDAnnotationLayer = "annotations"
)

// Graph is the scene tree plus a flat id → node lookup table populated
// during the same traversal that applies transform overrides.
type Graph struct {
	Root  *Node            `json:"root"`
	Nodes map[string]*Node `json:"-"`
}

// Lookup returns the node with the given id, if present.
func (g *Graph) Lookup(id string) (*Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.Nodes) }

// Build constructs the scene graph for one pipeline run.
//
// The hierarchy is fixed: root → ring → one slice group per slice (arc
// leaf + percentage leaf); root → label layer (label leaf and, where the
// placer produced one, leader leaf per slice); root → center group with a
// content leaf, present only for donuts (inner radius > 0); root →
// annotation layer with one leaf per annotation, present only when
// annotations exist. Annotation leaves are ordered by id so rebuilt graphs
// are deterministic.
//
// After construction the tree is traversed once, merging any transform
// override whose key matches a node id and filling the flat lookup table.
// An override keyed by an id that does not occur is silently ignored.
func Build(state geom.State, transforms map[string]TransformOverride) *Graph {
	root := newNode(IDRoot, KindRoot, "")
	ring := newNode(IDRing, KindRing, "")
	root.Children = append(root.Children, ring)

	for _, s := range state.Slices {
		sg := buildSliceGroup(s)
		ring.Children = append(ring.Children, sg)
	}

	labelLayer := newNode(IDLabelLayer, KindLabelLayer, "")
	root.Children = append(root.Children, labelLayer)

	leadersBySlice := make(map[string]geom.LeaderLineGeometry, len(state.Leaders))
	for _, ll := range state.Leaders {
		leadersBySlice[ll.SliceID] = ll
	}
	for i := range state.Labels {
		lg := state.Labels[i]
		label := newNode(lg.SliceID+"-label-0", KindLabel, lg.SliceID)
		label.Label = &state.Labels[i]
		label.Interactive = true
		label.Visible = !lg.Hidden
		labelLayer.Children = append(labelLayer.Children, label)

		if ll, ok := leadersBySlice[lg.SliceID]; ok {
			leader := newNode(lg.SliceID+"-leader-0", KindLeaderLine, lg.SliceID)
			leader.Leader = &ll
			labelLayer.Children = append(labelLayer.Children, leader)
		}
	}

	if state.Config.InnerRadius > 0 {
		center := newNode(IDCenterGroup, KindCenterGroup, "")
		content := newNode(IDCenterContent, KindCenterContent, "")
		content.Text = &TextData{Anchor: state.Config.Center}
		center.Children = append(center.Children, content)
		root.Children = append(root.Children, center)
	}

	if len(state.Annotations) > 0 {
		layer := newNode(IDAnnotationLayer, KindAnnotationLayer, "")
		ids := make([]string, 0, len(state.Annotations))
		for id := range state.Annotations {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			a := state.Annotations[id]
			leaf := newNode(id, annotationKind(a.Type), id)
			leaf.Annotation = &a
			leaf.Interactive = true
			layer.Children = append(layer.Children, leaf)
		}
		root.Children = append(root.Children, layer)
	}

	g := &Graph{Root: root, Nodes: make(map[string]*Node)}
	g.finalize(root, "", transforms)
	return g
}

// buildSliceGroup assembles one slice's subtree: the group node, its arc
// leaf, and its percentage leaf anchored at the slice centroid.
func buildSliceGroup(s geom.SliceGeometry) *Node {
	sg := newNode(s.SliceID+"-group", KindSliceGroup, s.SliceID)

	arc := newNode(s.SliceID+"-arc", KindArc, s.SliceID)
	sc := s
	arc.Arc = &sc
	arc.Interactive = true

	pct := newNode(s.SliceID+"-pct", KindPercentLabel, s.SliceID)
	pct.Text = &TextData{
		Text:   FormatPercent(s.Percentage),
		Anchor: s.Centroid,
	}

	sg.Children = append(sg.Children, arc, pct)
	return sg
}

// finalize walks the tree depth first, recording parent ids, merging
// transform overrides, and populating the flat lookup table.
func (g *Graph) finalize(n *Node, parentID string, transforms map[string]TransformOverride) {
	n.ParentID = parentID
	if ov, ok := transforms[n.ID]; ok {
		n.Transform = ov.Apply(n.Transform)
	}
	g.Nodes[n.ID] = n
	for _, c := range n.Children {
		g.finalize(c, n.ID, transforms)
	}
}

// Validate checks the structural invariants of the graph: the root has no
// parent, every other node's ParentID resolves through the lookup table to
// the node that owns it, and each node is owned exactly once.
func (g *Graph) Validate() error {
	if g.Root == nil {
		return fmt.Errorf("scene graph has no root")
	}
	if g.Root.ParentID != "" {
		return fmt.Errorf("root node has parent %q", g.Root.ParentID)
	}

	seen := make(map[string]bool, len(g.Nodes))
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if seen[n.ID] {
			return fmt.Errorf("%w: %s", ErrNotATree, n.ID)
		}
		seen[n.ID] = true
		for _, c := range n.Children {
			if _, ok := g.Nodes[c.ParentID]; !ok {
				return fmt.Errorf("%w: %s -> %q", ErrDanglingParent, c.ID, c.ParentID)
			}
			if c.ParentID != n.ID {
				return fmt.Errorf("%w: %s claims parent %q inside %q", ErrNotATree, c.ID, c.ParentID, n.ID)
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(g.Root); err != nil {
		return err
	}
	if len(seen) != len(g.Nodes) {
		return fmt.Errorf("%w: lookup table has %d nodes, tree has %d", ErrNotATree, len(g.Nodes), len(seen))
	}
	return nil
}

// Reindex rebuilds the flat lookup table from the tree. The table is not
// serialized, so a graph decoded from JSON must be reindexed before use.
func (g *Graph) Reindex() {
	g.Nodes = make(map[string]*Node)
	g.Walk(func(n *Node) {
		g.Nodes[n.ID] = n
	})
}

// Walk visits every node depth first in child order, root included.
func (g *Graph) Walk(fn func(*Node)) {
	var visit func(n *Node)
	visit = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	if g.Root != nil {
		visit(g.Root)
	}
}

// FormatPercent renders a percentage for display with at most one decimal
// place, dropping a trailing ".0".
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + "%"
}

func newNode(id string, kind Kind, dataID string) *Node {
	return &Node{
		ID:        id,
		Kind:      kind,
		DataID:    dataID,
		Transform: Identity(),
		Visible:   true,
	}
}

func annotationKind(t board.AnnotationType) Kind {
	switch t {
	case board.AnnotationCircle:
		return KindAnnotationCircle
	case board.AnnotationRect:
		return KindAnnotationRect
	case board.AnnotationText:
		return KindAnnotationText
	case board.AnnotationIcon:
		return KindAnnotationIcon
	case board.AnnotationImage:
		return KindAnnotationImage
	default:
		// Unknown tags should have been rejected at the validation
		// boundary; render them as plain rects rather than failing.
		return KindAnnotationRect
	}
}
