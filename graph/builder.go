package graph

import "github.com/brunobiangulo/lightningroute/knowledge"

// Builder converts knowledge-point forests into graphs. It keeps no state
// between calls, so a single Builder can serve concurrent requests.
type Builder struct{}

// NewBuilder creates a graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// frame is a pending visit on the traversal stack.
type frame struct {
	point     *knowledge.Point
	parentID  string
	hasParent bool
}

// Build walks every root depth-first, children in their given order, and
// records a node per visited point and an edge per parent/child pair.
//
// Ids are expected to be unique. When one repeats, the node keeps its first
// position and takes the label of the last visit, and an identical
// parent/child pair is recorded once.
func (b *Builder) Build(points []knowledge.Point) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(points)),
		Edges: make([]Edge, 0),
	}
	index := make(map[string]int)
	seenEdges := make(map[Edge]bool)

	stack := make([]frame, 0, len(points))
	for i := len(points) - 1; i >= 0; i-- {
		stack = append(stack, frame{point: &points[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p := f.point

		if i, ok := index[p.ID]; ok {
			g.Nodes[i].Label = p.Title
		} else {
			index[p.ID] = len(g.Nodes)
			g.Nodes = append(g.Nodes, Node{ID: p.ID, Label: p.Title})
		}

		if f.hasParent {
			e := Edge{From: f.parentID, To: p.ID}
			if !seenEdges[e] {
				seenEdges[e] = true
				g.Edges = append(g.Edges, e)
			}
		}

		// Push in reverse so the first child is visited next.
		for i := len(p.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{point: &p.Children[i], parentID: p.ID, hasParent: true})
		}
	}

	return g
}
