// Package graph flattens a knowledge-point forest into the node/edge form
// used to draw a mind map.
package graph

// Node is one mind-map node. ID mirrors the knowledge point id, Label its title.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Edge links a parent node to a child node.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the serializable mind map. Nodes are in first-visit order and
// edges in discovery order.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Roots returns the ids of nodes that are never an edge target, in node order.
func (g *Graph) Roots() []string {
	targets := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		targets[e.To] = true
	}
	var roots []string
	for _, n := range g.Nodes {
		if !targets[n.ID] {
			roots = append(roots, n.ID)
		}
	}
	return roots
}

// Children returns the targets of edges leaving id, in edge order.
func (g *Graph) Children(id string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// Label returns the label of node id and whether the node exists.
func (g *Graph) Label(id string) (string, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n.Label, true
		}
	}
	return "", false
}
