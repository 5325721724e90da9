// Package knowledge asks a language model to decompose text into a forest of
// knowledge points and validates the answer.
package knowledge

// Point is one node of the extracted hierarchy.
type Point struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Children []Point `json:"children"`
}

// Count returns the number of points in the forest, duplicates included.
func Count(points []Point) int {
	n := 0
	Walk(points, func(Point, string, bool) { n++ })
	return n
}

// Walk visits every point depth-first, children in order. parentID is only
// meaningful when hasParent is true.
func Walk(points []Point, fn func(p Point, parentID string, hasParent bool)) {
	var visit func(p Point, parentID string, hasParent bool)
	visit = func(p Point, parentID string, hasParent bool) {
		fn(p, parentID, hasParent)
		for _, c := range p.Children {
			visit(c, p.ID, true)
		}
	}
	for _, p := range points {
		visit(p, "", false)
	}
}
