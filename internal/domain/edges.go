package domain

import "fmt"

// Edges holds the top and bottom traces of a rupture. Index i on Top and
// index i on Bottom bound the same along-strike position.
type Edges struct {
	Top    []Point `json:"top"`
	Bottom []Point `json:"bottom"`
}

// ExtractEdges builds the top and bottom traces from quads, two points per
// quad per edge. A reversed quad contributes its corners back to front so
// that every trace runs in one direction. Shared boundary vertices are kept.
// A nil reversed slice means no quad is reversed.
func ExtractEdges(quads []Quad, reversed []bool) (Edges, error) {
	if reversed != nil && len(reversed) != len(quads) {
		return Edges{}, fmt.Errorf("extract edges: %d reversed flags for %d quads: %w",
			len(reversed), len(quads), ErrInvalidGeometry)
	}

	edges := Edges{
		Top:    make([]Point, 0, 2*len(quads)),
		Bottom: make([]Point, 0, 2*len(quads)),
	}
	for i, q := range quads {
		if reversed != nil && reversed[i] {
			edges.Top = append(edges.Top, q[1], q[0])
			edges.Bottom = append(edges.Bottom, q[2], q[3])
			continue
		}
		edges.Top = append(edges.Top, q[0], q[1])
		edges.Bottom = append(edges.Bottom, q[3], q[2])
	}
	return edges, nil
}

// Points returns the top trace followed by the bottom trace.
func (e Edges) Points() []Point {
	out := make([]Point, 0, len(e.Top)+len(e.Bottom))
	out = append(out, e.Top...)
	return append(out, e.Bottom...)
}
