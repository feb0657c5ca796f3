package domain

import (
	"fmt"

	"github.com/couchcryptid/quake-scenario-etl/internal/geodesy"
)

// Point is a geodetic position with depth in km, positive down.
type Point = geodesy.Point

// Quad is one planar rupture patch. Corners run top-left, top-right,
// bottom-right, bottom-left.
type Quad [4]Point

// Origin is the event origin a rupture is parametrized by.
type Origin struct {
	ID        string  `json:"id"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
	Depth     float64 `json:"depth"`
	Magnitude float64 `json:"mag"`
}

// PlaceholderOrigin is the dummy origin used for the first builder pass.
func PlaceholderOrigin() Origin {
	return Origin{}
}

// Rupture is an ordered set of quads grouped into sections. Each group
// carries a reversed flag. A Rupture is read-only once built.
type Rupture struct {
	quads     []Quad
	groups    []int
	reversed  []bool
	reference string
	origin    Origin
}

// NewRupture validates and copies its inputs. groups assigns each quad to a
// group index (nil puts every quad in group 0). reversed holds one flag per
// group (nil means no group is reversed).
func NewRupture(quads []Quad, groups []int, reversed []bool, reference string, origin Origin) (*Rupture, error) {
	if len(quads) == 0 {
		return nil, fmt.Errorf("new rupture: no quads: %w", ErrInvalidGeometry)
	}
	if groups == nil {
		groups = make([]int, len(quads))
	}
	if len(groups) != len(quads) {
		return nil, fmt.Errorf("new rupture: %d group indices for %d quads: %w",
			len(groups), len(quads), ErrInvalidGeometry)
	}

	ngroups := 0
	for i, g := range groups {
		if g < 0 {
			return nil, fmt.Errorf("new rupture: quad %d has negative group %d: %w", i, g, ErrInvalidGeometry)
		}
		ngroups = max(ngroups, g+1)
	}
	if reversed == nil {
		reversed = make([]bool, ngroups)
	}
	if len(reversed) < ngroups {
		return nil, fmt.Errorf("new rupture: %d reversed flags for %d groups: %w",
			len(reversed), ngroups, ErrInvalidGeometry)
	}

	for i, q := range quads {
		for j, p := range q {
			if !p.IsFinite() {
				return nil, fmt.Errorf("new rupture: quad %d corner %d is not finite: %w", i, j, ErrInvalidGeometry)
			}
		}
	}

	return &Rupture{
		quads:     append([]Quad(nil), quads...),
		groups:    append([]int(nil), groups...),
		reversed:  append([]bool(nil), reversed...),
		reference: reference,
		origin:    origin,
	}, nil
}

// Quads returns a copy of the quads in along-strike order.
func (r *Rupture) Quads() []Quad {
	return append([]Quad(nil), r.quads...)
}

// Groups returns a copy of the per-quad group indices.
func (r *Rupture) Groups() []int {
	return append([]int(nil), r.groups...)
}

// GroupReversed returns a copy of the per-group reversed flags.
func (r *Rupture) GroupReversed() []bool {
	return append([]bool(nil), r.reversed...)
}

// QuadReversed expands the group flags to one flag per quad.
func (r *Rupture) QuadReversed() []bool {
	out := make([]bool, len(r.quads))
	for i, g := range r.groups {
		out[i] = r.reversed[g]
	}
	return out
}

func (r *Rupture) Reference() string { return r.reference }

func (r *Rupture) Origin() Origin { return r.origin }

// Corners returns every quad corner in quad order.
func (r *Rupture) Corners() []Point {
	out := make([]Point, 0, 4*len(r.quads))
	for _, q := range r.quads {
		out = append(out, q[:]...)
	}
	return out
}

// Edges extracts the top and bottom traces honoring group reversal.
func (r *Rupture) Edges() (Edges, error) {
	return ExtractEdges(r.quads, r.QuadReversed())
}
