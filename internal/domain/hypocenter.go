package domain

import (
	"fmt"
	"math"

	"github.com/couchcryptid/quake-scenario-etl/internal/geodesy"
)

// LocateHypocenter places a point at the given along-strike and down-dip
// fractions of the surface bounded by top and bottom. Both traces are
// converted to ECEF and parametrized by their own normalized cumulative
// length, so the along-strike position of each edge is resolved
// independently before interpolating down dip.
func LocateHypocenter(top, bottom []Point, alongStrike, downDip float64) (Point, error) {
	if len(top) != len(bottom) {
		return Point{}, fmt.Errorf("locate hypocenter: top has %d points, bottom has %d: %w",
			len(top), len(bottom), ErrInvalidGeometry)
	}
	if len(top) < 2 {
		return Point{}, fmt.Errorf("locate hypocenter: need at least 2 points per edge, got %d: %w",
			len(top), ErrInvalidGeometry)
	}
	if !inUnitInterval(alongStrike) || !inUnitInterval(downDip) {
		return Point{}, fmt.Errorf("locate hypocenter: fractions (%g, %g) outside [0, 1]: %w",
			alongStrike, downDip, ErrInvalidGeometry)
	}

	topXYZ := toECEF(top)
	botXYZ := toECEF(bottom)

	topDist, err := normalizedPathLength(topXYZ)
	if err != nil {
		return Point{}, fmt.Errorf("locate hypocenter: top edge: %w", err)
	}
	botDist, err := normalizedPathLength(botXYZ)
	if err != nil {
		return Point{}, fmt.Errorf("locate hypocenter: bottom edge: %w", err)
	}

	mp0 := interpolateAlong(topXYZ, topDist, alongStrike)
	mp1 := interpolateAlong(botXYZ, botDist, alongStrike)

	return geodesy.FromECEF(mp0.Lerp(mp1, downDip)), nil
}

func inUnitInterval(v float64) bool {
	return v >= 0 && v <= 1
}

func toECEF(points []Point) []geodesy.Vector {
	out := make([]geodesy.Vector, len(points))
	for i, p := range points {
		out[i] = geodesy.ToECEF(p)
	}
	return out
}

// normalizedPathLength returns the cumulative distance from the first vertex
// at every vertex, scaled so the last value is 1.
func normalizedPathLength(v []geodesy.Vector) ([]float64, error) {
	d := make([]float64, len(v))
	for i := 1; i < len(v); i++ {
		d[i] = d[i-1] + v[i-1].Distance(v[i])
	}
	total := d[len(d)-1]
	if total <= 0 || math.IsNaN(total) {
		return nil, fmt.Errorf("zero-length trace: %w", ErrInvalidGeometry)
	}
	for i := range d {
		d[i] /= total
	}
	d[len(d)-1] = 1
	return d, nil
}

// bracket returns the segment [lo, lo+1] containing frac. lo is the greatest
// index below the last vertex whose distance does not exceed frac, so the
// upper index never runs past the trace.
func bracket(d []float64, frac float64) (lo, hi int) {
	for i := 0; i < len(d)-1; i++ {
		if d[i] <= frac {
			lo = i
		}
	}
	return lo, lo + 1
}

func interpolateAlong(v []geodesy.Vector, d []float64, frac float64) geodesy.Vector {
	lo, hi := bracket(d, frac)
	var t float64
	if width := d[hi] - d[lo]; width > 0 {
		t = (frac - d[lo]) / width
	}
	t = math.Max(0, math.Min(1, t))
	return v[lo].Lerp(v[hi], t)
}
