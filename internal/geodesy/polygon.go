package geodesy

// Polygon is a closed ring of lon/lat vertices. The closing vertex may be
// repeated or omitted.
type Polygon struct {
	Lons []float64
	Lats []float64
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return min(len(p.Lons), len(p.Lats))
}

// Contains reports whether (lon, lat) lies strictly inside the polygon, using
// even-odd ray casting in the lon/lat plane.
func (p Polygon) Contains(lon, lat float64) bool {
	n := p.Len()
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := p.Lons[i], p.Lats[i]
		xj, yj := p.Lons[j], p.Lats[j]
		if (yi > lat) != (yj > lat) {
			xCross := (xj-xi)*(lat-yi)/(yj-yi) + xi
			if lon < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
