package geodesy

import "math"

// WGS-84 ellipsoid parameters.
const (
	wgs84A  = 6378137.0             // semi-major axis (meters)
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared
)

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// Point is a geodetic position: longitude and latitude in degrees, depth in
// kilometres below the ellipsoid. Values are immutable by convention.
type Point struct {
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Depth float64 `json:"depth"`
}

// IsFinite reports whether all three coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return isFinite(p.Lon) && isFinite(p.Lat) && isFinite(p.Depth)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ToECEF converts a geodetic point to earth-centered Cartesian coordinates.
func ToECEF(p Point) Vector {
	lat := p.Lat * degToRad
	lon := p.Lon * degToRad
	alt := -p.Depth * 1000.0

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Radius of curvature in the prime vertical.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return Vector{
		X: (n + alt) * cosLat * math.Cos(lon),
		Y: (n + alt) * cosLat * math.Sin(lon),
		Z: (n*(1-wgs84E2) + alt) * sinLat,
	}
}

// FromECEF converts earth-centered Cartesian coordinates back to a geodetic
// point using Bowring's iteration. Near-surface points converge well inside
// the fixed iteration count.
func FromECEF(v Vector) Point {
	lon := math.Atan2(v.Y, v.X)
	p := math.Hypot(v.X, v.Y)

	lat := math.Atan2(v.Z, p*(1-wgs84E2))
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
		lat = math.Atan2(v.Z+wgs84E2*n*sinLat, p)
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	var alt float64
	if math.Abs(cosLat) > 1e-10 {
		alt = p/cosLat - n
	} else {
		alt = math.Abs(v.Z)/math.Abs(sinLat) - n*(1-wgs84E2)
	}

	return Point{
		Lon:   lon * radToDeg,
		Lat:   lat * radToDeg,
		Depth: -alt / 1000.0,
	}
}
