package geodesy

import "math"

// Orthographic is a spherical orthographic projection centred on a reference
// point. Plane coordinates are kilometres east (x) and north (y) of the centre.
type Orthographic struct {
	lon0    float64
	sinLat0 float64
	cosLat0 float64
}

// NewOrthographic builds a projection centred on (lon0, lat0) in degrees.
func NewOrthographic(lon0, lat0 float64) Orthographic {
	lat := lat0 * degToRad
	return Orthographic{
		lon0:    lon0 * degToRad,
		sinLat0: math.Sin(lat),
		cosLat0: math.Cos(lat),
	}
}

// Forward projects a geodetic position onto the plane.
func (o Orthographic) Forward(lon, lat float64) (x, y float64) {
	lambda := lon*degToRad - o.lon0
	phi := lat * degToRad
	cosPhi := math.Cos(phi)

	x = cosPhi * math.Sin(lambda) * EarthRadiusKm
	y = (o.cosLat0*math.Sin(phi) - o.sinLat0*cosPhi*math.Cos(lambda)) * EarthRadiusKm
	return x, y
}

// Inverse maps plane coordinates back to longitude and latitude in degrees.
// Coordinates must lie within one earth radius of the centre.
func (o Orthographic) Inverse(x, y float64) (lon, lat float64) {
	xx := x / EarthRadiusKm
	yy := y / EarthRadiusKm

	cosC := math.Sqrt(1 - (xx*xx + yy*yy))
	phi := math.Asin(cosC*o.sinLat0 + yy*o.cosLat0)
	lambda := math.Asin(xx / math.Cos(phi))

	return NormalizeLongitude((lambda + o.lon0) * radToDeg), phi * radToDeg
}
