package geodesy

import "math"

// EarthRadiusKm is the mean earth radius used by the spherical helpers.
const EarthRadiusKm = 6371.0

// Azimuth returns the initial bearing in degrees, [0, 360), of the great
// circle from (lon1, lat1) to (lon2, lat2). North is 0, east is 90.
func Azimuth(lon1, lat1, lon2, lat2 float64) float64 {
	l1, p1 := lon1*degToRad, lat1*degToRad
	l2, p2 := lon2*degToRad, lat2*degToRad

	cosLat2 := math.Cos(p2)
	trueCourse := math.Atan2(
		math.Sin(l1-l2)*cosLat2,
		math.Cos(p1)*math.Sin(p2)-math.Sin(p1)*cosLat2*math.Cos(l1-l2),
	) * radToDeg

	return math.Mod(360-trueCourse, 360)
}

// PointAt returns the point reached by travelling distanceKm along the great
// circle leaving p at the given azimuth. Depth is carried through unchanged.
func PointAt(p Point, azimuth, distanceKm float64) Point {
	lat1 := p.Lat * degToRad
	lon1 := p.Lon * degToRad
	az := azimuth * degToRad
	d := distanceKm / EarthRadiusKm

	sinLat1, cosLat1 := math.Sin(lat1), math.Cos(lat1)
	sinD, cosD := math.Sin(d), math.Cos(d)

	lat2 := math.Asin(sinLat1*cosD + cosLat1*sinD*math.Cos(az))
	lon2 := lon1 + math.Atan2(math.Sin(az)*sinD*cosLat1, cosD-sinLat1*math.Sin(lat2))

	return Point{
		Lon:   NormalizeLongitude(lon2 * radToDeg),
		Lat:   lat2 * radToDeg,
		Depth: p.Depth,
	}
}

// NormalizeLongitude wraps a longitude into [-180, 180).
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
