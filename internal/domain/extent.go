package domain

import (
	"fmt"
	"math"

	"github.com/couchcryptid/quake-scenario-etl/internal/geodesy"
)

const maxPaddingKm = 1000.0

// Aspect ratio (height / width) bounds of a map extent.
const (
	maxAspect = 1.25
	minAspect = 0.6
)

// Extent is a geographic map bounding box in degrees.
type Extent struct {
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
}

// PaddingKm returns the minimum distance kept between the rupture and the map
// edge for an event of the given magnitude, capped at 1000 km.
func PaddingKm(magnitude float64, stable bool) float64 {
	var d float64
	switch {
	case stable && magnitude < 6.10:
		d = 100
	case stable:
		d = 63.4*magnitude*magnitude - 465.4*magnitude + 581.3
	case magnitude < 6.48:
		d = 100
	default:
		d = 27.24*magnitude*magnitude - 250.4*magnitude + 579.1
	}
	return math.Min(d, maxPaddingKm)
}

// ComputeExtent estimates the map extent around a hypocenter and optional
// rupture points. The tectonic class comes from the hypocenter position.
// The projection is centred on the midpoint of the rupture bounding box, or
// on the hypocenter when there are no rupture points.
func ComputeExtent(hypo Point, magnitude float64, rupture []Point, region *StableRegion) (Extent, error) {
	if region == nil {
		return Extent{}, fmt.Errorf("compute extent: no stable region: %w", ErrConfiguration)
	}

	points := make([]Point, 0, len(rupture))
	for _, p := range rupture {
		if p.IsFinite() {
			points = append(points, p)
		}
	}
	if len(points) == 0 {
		points = []Point{hypo}
	}

	clon, clat := boundsMidpoint(points)
	proj := geodesy.NewOrthographic(clon, clat)

	pad := PaddingKm(magnitude, region.Contains(hypo.Lon, hypo.Lat))

	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		x, y := proj.Forward(p.Lon, p.Lat)
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
	}
	xmin, xmax, ymin, ymax = boundAspect(xmin-pad, xmax+pad, ymin-pad, ymax+pad)

	lonMin, latMin := proj.Inverse(xmin, ymin)
	lonMax, latMax := proj.Inverse(xmax, ymax)
	return Extent{LonMin: lonMin, LonMax: lonMax, LatMin: latMin, LatMax: latMax}, nil
}

func boundsMidpoint(points []Point) (lon, lat float64) {
	lonMin, lonMax := points[0].Lon, points[0].Lon
	latMin, latMax := points[0].Lat, points[0].Lat
	for _, p := range points[1:] {
		lonMin, lonMax = math.Min(lonMin, p.Lon), math.Max(lonMax, p.Lon)
		latMin, latMax = math.Min(latMin, p.Lat), math.Max(latMax, p.Lat)
	}
	return 0.5 * (lonMin + lonMax), 0.5 * (latMin + latMax)
}

// boundAspect widens or heightens a plane box symmetrically so that
// height/width stays within [minAspect, maxAspect].
func boundAspect(xmin, xmax, ymin, ymax float64) (float64, float64, float64, float64) {
	dx := xmax - xmin
	dy := ymax - ymin
	ar := dy / dx
	if ar > maxAspect {
		ddx := dy/maxAspect - dx
		xmin -= ddx / 2
		xmax += ddx / 2
	}
	if ar < minAspect {
		ddy := dx*minAspect - dy
		ymin -= ddy / 2
		ymax += ddy / 2
	}
	return xmin, xmax, ymin, ymax
}
