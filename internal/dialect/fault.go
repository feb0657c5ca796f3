package dialect

import (
	"fmt"
	"math"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	"github.com/couchcryptid/quake-scenario-etl/internal/geodesy"
)

// Segment is one top-edge trace segment with the plane hanging below it.
// Angles are degrees, lengths km.
type Segment struct {
	Lon0, Lat0 float64
	Lon1, Lat1 float64
	Ztor       float64
	Width      float64
	Dip        float64
	Strike     float64
}

// QuadsFromTrace builds one quad per segment. Top corners sit on the trace
// at depth Ztor. Bottom corners are displaced Width*cos(Dip) horizontally
// towards Strike+90 and Width*sin(Dip) down.
func QuadsFromTrace(segments []Segment) ([]domain.Quad, error) {
	quads := make([]domain.Quad, 0, len(segments))
	for i, s := range segments {
		q, err := quadFromSegment(s)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		quads = append(quads, q)
	}
	return quads, nil
}

func quadFromSegment(s Segment) (domain.Quad, error) {
	for _, v := range []float64{s.Lon0, s.Lat0, s.Lon1, s.Lat1, s.Ztor, s.Width, s.Dip, s.Strike} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.Quad{}, fmt.Errorf("non-finite segment parameter: %w", domain.ErrInvalidGeometry)
		}
	}
	if s.Dip <= 0 || s.Dip > 90 {
		return domain.Quad{}, fmt.Errorf("dip %g not in (0, 90]: %w", s.Dip, domain.ErrInvalidGeometry)
	}
	if s.Width <= 0 {
		return domain.Quad{}, fmt.Errorf("width %g not positive: %w", s.Width, domain.ErrInvalidGeometry)
	}

	dipRad := s.Dip * math.Pi / 180
	horizontal := s.Width * math.Cos(dipRad)
	vertical := s.Width * math.Sin(dipRad)
	dipDir := math.Mod(s.Strike+90, 360)

	p0 := geodesy.Point{Lon: s.Lon0, Lat: s.Lat0, Depth: s.Ztor}
	p1 := geodesy.Point{Lon: s.Lon1, Lat: s.Lat1, Depth: s.Ztor}
	p2 := geodesy.PointAt(p1, dipDir, horizontal)
	p3 := geodesy.PointAt(p0, dipDir, horizontal)
	p2.Depth += vertical
	p3.Depth += vertical

	return domain.Quad{p0, p1, p2, p3}, nil
}
