package dialect

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

type featureCollection struct {
	Type     string          `json:"type"`
	Metadata geojsonMetadata `json:"metadata"`
	Features []feature       `json:"features"`
}

type geojsonMetadata struct {
	ID        flexString `json:"id"`
	LocString string     `json:"locstring"`
	Mag       float64    `json:"mag"`
	Rake      *float64   `json:"rake"`
	Reference string     `json:"reference"`
}

type feature struct {
	Type     string `json:"type"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates [][][][]float64 `json:"coordinates"`
	} `json:"geometry"`
}

type geojsonParser struct{}

func (geojsonParser) Name() string { return GeoJSON }

// Parse reads the single rupture of a ShakeMap rupture file. Each polygon
// ring is p0 p1 p2 p3 p0 with [lon, lat, depth] vertices and becomes its own
// forward group.
func (geojsonParser) Parse(raw []byte, index []int) ([]domain.Source, error) {
	var fc featureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	if _, err := selectIndices(1, index); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("parse geojson: no features: %w", domain.ErrInvalidGeometry)
	}
	geom := fc.Features[0].Geometry
	if geom.Type != "MultiPolygon" {
		return nil, fmt.Errorf("parse geojson: geometry %q is not a MultiPolygon: %w", geom.Type, domain.ErrInvalidGeometry)
	}

	quads := make([]domain.Quad, 0, len(geom.Coordinates))
	groups := make([]int, 0, len(geom.Coordinates))
	for i, poly := range geom.Coordinates {
		if len(poly) == 0 || len(poly[0]) != 5 {
			return nil, fmt.Errorf("parse geojson: polygon %d is not a closed 5-point ring: %w", i, domain.ErrInvalidGeometry)
		}
		var q domain.Quad
		for j := 0; j < 4; j++ {
			v := poly[0][j]
			if len(v) < 3 {
				return nil, fmt.Errorf("parse geojson: polygon %d vertex %d needs lon, lat, depth: %w", i, j, domain.ErrInvalidGeometry)
			}
			q[j] = domain.Point{Lon: v[0], Lat: v[1], Depth: v[2]}
		}
		quads = append(quads, q)
		groups = append(groups, i)
	}

	md := fc.Metadata
	return []domain.Source{{
		Dialect:    GeoJSON,
		Name:       md.LocString,
		ShortName:  md.LocString,
		ExternalID: string(md.ID),
		Magnitude:  md.Mag,
		Rake:       md.Rake,
		Reference:  md.Reference,
		Quads:      quads,
		Groups:     groups,
	}}, nil
}

func (geojsonParser) Descriptions(raw []byte) ([]string, error) {
	var fc featureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	return []string{fc.Metadata.LocString}, nil
}
