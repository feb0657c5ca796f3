package domain

import (
	"fmt"
	"os"

	"github.com/couchcryptid/quake-scenario-etl/internal/geodesy"
	"gopkg.in/yaml.v3"
)

// StableRegion is the reference boundary of the stable continental region.
// It is loaded once and never modified.
type StableRegion struct {
	polygon geodesy.Polygon
}

type boundaryFile struct {
	Lon []float64 `yaml:"lon"`
	Lat []float64 `yaml:"lat"`
}

// NewStableRegion builds a region from parallel vertex lists.
func NewStableRegion(lons, lats []float64) (*StableRegion, error) {
	if len(lons) != len(lats) {
		return nil, fmt.Errorf("stable region: %d lons for %d lats: %w", len(lons), len(lats), ErrConfiguration)
	}
	if len(lons) < 3 {
		return nil, fmt.Errorf("stable region: need at least 3 vertices, got %d: %w", len(lons), ErrConfiguration)
	}
	return &StableRegion{polygon: geodesy.Polygon{
		Lons: append([]float64(nil), lons...),
		Lats: append([]float64(nil), lats...),
	}}, nil
}

// LoadStableRegion reads a boundary file holding "lon" and "lat" arrays.
// The file may be JSON or YAML.
func LoadStableRegion(path string) (*StableRegion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stable boundary %s: %v: %w", path, err, ErrConfiguration)
	}
	var f boundaryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse stable boundary %s: %v: %w", path, err, ErrConfiguration)
	}
	return NewStableRegion(f.Lon, f.Lat)
}

// Contains reports whether (lon, lat) is inside the stable region.
func (r *StableRegion) Contains(lon, lat float64) bool {
	return r.polygon.Contains(lon, lat)
}
