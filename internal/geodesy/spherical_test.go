package geodesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAzimuth(t *testing.T) {
	tests := []struct {
		name                   string
		lon1, lat1, lon2, lat2 float64
		want                   float64
	}{
		{"due north", -118, 34, -118, 35, 0},
		{"due south", -118, 35, -118, 34, 180},
		{"due east on equator", 0, 0, 1, 0, 90},
		{"due west on equator", 1, 0, 0, 0, 270},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Azimuth(tc.lon1, tc.lat1, tc.lon2, tc.lat2), 1e-9)
		})
	}
}

func TestPointAt(t *testing.T) {
	start := Point{Lon: -118, Lat: 34, Depth: 7}

	t.Run("north by one degree of arc", func(t *testing.T) {
		km := EarthRadiusKm * degToRad
		got := PointAt(start, 0, km)
		assert.InDelta(t, -118, got.Lon, 1e-9)
		assert.InDelta(t, 35, got.Lat, 1e-9)
		assert.Equal(t, 7.0, got.Depth)
	})

	t.Run("azimuth back to start is reversed", func(t *testing.T) {
		got := PointAt(start, 60, 50)
		back := Azimuth(got.Lon, got.Lat, start.Lon, start.Lat)
		assert.InDelta(t, 240, back, 1.0)
	})

	t.Run("zero distance", func(t *testing.T) {
		got := PointAt(start, 123, 0)
		assert.InDelta(t, start.Lon, got.Lon, 1e-12)
		assert.InDelta(t, start.Lat, got.Lat, 1e-12)
	})
}

func TestNormalizeLongitude(t *testing.T) {
	assert.InDelta(t, -170, NormalizeLongitude(190), 1e-12)
	assert.InDelta(t, 170, NormalizeLongitude(-190), 1e-12)
	assert.InDelta(t, 0, NormalizeLongitude(360), 1e-12)
	assert.InDelta(t, -118, NormalizeLongitude(-118), 1e-12)
}
