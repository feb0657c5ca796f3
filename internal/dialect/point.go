package dialect

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

type pointSet struct {
	Events []pointEvent `json:"events"`
}

type pointEvent struct {
	ID    flexString `json:"id"`
	Desc  string     `json:"desc"`
	Mag   float64    `json:"mag"`
	Lat   *float64   `json:"lat"`
	Lon   *float64   `json:"lon"`
	Depth *float64   `json:"depth"`
	Rake  *float64   `json:"rake"`
}

type pointParser struct{}

func (pointParser) Name() string { return Point }

func (pointParser) Parse(raw []byte, index []int) ([]domain.Source, error) {
	var set pointSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse point: %w", err)
	}
	sel, err := selectIndices(len(set.Events), index)
	if err != nil {
		return nil, fmt.Errorf("parse point: %w", err)
	}

	out := make([]domain.Source, 0, len(sel))
	for _, i := range sel {
		ev := set.Events[i]
		if ev.Lat == nil || ev.Lon == nil {
			return nil, fmt.Errorf("parse point event %d: missing lat/lon: %w", i, domain.ErrInvalidGeometry)
		}
		hypo := domain.Point{Lon: *ev.Lon, Lat: *ev.Lat}
		if ev.Depth != nil {
			hypo.Depth = *ev.Depth
		}
		out = append(out, domain.Source{
			Dialect:    Point,
			Name:       ev.Desc,
			ShortName:  ev.Desc,
			ExternalID: string(ev.ID),
			Magnitude:  ev.Mag,
			Rake:       ev.Rake,
			Point:      &hypo,
		})
	}
	return out, nil
}

func (pointParser) Descriptions(raw []byte) ([]string, error) {
	var set pointSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse point: %w", err)
	}
	out := make([]string, len(set.Events))
	for i, ev := range set.Events {
		out[i] = ev.Desc
	}
	return out, nil
}
