package dialect

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	"github.com/couchcryptid/quake-scenario-etl/internal/geodesy"
)

type traceSet struct {
	Events []traceEvent `json:"events"`
}

type traceEvent struct {
	Desc  string     `json:"desc"`
	ID    flexString `json:"id"`
	Mag   float64    `json:"mag"`
	Dip   float64    `json:"dip"`
	Rake  *float64   `json:"rake"`
	Width float64    `json:"width"`
	Ztor  float64    `json:"ztor"`
	Lons  []float64  `json:"lons"`
	Lats  []float64  `json:"lats"`
}

type traceParser struct{}

func (traceParser) Name() string { return Trace }

func (p traceParser) Parse(raw []byte, index []int) ([]domain.Source, error) {
	var set traceSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	sel, err := selectIndices(len(set.Events), index)
	if err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}

	out := make([]domain.Source, 0, len(sel))
	for _, i := range sel {
		src, err := p.source(set.Events[i])
		if err != nil {
			return nil, fmt.Errorf("parse trace event %d: %w", i, err)
		}
		out = append(out, src)
	}
	return out, nil
}

// source builds a single-group fault whose strike is the azimuth from the
// first to the last trace point.
func (traceParser) source(ev traceEvent) (domain.Source, error) {
	if len(ev.Lons) != len(ev.Lats) {
		return domain.Source{}, fmt.Errorf("%d lons for %d lats: %w", len(ev.Lons), len(ev.Lats), domain.ErrInvalidGeometry)
	}
	n := len(ev.Lons)
	if n < 2 {
		return domain.Source{}, fmt.Errorf("trace has %d points: %w", n, domain.ErrInvalidGeometry)
	}

	strike := geodesy.Azimuth(ev.Lons[0], ev.Lats[0], ev.Lons[n-1], ev.Lats[n-1])
	segments := make([]Segment, n-1)
	for i := range segments {
		segments[i] = Segment{
			Lon0: ev.Lons[i], Lat0: ev.Lats[i],
			Lon1: ev.Lons[i+1], Lat1: ev.Lats[i+1],
			Ztor:   ev.Ztor,
			Width:  ev.Width,
			Dip:    ev.Dip,
			Strike: strike,
		}
	}
	quads, err := QuadsFromTrace(segments)
	if err != nil {
		return domain.Source{}, err
	}

	return domain.Source{
		Dialect:    Trace,
		Name:       ev.Desc,
		ShortName:  ev.Desc,
		ExternalID: string(ev.ID),
		Magnitude:  ev.Mag,
		Rake:       ev.Rake,
		Quads:      quads,
	}, nil
}

func (traceParser) Descriptions(raw []byte) ([]string, error) {
	var set traceSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	out := make([]string, len(set.Events))
	for i, ev := range set.Events {
		out[i] = ev.Desc
	}
	return out, nil
}
