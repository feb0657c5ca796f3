package dialect

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

type ucerfSet struct {
	Name   string       `json:"name"`
	Events []ucerfEvent `json:"events"`
}

type ucerfEvent struct {
	Name      string         `json:"name"`
	Magnitude float64        `json:"magnitude"`
	Rake      *float64       `json:"rake"`
	Sections  []ucerfSection `json:"sections"`
}

type ucerfSection struct {
	ResampledTrace [][]float64 `json:"resampledTrace"`
	Dip            float64     `json:"dip"`
	DipDir         float64     `json:"dipDir"`
	Width          float64     `json:"width"`
	Reversed       bool        `json:"reversed"`
}

// Model tags that end the readable part of a UCERF3 rupture name.
var ucerfNameCuts = []string{"EllB", "Shaw09", "2011", "HB08"}

type ucerfParser struct{}

func (ucerfParser) Name() string { return UCERF3 }

func (p ucerfParser) Parse(raw []byte, index []int) ([]domain.Source, error) {
	var set ucerfSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse ucerf3: %w", err)
	}
	sel, err := selectIndices(len(set.Events), index)
	if err != nil {
		return nil, fmt.Errorf("parse ucerf3: %w", err)
	}

	out := make([]domain.Source, 0, len(sel))
	for _, i := range sel {
		src, err := p.source(set.Events[i])
		if err != nil {
			return nil, fmt.Errorf("parse ucerf3 event %d: %w", i, err)
		}
		out = append(out, src)
	}
	return out, nil
}

func (ucerfParser) source(ev ucerfEvent) (domain.Source, error) {
	if len(ev.Sections) == 0 {
		return domain.Source{}, fmt.Errorf("no sections: %w", domain.ErrInvalidGeometry)
	}

	var (
		segments []Segment
		groups   []int
		reversed = make([]bool, len(ev.Sections))
	)
	for g, sec := range ev.Sections {
		if len(sec.ResampledTrace) < 2 {
			return domain.Source{}, fmt.Errorf("section %d: trace has %d points: %w",
				g, len(sec.ResampledTrace), domain.ErrInvalidGeometry)
		}
		secSegs := make([]Segment, 0, len(sec.ResampledTrace)-1)
		for j := 0; j < len(sec.ResampledTrace)-1; j++ {
			a, b := sec.ResampledTrace[j], sec.ResampledTrace[j+1]
			if len(a) < 3 || len(b) < 2 {
				return domain.Source{}, fmt.Errorf("section %d: short trace vertex: %w", g, domain.ErrInvalidGeometry)
			}
			secSegs = append(secSegs, Segment{
				Lon0: a[0], Lat0: a[1],
				Lon1: b[0], Lat1: b[1],
				Ztor:   a[2],
				Width:  sec.Width,
				Dip:    sec.Dip,
				Strike: sec.DipDir - 90,
			})
		}
		if sec.Reversed {
			for l, r := 0, len(secSegs)-1; l < r; l, r = l+1, r-1 {
				secSegs[l], secSegs[r] = secSegs[r], secSegs[l]
			}
		}
		reversed[g] = sec.Reversed
		segments = append(segments, secSegs...)
		for range secSegs {
			groups = append(groups, g)
		}
	}

	quads, err := QuadsFromTrace(segments)
	if err != nil {
		return domain.Source{}, err
	}

	return domain.Source{
		Dialect:   UCERF3,
		Name:      ev.Name,
		ShortName: ucerfShortName(ev.Name),
		Magnitude: ev.Magnitude,
		Rake:      ev.Rake,
		Quads:     quads,
		Groups:    groups,
		Reversed:  reversed,
	}, nil
}

func (ucerfParser) Descriptions(raw []byte) ([]string, error) {
	var set ucerfSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse ucerf3: %w", err)
	}
	out := make([]string, len(set.Events))
	for i, ev := range set.Events {
		out[i] = ev.Name
	}
	return out, nil
}

func ucerfShortName(name string) string {
	for _, cut := range ucerfNameCuts {
		name, _, _ = strings.Cut(name, cut)
	}
	return strings.TrimRightFunc(name, unicode.IsSpace)
}
