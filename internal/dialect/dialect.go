package dialect

import (
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

// Dialect names.
const (
	UCERF3  = "ucerf3"
	Trace   = "trace"
	GeoJSON = "geojson"
	Point   = "point"
)

// Parser converts one raw document into canonical sources.
type Parser interface {
	// Name returns the dialect name.
	Name() string
	// Parse returns one source per selected event. An empty index selects
	// every event in document order.
	Parse(raw []byte, index []int) ([]domain.Source, error)
	// Descriptions returns the searchable description of every event.
	Descriptions(raw []byte) ([]string, error)
}

var parsers = map[string]Parser{
	UCERF3:  ucerfParser{},
	Trace:   traceParser{},
	GeoJSON: geojsonParser{},
	Point:   pointParser{},
}

// ForName returns the parser registered under name.
func ForName(name string) (Parser, error) {
	p, ok := parsers[name]
	if !ok {
		return nil, fmt.Errorf("dialect %q: %w", name, domain.ErrUnsupportedDialect)
	}
	return p, nil
}

// probe holds the fields used to recognise a document's dialect.
type probe struct {
	Format string                       `json:"format"`
	Type   string                       `json:"type"`
	Events []map[string]json.RawMessage `json:"events"`
}

// Detect picks the parser for raw. An explicit "format" field wins. Otherwise
// a FeatureCollection is geojson, and the keys of the first event decide
// between ucerf3 (sections), trace (lons), and point (lat).
func Detect(raw []byte) (Parser, error) {
	var pr probe
	if err := json.Unmarshal(raw, &pr); err != nil {
		return nil, fmt.Errorf("detect dialect: %v: %w", err, domain.ErrUnsupportedDialect)
	}

	if pr.Format != "" {
		return ForName(pr.Format)
	}
	if pr.Type == "FeatureCollection" {
		return parsers[GeoJSON], nil
	}
	if len(pr.Events) > 0 {
		first := pr.Events[0]
		switch {
		case has(first, "sections"):
			return parsers[UCERF3], nil
		case has(first, "lons"):
			return parsers[Trace], nil
		case has(first, "lat"):
			return parsers[Point], nil
		}
	}
	return nil, fmt.Errorf("detect dialect: unrecognised document: %w", domain.ErrUnsupportedDialect)
}

func has(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}

// Parse detects the dialect of raw and parses the selected events.
func Parse(raw []byte, index []int) ([]domain.Source, error) {
	p, err := Detect(raw)
	if err != nil {
		return nil, err
	}
	return p.Parse(raw, index)
}

// selectIndices resolves the requested event indices against n events.
func selectIndices(n int, index []int) ([]int, error) {
	if len(index) == 0 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, i := range index {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("event index %d out of range [0, %d)", i, n)
		}
	}
	return index, nil
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = flexString(num.String())
	return nil
}
