package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic. Value
// holds one raw rupture document.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Source is the canonical form every dialect parser produces for one
// catalog event. Fault sources carry quads; point sources carry Point.
type Source struct {
	Dialect    string
	Name       string
	ShortName  string
	ExternalID string
	Magnitude  float64
	Rake       *float64
	Reference  string

	Quads    []Quad
	Groups   []int
	Reversed []bool

	Point *Point
}

// IsPoint reports whether the source has no rupture plane.
func (s Source) IsPoint() bool {
	return s.Point != nil
}

// Options is the per-run conversion configuration.
type Options struct {
	// Index selects catalog events by position. Empty selects all.
	Index       []int
	Reference   string
	Directivity Directivity
}

// EventRecord is the synthetic event written for a scenario.
type EventRecord struct {
	ID              string    `json:"id"`
	EventSourceCode string    `json:"event_source_code"`
	Description     string    `json:"description"`
	LocString       string    `json:"locstring"`
	Magnitude       float64   `json:"magnitude"`
	Rake            *float64  `json:"rake,omitempty"`
	Mechanism       string    `json:"mechanism"`
	Hypocenter      Point     `json:"hypocenter"`
	Time            time.Time `json:"time"`
	Created         time.Time `json:"created"`
	TimeZone        string    `json:"timezone"`
	Directivity     bool      `json:"directivity"`
	Reference       string    `json:"reference,omitempty"`
}

// Origin returns the event's origin record.
func (e EventRecord) Origin() Origin {
	return Origin{
		ID:        e.ID,
		Lon:       e.Hypocenter.Lon,
		Lat:       e.Hypocenter.Lat,
		Depth:     e.Hypocenter.Depth,
		Magnitude: e.Magnitude,
	}
}

// Scenario is the output of converting one catalog event. Rupture and Edges
// are empty for point sources. Extent is nil when no stable region was
// configured.
type Scenario struct {
	Event       EventRecord
	Rupture     *Rupture
	Edges       Edges
	Extent      *Extent
	Dialect     string
	ShortName   string
	ProcessedAt time.Time
}

// ScenarioMessage is the wire form of a Scenario on the sink topic.
type ScenarioMessage struct {
	Event   EventRecord `json:"event"`
	Quads   []Quad      `json:"quads,omitempty"`
	Edges   Edges       `json:"edges"`
	Extent  *Extent     `json:"extent,omitempty"`
	Dialect string      `json:"dialect"`
}

// Message flattens the scenario into its wire form.
func (s Scenario) Message() ScenarioMessage {
	msg := ScenarioMessage{
		Event:   s.Event,
		Edges:   s.Edges,
		Extent:  s.Extent,
		Dialect: s.Dialect,
	}
	if s.Rupture != nil {
		msg.Quads = s.Rupture.Quads()
	}
	return msg
}
