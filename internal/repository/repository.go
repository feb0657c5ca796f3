// Package repository persists converted scenarios in a SQLite catalog.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
)

// ErrNotFound is returned by lookups for an unknown scenario id.
var ErrNotFound = errors.New("scenario not found")

// Filter narrows List results. Zero values mean no constraint.
type Filter struct {
	Limit        int
	MinMagnitude *float64
	Directivity  *bool
}

// Record is one stored scenario row.
type Record struct {
	ID              string
	EventSourceCode string
	Description     string
	LocString       string
	Magnitude       float64
	Lat             float64
	Lon             float64
	Depth           float64
	Rake            *float64
	Mechanism       string
	Directivity     bool
	Reference       string
	Dialect         string
	RunID           string
	CreatedAt       time.Time
}

// ScenarioRepository is the catalog of converted scenarios.
type ScenarioRepository interface {
	Add(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts Filter) ([]Record, error)
}

// NewRecord flattens a scenario into a row tagged with runID.
func NewRecord(sc domain.Scenario, runID string) *Record {
	ev := sc.Event
	return &Record{
		ID:              ev.ID,
		EventSourceCode: ev.EventSourceCode,
		Description:     ev.Description,
		LocString:       ev.LocString,
		Magnitude:       ev.Magnitude,
		Lat:             ev.Hypocenter.Lat,
		Lon:             ev.Hypocenter.Lon,
		Depth:           ev.Hypocenter.Depth,
		Rake:            ev.Rake,
		Mechanism:       ev.Mechanism,
		Directivity:     ev.Directivity,
		Reference:       ev.Reference,
		Dialect:         sc.Dialect,
		RunID:           runID,
		CreatedAt:       ev.Created,
	}
}
