package domain

import (
	"fmt"
	"time"
)

// BuildScenario converts one canonical source into a scenario. Fault
// sources are built in two passes: the rupture is first assembled around a
// placeholder origin to obtain its edges, the hypocenter is located on
// those edges, and the rupture is then rebuilt with the final origin.
func BuildScenario(src Source, opts Options, region *StableRegion) (Scenario, error) {
	if err := opts.Directivity.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("build scenario: %w", err)
	}
	reference := opts.Reference
	if reference == "" {
		reference = src.Reference
	}

	if src.IsPoint() {
		return buildPointScenario(src, opts, reference, region)
	}

	draft, err := NewRupture(src.Quads, src.Groups, src.Reversed, reference, PlaceholderOrigin())
	if err != nil {
		return Scenario{}, fmt.Errorf("build scenario %q: %w", src.Name, err)
	}
	edges, err := draft.Edges()
	if err != nil {
		return Scenario{}, fmt.Errorf("build scenario %q: %w", src.Name, err)
	}

	alongStrike, downDip := opts.Directivity.Fractions()
	hypo, err := LocateHypocenter(edges.Top, edges.Bottom, alongStrike, downDip)
	if err != nil {
		return Scenario{}, fmt.Errorf("build scenario %q: %w", src.Name, err)
	}

	ident, err := DeriveIdentity(src.Name, src.Magnitude, opts.Directivity, src.Quads, src.ExternalID)
	if err != nil {
		return Scenario{}, fmt.Errorf("build scenario %q: %w", src.Name, err)
	}

	event := newEventRecord(src, ident, hypo, opts.Directivity.Enabled, reference)

	rupture, err := NewRupture(src.Quads, src.Groups, src.Reversed, reference, event.Origin())
	if err != nil {
		return Scenario{}, fmt.Errorf("build scenario %q: rebuild rupture: %w", src.Name, err)
	}

	sc := Scenario{
		Event:       event,
		Rupture:     rupture,
		Edges:       edges,
		Dialect:     src.Dialect,
		ShortName:   src.ShortName,
		ProcessedAt: event.Created,
	}
	if region != nil {
		ext, err := ComputeExtent(hypo, src.Magnitude, rupture.Corners(), region)
		if err != nil {
			return Scenario{}, fmt.Errorf("build scenario %q: %w", src.Name, err)
		}
		sc.Extent = &ext
	}
	return sc, nil
}

func buildPointScenario(src Source, opts Options, reference string, region *StableRegion) (Scenario, error) {
	if opts.Directivity.Enabled && opts.Directivity.Index != Bilateral {
		return Scenario{}, fmt.Errorf("build scenario %q: unilateral directivity needs a rupture plane: %w",
			src.Name, ErrInvalidGeometry)
	}
	if !src.Point.IsFinite() {
		return Scenario{}, fmt.Errorf("build scenario %q: hypocenter is not finite: %w", src.Name, ErrInvalidGeometry)
	}

	ident, err := DeriveIdentity(src.Name, src.Magnitude, opts.Directivity, nil, src.ExternalID)
	if err != nil {
		return Scenario{}, fmt.Errorf("build scenario %q: %w", src.Name, err)
	}

	event := newEventRecord(src, ident, *src.Point, opts.Directivity.Enabled, reference)
	sc := Scenario{
		Event:       event,
		Dialect:     src.Dialect,
		ShortName:   src.ShortName,
		ProcessedAt: event.Created,
	}
	if region != nil {
		ext, err := ComputeExtent(*src.Point, src.Magnitude, nil, region)
		if err != nil {
			return Scenario{}, fmt.Errorf("build scenario %q: %w", src.Name, err)
		}
		sc.Extent = &ext
	}
	return sc, nil
}

func newEventRecord(src Source, ident EventIdentity, hypo Point, directivity bool, reference string) EventRecord {
	now := clock.Now().UTC().Truncate(time.Second)
	return EventRecord{
		ID:              ident.ID,
		EventSourceCode: ident.SourceCode,
		Description:     ident.Description,
		LocString:       src.Name,
		Magnitude:       src.Magnitude,
		Rake:            src.Rake,
		Mechanism:       RakeToMechanism(src.Rake),
		Hypocenter:      hypo,
		Time:            now,
		Created:         now,
		TimeZone:        "UTC",
		Directivity:     directivity,
		Reference:       reference,
	}
}
