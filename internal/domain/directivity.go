package domain

import "fmt"

// DirectivityIndex selects a hypocenter placement policy along strike.
type DirectivityIndex int

const (
	FirstUnilateral  DirectivityIndex = 0
	Bilateral        DirectivityIndex = 1
	SecondUnilateral DirectivityIndex = 2
)

func (i DirectivityIndex) Valid() bool {
	return i >= FirstUnilateral && i <= SecondUnilateral
}

// Directivity is the directivity configuration of one conversion.
type Directivity struct {
	Enabled bool             `json:"enabled"`
	Index   DirectivityIndex `json:"index"`
}

// Validate rejects an index outside 0..2 when directivity is enabled.
func (d Directivity) Validate() error {
	if d.Enabled && !d.Index.Valid() {
		return fmt.Errorf("directivity index %d not in 0..2: %w", d.Index, ErrConfiguration)
	}
	return nil
}

// Hypocenter placement fractions along strike and down dip.
const (
	downDipFraction          = 0.6
	medianAlongStrike        = 0.5
	firstUnilateralFraction  = 0.05
	secondUnilateralFraction = 0.95
)

// Fractions returns the (along-strike, down-dip) hypocenter fractions for d.
func (d Directivity) Fractions() (alongStrike, downDip float64) {
	if !d.Enabled {
		return medianAlongStrike, downDipFraction
	}
	switch d.Index {
	case FirstUnilateral:
		return firstUnilateralFraction, downDipFraction
	case SecondUnilateral:
		return secondUnilateralFraction, downDipFraction
	default:
		return medianAlongStrike, downDipFraction
	}
}

// Tag returns the id suffix for d, e.g. "~dir0", or "" when disabled.
func (d Directivity) Tag() string {
	if !d.Enabled {
		return ""
	}
	return fmt.Sprintf("~dir%d", d.Index)
}
