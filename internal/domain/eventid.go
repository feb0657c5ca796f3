package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/couchcryptid/quake-scenario-etl/internal/geodesy"
)

// Descriptions attached to scenario events.
const (
	DescriptionMedian    = "Median ground motions"
	DescriptionBilateral = "Bilateral directivity"
)

const (
	idRootLen  = 20
	sourceSufx = "_se"
)

// Quadrant is a coarse compass bucket of a strike direction.
type Quadrant int

const (
	QuadrantNorth Quadrant = 1
	QuadrantEast  Quadrant = 2
	QuadrantSouth Quadrant = 3
	QuadrantWest  Quadrant = 4
)

var quadrantNames = map[Quadrant]string{
	QuadrantNorth: "Northern",
	QuadrantEast:  "Eastern",
	QuadrantSouth: "Southern",
	QuadrantWest:  "Western",
}

// Opposite returns the quadrant on the other side of the compass.
func (q Quadrant) Opposite() Quadrant {
	return (q+1)%4 + 1
}

// StrikeToQuadrant buckets a strike in degrees. Values are first wrapped
// once into [-180, 180]; the bins are (-45,45] north, (45,135] east,
// (135,180] or [-180,-135] south, (-135,-45] west.
func StrikeToQuadrant(strike float64) Quadrant {
	if strike > 180 {
		strike -= 360
	}
	if strike < -180 {
		strike += 360
	}
	switch {
	case strike > -45 && strike <= 45:
		return QuadrantNorth
	case strike > 45 && strike <= 135:
		return QuadrantEast
	case strike > -135 && strike <= -45:
		return QuadrantWest
	default:
		return QuadrantSouth
	}
}

// MeanStrike approximates the rupture strike as the azimuth from the first
// corner of the first quad to the mean position of all corners.
func MeanStrike(quads []Quad) (float64, error) {
	if len(quads) == 0 {
		return 0, fmt.Errorf("mean strike: no quads: %w", ErrInvalidGeometry)
	}
	var sumLon, sumLat float64
	for _, q := range quads {
		for _, p := range q {
			sumLon += p.Lon
			sumLat += p.Lat
		}
	}
	n := float64(4 * len(quads))
	first := quads[0][0]
	return geodesy.Azimuth(first.Lon, first.Lat, sumLon/n, sumLat/n), nil
}

// EventIdentity is the derived identity of a scenario event.
type EventIdentity struct {
	ID          string
	SourceCode  string
	Description string
}

// DeriveIdentity builds the event id, event source code, and directivity
// description. The id root is the alphanumeric form of name, or externalID
// when one is supplied. An externalID already ending in "_se" is used as is.
// The source code never carries the directivity tag.
func DeriveIdentity(name string, magnitude float64, dir Directivity, quads []Quad, externalID string) (EventIdentity, error) {
	if err := dir.Validate(); err != nil {
		return EventIdentity{}, fmt.Errorf("derive identity: %w", err)
	}

	desc, err := describeDirectivity(dir, quads)
	if err != nil {
		return EventIdentity{}, fmt.Errorf("derive identity: %w", err)
	}

	root := sanitize(name, false)
	if externalID != "" {
		root = sanitize(strings.ReplaceAll(externalID, ".", "p"), true)
	}

	preDerived := externalID != "" && strings.HasSuffix(root, sourceSufx)

	base := root
	if !preDerived {
		base = fmt.Sprintf("%s_m%s%s", truncate(root, idRootLen), MagnitudeTag(magnitude), sourceSufx)
	}
	base = strings.ToLower(base)

	id := base
	if !preDerived {
		id += dir.Tag()
	}

	return EventIdentity{
		ID:          id,
		SourceCode:  base,
		Description: desc,
	}, nil
}

func describeDirectivity(dir Directivity, quads []Quad) (string, error) {
	if !dir.Enabled {
		return DescriptionMedian, nil
	}
	if dir.Index == Bilateral {
		return DescriptionBilateral, nil
	}

	strike, err := MeanStrike(quads)
	if err != nil {
		return "", err
	}
	q := StrikeToQuadrant(strike)
	if dir.Index == SecondUnilateral {
		q = q.Opposite()
	}
	return quadrantNames[q] + " directivity", nil
}

// MagnitudeTag formats a magnitude for use in an id: the decimal text with
// leading and trailing zeros stripped and the point replaced by "p"
// (7.0 -> "7p", 7.26 -> "7p26").
func MagnitudeTag(magnitude float64) string {
	s := strconv.FormatFloat(magnitude, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	s = strings.Trim(s, "0")
	return strings.ReplaceAll(s, ".", "p")
}

func sanitize(s string, allowUnderscore bool) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || (allowUnderscore && r == '_') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
