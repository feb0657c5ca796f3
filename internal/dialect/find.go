package dialect

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match is a catalog event found by description.
type Match struct {
	Index       int
	Description string
}

// FindRuptures returns the events whose description contains pattern.
func FindRuptures(raw []byte, pattern string) ([]Match, error) {
	descs, err := descriptions(raw)
	if err != nil {
		return nil, err
	}
	var out []Match
	for i, d := range descs {
		if strings.Contains(d, pattern) {
			out = append(out, Match{Index: i, Description: d})
		}
	}
	return out, nil
}

// Nearest returns up to n events ranked by edit distance to pattern.
func Nearest(raw []byte, pattern string, n int) ([]Match, error) {
	descs, err := descriptions(raw)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		Match
		dist int
	}
	all := make([]ranked, len(descs))
	for i, d := range descs {
		all[i] = ranked{Match{Index: i, Description: d}, levenshtein.ComputeDistance(strings.ToLower(pattern), strings.ToLower(d))}
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].dist < all[b].dist })

	n = max(0, min(n, len(all)))
	out := make([]Match, 0, n)
	for _, r := range all[:n] {
		out = append(out, r.Match)
	}
	return out, nil
}

func descriptions(raw []byte) ([]string, error) {
	p, err := Detect(raw)
	if err != nil {
		return nil, err
	}
	return p.Descriptions(raw)
}
