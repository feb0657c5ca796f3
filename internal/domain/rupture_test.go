package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRupture(t *testing.T) {
	quads := verticalFault()

	t.Run("defaults put every quad in one forward group", func(t *testing.T) {
		r, err := NewRupture(quads, nil, nil, "ref", PlaceholderOrigin())
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0}, r.Groups())
		assert.Equal(t, []bool{false}, r.GroupReversed())
		assert.Equal(t, []bool{false, false}, r.QuadReversed())
		assert.Equal(t, "ref", r.Reference())
		assert.Equal(t, Origin{}, r.Origin())
		assert.Len(t, r.Corners(), 8)
	})

	t.Run("group flags expand per quad", func(t *testing.T) {
		r, err := NewRupture(quads, []int{0, 1}, []bool{false, true}, "", PlaceholderOrigin())
		require.NoError(t, err)
		assert.Equal(t, []bool{false, true}, r.QuadReversed())

		edges, err := r.Edges()
		require.NoError(t, err)
		assert.Equal(t, quads[1][1], edges.Top[2])
		assert.Equal(t, quads[1][0], edges.Top[3])
	})

	t.Run("inputs are copied", func(t *testing.T) {
		in := verticalFault()
		r, err := NewRupture(in, nil, nil, "", PlaceholderOrigin())
		require.NoError(t, err)
		in[0][0].Lat = 0
		assert.Equal(t, 34.0, r.Quads()[0][0].Lat)
	})

	invalid := []struct {
		name     string
		quads    []Quad
		groups   []int
		reversed []bool
	}{
		{"no quads", nil, nil, nil},
		{"group count mismatch", quads, []int{0}, nil},
		{"negative group", quads, []int{0, -1}, nil},
		{"missing reversed flag", quads, []int{0, 1}, []bool{false}},
		{"nan corner", []Quad{{{Lon: nan()}, {}, {}, {}}}, nil, nil},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRupture(tc.quads, tc.groups, tc.reversed, "", PlaceholderOrigin())
			require.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}
