package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexDistance(t *testing.T) {
	o := Pos{X: 10, Y: 10}
	cases := []struct {
		to   Pos
		want int
	}{
		{Pos{10, 10}, 0},
		{Pos{11, 11}, 1},
		{Pos{9, 9}, 1},
		{Pos{11, 10}, 1},
		{Pos{11, 9}, 2},
		{Pos{13, 12}, 3},
		{Pos{7, 12}, 5},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, HexDistance(o, tc.to), "distance to %s", tc.to)
		assert.Equalf(t, tc.want, HexDistance(tc.to, o), "distance from %s", tc.to)
	}
}

func TestMoveAndReverse(t *testing.T) {
	p := Pos{X: 5, Y: 5}
	for _, d := range Directions() {
		n := p.Move(d)
		assert.Equal(t, 1, HexDistance(p, n), d.String())
		assert.Equal(t, p, n.Move(d.Reverse()), d.String())
	}
	assert.Equal(t, Pos{X: 6, Y: 6}, p.Move(DirDownRight))
}

func TestRingAndDisc(t *testing.T) {
	c := Pos{X: 20, Y: 20}
	for r := 1; r <= 4; r++ {
		ring := Ring(c, r)
		require.Len(t, ring, 6*r)
		seen := map[Pos]bool{}
		for _, p := range ring {
			assert.Equalf(t, r, HexDistance(c, p), "ring %d tile %s", r, p)
			assert.False(t, seen[p], "duplicate tile %s", p)
			seen[p] = true
		}
	}
	disc := Disc(c, 3)
	assert.Len(t, disc, 1+6+12+18)
	assert.Equal(t, c, disc[0])
}

func TestPosZero(t *testing.T) {
	assert.True(t, Pos{}.IsZero())
	assert.False(t, Pos{X: 1}.IsZero())
	assert.Equal(t, "(3,4)", Pos{X: 3, Y: 4}.String())
}
