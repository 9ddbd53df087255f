package cooldown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateOpenUntilMarked(t *testing.T) {
	g := NewGate(10)
	assert.True(t, g.Ready(0))
	assert.True(t, g.Ready(3))
	_, marked := g.Last()
	assert.False(t, marked)
}

func TestGateRemaining(t *testing.T) {
	g := NewGate(10)
	g.Mark(5)

	assert.False(t, g.Ready(5))
	assert.Equal(t, uint32(10), g.Remaining(5))
	assert.Equal(t, uint32(1), g.Remaining(14))
	assert.True(t, g.Ready(15))
	assert.True(t, g.Ready(400))

	last, marked := g.Last()
	assert.True(t, marked)
	assert.Equal(t, uint32(5), last)
}

func TestGateToleratesTickReset(t *testing.T) {
	g := NewGate(10)
	g.Mark(50)
	assert.True(t, g.Ready(2), "a restarted game must not stay gated")
}
