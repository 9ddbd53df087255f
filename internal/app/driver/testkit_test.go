package driver

import (
	"testing"
	"time"

	"serfai/internal/adapter/sim"
	"serfai/internal/app/agent"
	"serfai/internal/domain/settlement"

	"github.com/stretchr/testify/require"
)

var _ agent.Agent = (*panicAgent)(nil)

type panicAgent struct {
	*agent.Scripted
}

func (panicAgent) Decide(agent.DecisionContext) []settlement.Action {
	panic("boom")
}

// stepClock advances by step on every reading.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newEngine(t *testing.T) *sim.Engine {
	t.Helper()
	return sim.New(sim.Config{Width: 64, Height: 64, Players: 2, Seed: 3})
}

func castleFlagOf(t *testing.T, e *sim.Engine, player int) settlement.Pos {
	t.Helper()
	for _, b := range e.Buildings(player) {
		if b.Type == settlement.BuildingCastle {
			f, ok := e.Flag(b.FlagIndex)
			require.True(t, ok)
			return f.Pos
		}
	}
	t.Fatalf("player %d has no castle", player)
	return settlement.Pos{}
}
