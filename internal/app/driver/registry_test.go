package driver

import (
	"testing"

	"serfai/internal/adapter/sim"
	"serfai/internal/app/agent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBindsOneAgentPerPlayer(t *testing.T) {
	reg := NewRegistry(nil)
	first := agent.NewScripted()
	second := agent.NewStaged(nil)

	reg.Attach(2, first)
	reg.Attach(0, agent.NewScripted())
	reg.Attach(2, second)

	got, ok := reg.Agent(2)
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, []int{0, 2}, reg.Players())

	assert.True(t, reg.Detach(2))
	assert.False(t, reg.Detach(2))
	assert.False(t, reg.Has(2))

	reg.Attach(0, nil)
	assert.Zero(t, reg.Len())
}

func TestSetupAIPlayersSkipsHumans(t *testing.T) {
	e := sim.New(sim.Config{Width: 32, Height: 32, Players: 3, HumanPlayers: 1})
	d := New(NewRegistry(nil), nil, nil)
	d.Registry.Attach(0, agent.NewScripted())

	bound, err := d.SetupAIPlayers(e, 5, agent.KindRandom, agent.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, bound)
	assert.Equal(t, []int{1, 2}, d.Registry.Players())
	a, _ := d.Registry.Agent(2)
	assert.Equal(t, "AI-Player2", a.Name())
	assert.Equal(t, agent.KindRandom, a.Kind())

	bound, err = d.SetupAIPlayers(e, 1, agent.KindScripted, agent.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, bound)

	_, err = d.SetupAIPlayers(e, 2, agent.KindNeuralNetwork, agent.DefaultOptions())
	assert.ErrorIs(t, err, agent.ErrUnsupportedAgentKind)
	assert.Zero(t, d.Registry.Len())
}

func TestGameStartedResetsMetrics(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Attach(0, agent.NewScripted())
	d := New(reg, nil, nil)
	e := newEngine(t)

	d.Update(0, e, 1)
	_, ok := d.PerformanceMetrics(0)
	require.True(t, ok)

	d.GameStarted()
	_, ok = d.PerformanceMetrics(0)
	assert.False(t, ok)

	e.End(0)
	assert.NotPanics(t, func() { d.GameEnded(e) })
}
