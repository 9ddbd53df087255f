package agent

import (
	"testing"

	"serfai/internal/adapter/sim"
	"serfai/internal/app/snapshot"
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"

	"github.com/stretchr/testify/require"
)

var castleSite = settlement.Pos{X: 20, Y: 20}

func newEngine(t *testing.T) *sim.Engine {
	t.Helper()
	return sim.New(sim.Config{Width: 64, Height: 64, Players: 2, Seed: 1})
}

func newEngineWithCastle(t *testing.T) *sim.Engine {
	t.Helper()
	e := newEngine(t)
	require.True(t, e.BuildCastle(castleSite, 0))
	return e
}

func liveContext(t *testing.T, e *sim.Engine, player int) DecisionContext {
	t.Helper()
	state, err := snapshot.Capture(e, player, snapshot.Options{})
	require.NoError(t, err)
	return DecisionContext{State: state, Live: &LiveAccess{Engine: e, Player: player}}
}

// grassState is a snapshot of an empty, flat, unowned map.
func grassState(width, height int) world.GameState {
	m := world.NewMapInfo(width, height)
	for i := range m.Terrain {
		m.Terrain[i] = settlement.TerrainGrass0
	}
	return world.GameState{Map: m, Global: world.GlobalInfo{Winner: world.NoWinner}}
}

// own marks every tile within radius of center as owned by player.
func own(m world.MapInfo, center settlement.Pos, radius int, player int) {
	for _, p := range settlement.Disc(center, radius) {
		if i, ok := m.Index(p); ok {
			m.Owner[i] = uint8(player)
		}
	}
}

func setLayer(m world.MapInfo, layer []bool, p settlement.Pos) {
	if i, ok := m.Index(p); ok {
		layer[i] = true
	}
}

func clearLayer(m world.MapInfo, layer []bool, p settlement.Pos) {
	if i, ok := m.Index(p); ok {
		layer[i] = false
	}
}

// place records a building and its down-right flag in the snapshot.
func place(s *world.GameState, b settlement.BuildingType, pos settlement.Pos) {
	setLayer(s.Map, s.Map.HasBuilding, pos)
	setLayer(s.Map, s.Map.HasFlag, pos.Move(settlement.DirDownRight))
	s.Self.Buildings = append(s.Self.Buildings, world.BuildingInfo{Pos: pos, Type: b, Completed: true})
	s.Self.BuildingCounts[b]++
	s.Capabilities.Buildings = true
	if b == settlement.BuildingCastle {
		s.Self.HasCastle = true
	}
}

func actionTypes(actions []settlement.Action) []settlement.ActionType {
	out := make([]settlement.ActionType, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Type)
	}
	return out
}
