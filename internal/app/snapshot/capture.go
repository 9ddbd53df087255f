package snapshot

import (
	"fmt"
	"time"

	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

// Options carries host values the engine does not know about.
type Options struct {
	TimeBudget    time.Duration
	LastExecution time.Duration
	AIPlayerCount int
}

// Capture copies everything an agent may look at for player into a fresh
// GameState. It only calls read accessors. Opponents and the building list
// are left empty, with the matching capability unset, when the engine cannot
// provide them.
func Capture(eng ports.GameReader, player int, opts Options) (world.GameState, error) {
	stats, ok := eng.Player(player)
	if !ok {
		return world.GameState{}, fmt.Errorf("capture player %d: %w", player, ports.ErrNotFound)
	}

	state := world.GameState{
		Tick:  eng.Tick(),
		Speed: eng.Speed(),
		Self:  playerState(stats),
		Global: world.GlobalInfo{
			PlayerCount:   eng.PlayerCount(),
			AIPlayerCount: opts.AIPlayerCount,
			GameEnded:     eng.GameEnded(),
			Winner:        eng.Winner(),
			TimeBudget:    opts.TimeBudget,
			LastExecution: opts.LastExecution,
		},
	}

	if lister, ok := eng.(ports.BuildingLister); ok {
		state.Self.Buildings = buildingInfos(lister.Buildings(player))
		state.Capabilities.Buildings = true
	}

	state.Opponents, state.Capabilities.Opponents = opponents(eng, player)
	state.Map = captureMap(eng)
	return state, nil
}

func playerState(stats ports.PlayerStats) world.PlayerState {
	out := world.PlayerState{
		Index:              stats.Index,
		IsAI:               stats.IsAI,
		HasCastle:          stats.HasCastle,
		Resources:          stats.Resources,
		ResourcePriorities: stats.ResourcePriorities,
		Knights:            stats.Knights,
		CastleKnights:      stats.CastleKnights,
		KnightMorale:       stats.KnightMorale,
		TerritorySize:      stats.TerritorySize,
		TotalSerfs:         stats.TotalSerfs,
		IdleSerfs:          stats.IdleSerfs,
		EconomicScore:      stats.EconomicScore,
		MilitaryScore:      stats.MilitaryScore,
		Buildings:          []world.BuildingInfo{},
	}
	for b := range out.BuildingCounts {
		out.BuildingCounts[b] = stats.Completed[b] + stats.Incomplete[b]
	}
	return out
}

func buildingInfos(views []ports.BuildingView) []world.BuildingInfo {
	out := make([]world.BuildingInfo, 0, len(views))
	for _, v := range views {
		if v.Burning {
			continue
		}
		out = append(out, world.BuildingInfo{Pos: v.Pos, Type: v.Type, Completed: v.Completed})
	}
	return out
}

// opponents reports false when any other player's record is missing, so a
// partial roster is never mistaken for a complete one.
func opponents(eng ports.GameReader, self int) ([]world.PlayerState, bool) {
	out := []world.PlayerState{}
	for i := 0; i < eng.PlayerCount(); i++ {
		if i == self {
			continue
		}
		stats, ok := eng.Player(i)
		if !ok {
			return []world.PlayerState{}, false
		}
		out = append(out, playerState(stats))
	}
	return out, true
}

func captureMap(eng ports.GameReader) world.MapInfo {
	w, h := eng.MapSize()
	m := world.NewMapInfo(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := settlement.Pos{X: x, Y: y}
			i := y*w + x
			m.Terrain[i] = eng.Terrain(p)
			m.Elevation[i] = eng.Elevation(p)
			if owner, ok := eng.Owner(p); ok {
				m.Owner[i] = uint8(owner)
			}
			m.HasBuilding[i] = eng.HasBuilding(p)
			m.HasFlag[i] = eng.HasFlag(p)
			m.HasRoad[i] = eng.HasRoad(p)
		}
	}
	for _, kind := range settlement.Deposits() {
		if positions := eng.Deposits(kind); len(positions) > 0 {
			m.Deposits[kind] = positions
		}
	}
	return m
}
