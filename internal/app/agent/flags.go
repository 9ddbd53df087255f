package agent

import (
	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

// buildingFlag resolves the flag of the player's building of type b standing
// at pos, following building -> flag index -> flag.
func buildingFlag(eng ports.GameReader, player int, pos settlement.Pos, b settlement.BuildingType) (settlement.Pos, bool) {
	view, ok := eng.BuildingAt(pos)
	if !ok || view.Type != b || view.Owner != player || view.FlagIndex == 0 {
		return settlement.Pos{}, false
	}
	f, ok := eng.Flag(view.FlagIndex)
	if !ok {
		return settlement.Pos{}, false
	}
	return f.Pos, true
}

// roadExists reports a road leaving the flag at from whose far end is the
// flag at to. Only direct links are detected; flags joined through
// intermediate flags report false.
func roadExists(eng ports.GameReader, from, to settlement.Pos) bool {
	if from == to {
		return false
	}
	src, ok := eng.FlagAt(from)
	if !ok {
		return false
	}
	if _, ok := eng.FlagAt(to); !ok {
		return false
	}
	for _, d := range settlement.Directions() {
		if !src.Paths[d] {
			continue
		}
		idx, ok := eng.OtherEndFlag(src.Index, d)
		if !ok {
			continue
		}
		if other, ok := eng.Flag(idx); ok && other.Pos == to {
			return true
		}
	}
	return false
}

// castlePosition prefers the snapshot's building list, then a live lookup of
// the remembered guess.
func castlePosition(dc DecisionContext, guess settlement.Pos, haveGuess bool) (settlement.Pos, bool) {
	if pos, ok := dc.State.CastlePos(); ok {
		return pos, true
	}
	if !haveGuess {
		return settlement.Pos{}, false
	}
	if dc.Live != nil {
		view, ok := dc.Live.Engine.BuildingAt(guess)
		if !ok || view.Type != settlement.BuildingCastle || view.Owner != dc.Live.Player {
			return settlement.Pos{}, false
		}
	}
	return guess, true
}

// snapshotFlag estimates a building's flag from the snapshot alone: the
// down-right neighbour, if a flag is there.
func snapshotFlag(m world.MapInfo, building settlement.Pos) (settlement.Pos, bool) {
	fp := building.Move(settlement.DirDownRight)
	return fp, m.FlagAt(fp)
}
