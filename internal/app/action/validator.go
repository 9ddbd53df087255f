package action

import (
	"fmt"

	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
)

// Validator checks proposed actions against the engine's predicates. It never
// mutates the engine, so callers may probe as many candidates as they like.
type Validator struct {
	Castle   SearchPlan
	Building SearchPlan
}

func NewValidator() Validator {
	return Validator{Castle: CastleSearch, Building: BuildingSearch}
}

// Validate checks the action and, for castle and building placement, searches
// for a nearby legal position when the proposed one is rejected.
func (v Validator) Validate(a settlement.Action, eng ports.Engine, player int) settlement.ValidationResult {
	return v.validate(Input{Action: a, Engine: eng, Player: player, Correct: true})
}

// Check validates the action exactly as given, without correction.
func (v Validator) Check(a settlement.Action, eng ports.Engine, player int) settlement.ValidationResult {
	return v.validate(Input{Action: a, Engine: eng, Player: player})
}

func (v Validator) validate(in Input) settlement.ValidationResult {
	spec, ok := lookupSpec(in.Action.Type)
	if !ok {
		return settlement.Reject(settlement.ErrorUnknown, fmt.Sprintf("unsupported action type %q", in.Action.Type))
	}
	return spec.Handler.Validate(v, in)
}

func (v Validator) castlePlan() SearchPlan   { return v.Castle.normalized(CastleSearch) }
func (v Validator) buildingPlan() SearchPlan { return v.Building.normalized(BuildingSearch) }

func mapBounds(eng ports.GameReader, margin int) func(settlement.Pos) bool {
	w, h := eng.MapSize()
	return func(p settlement.Pos) bool {
		return p.X >= margin && p.Y >= margin && p.X < w-margin && p.Y < h-margin
	}
}

// correct runs plan around the rejected position. On failure it reports
// INVALID_POSITION, carrying the diagnosis of the original spot.
func correct(plan SearchPlan, in Input, accept func(settlement.Pos) bool, diagnosis string) settlement.ValidationResult {
	outcome := plan.Search(in.Action.Pos, mapBounds(in.Engine, 1), accept)
	if outcome.Found {
		return settlement.AcceptCorrected(outcome.Pos, fmt.Sprintf("moved from %s to %s", in.Action.Pos, outcome.Pos))
	}
	return settlement.Reject(settlement.ErrorInvalidPosition,
		fmt.Sprintf("%s; no legal position within %d candidates", diagnosis, outcome.Tested))
}

// diagnose explains why a placement at p was refused, most specific cause
// first. It only reads engine state.
func diagnose(eng ports.Engine, p settlement.Pos, player int, b settlement.BuildingType) (settlement.ErrorKind, string) {
	if !mapBounds(eng, 1)(p) {
		return settlement.ErrorInvalidPosition, fmt.Sprintf("%s is outside the map", p)
	}
	if eng.HasBuilding(p) || eng.HasFlag(p) || eng.HasRoad(p) {
		return settlement.ErrorPositionOccupied, fmt.Sprintf("%s is occupied", p)
	}
	t := eng.Terrain(p)
	switch {
	case b == settlement.BuildingNone && !t.Walkable():
		return settlement.ErrorTerrainUnsuitable, fmt.Sprintf("terrain at %s is not walkable", p)
	case b.IsMine() && !t.IsTundra():
		return settlement.ErrorTerrainUnsuitable, fmt.Sprintf("terrain at %s cannot host a mine", p)
	case b != settlement.BuildingNone && !b.IsMine() && !t.IsGrass():
		return settlement.ErrorTerrainUnsuitable, fmt.Sprintf("terrain at %s is not buildable", p)
	}
	owner, owned := eng.Owner(p)
	if b == settlement.BuildingCastle {
		if owned {
			return settlement.ErrorOutOfTerritory, fmt.Sprintf("%s is already claimed by player %d", p, owner)
		}
	} else if !owned || owner != player {
		return settlement.ErrorOutOfTerritory, fmt.Sprintf("%s is outside the territory of player %d", p, player)
	}
	for _, d := range settlement.Directions() {
		n := p.Move(d)
		if b != settlement.BuildingNone && eng.HasBuilding(n) {
			return settlement.ErrorTooCloseToBuilding, fmt.Sprintf("%s touches the building at %s", p, n)
		}
		if b == settlement.BuildingNone && eng.HasFlag(n) {
			return settlement.ErrorTooCloseToBuilding, fmt.Sprintf("%s touches the flag at %s", p, n)
		}
	}
	if b != settlement.BuildingNone {
		fp := p.Move(settlement.DirDownRight)
		if f, ok := eng.FlagAt(fp); ok && f.Owner != player {
			return settlement.ErrorNoAdjacentFlag, fmt.Sprintf("flag spot %s belongs to another player", fp)
		}
		if !eng.HasFlag(fp) && !eng.CanBuildFlag(fp, player) && b != settlement.BuildingCastle {
			return settlement.ErrorNoAdjacentFlag, fmt.Sprintf("no flag can be placed at %s", fp)
		}
	}
	return settlement.ErrorInvalidPosition, fmt.Sprintf("engine rejected %s", p)
}
