package action

import (
	"fmt"

	"serfai/internal/domain/settlement"
)

type castleHandler struct{}

func (castleHandler) Validate(v Validator, in Input) settlement.ValidationResult {
	eng, pos, player := in.Engine, in.Action.Pos, in.Player
	if stats, ok := eng.Player(player); !ok {
		return settlement.Reject(settlement.ErrorUnknown, fmt.Sprintf("unknown player %d", player))
	} else if stats.HasCastle {
		return settlement.Reject(settlement.ErrorInvalidPosition, "player already has a castle")
	}
	if eng.CanBuildCastle(pos, player) {
		return settlement.Accept("castle position accepted")
	}
	kind, reason := diagnose(eng, pos, player, settlement.BuildingCastle)
	if !in.Correct {
		return settlement.Reject(kind, reason)
	}
	return correct(v.castlePlan(), in, func(p settlement.Pos) bool {
		return eng.CanBuildCastle(p, player)
	}, reason)
}

func (castleHandler) Execute(in Input) bool {
	return in.Engine.BuildCastle(in.Action.Pos, in.Player)
}

type buildingHandler struct {
	building settlement.BuildingType
}

func (h buildingHandler) Validate(v Validator, in Input) settlement.ValidationResult {
	eng, pos, player := in.Engine, in.Action.Pos, in.Player
	stats, ok := eng.Player(player)
	if !ok {
		return settlement.Reject(settlement.ErrorUnknown, fmt.Sprintf("unknown player %d", player))
	}
	if !stats.HasCastle {
		return settlement.Reject(settlement.ErrorOutOfTerritory, "player has no territory without a castle")
	}
	if eng.CanBuildBuilding(pos, h.building, player) {
		return settlement.Accept(fmt.Sprintf("%s position accepted", h.building))
	}
	kind, reason := diagnose(eng, pos, player, h.building)
	if !in.Correct {
		return settlement.Reject(kind, reason)
	}
	return correct(v.buildingPlan(), in, func(p settlement.Pos) bool {
		return eng.CanBuildBuilding(p, h.building, player)
	}, reason)
}

func (h buildingHandler) Execute(in Input) bool {
	return in.Engine.BuildBuilding(in.Action.Pos, h.building, in.Player)
}

type flagHandler struct{}

func (flagHandler) Validate(_ Validator, in Input) settlement.ValidationResult {
	if in.Engine.CanBuildFlag(in.Action.Pos, in.Player) {
		return settlement.Accept("flag position accepted")
	}
	kind, reason := diagnose(in.Engine, in.Action.Pos, in.Player, settlement.BuildingNone)
	return settlement.Reject(kind, reason)
}

func (flagHandler) Execute(in Input) bool {
	return in.Engine.BuildFlag(in.Action.Pos, in.Player)
}

type roadHandler struct{}

func (roadHandler) Validate(_ Validator, in Input) settlement.ValidationResult {
	from, to := in.Action.Pos, in.Action.Target
	if from == to {
		return settlement.Reject(settlement.ErrorInvalidRoadPath, fmt.Sprintf("road starts and ends at %s", from))
	}
	if !in.Engine.HasFlag(from) || !in.Engine.HasFlag(to) {
		return settlement.Reject(settlement.ErrorInvalidRoadPath, fmt.Sprintf("road %s -> %s needs a flag at both ends", from, to))
	}
	road, ok := in.Engine.FindRoadPath(from, to, in.Player)
	if !ok {
		return settlement.Reject(settlement.ErrorInvalidRoadPath, fmt.Sprintf("no route from %s to %s", from, to))
	}
	if !in.Engine.CanBuildRoad(road, in.Player) {
		return settlement.Reject(settlement.ErrorInvalidRoadPath, fmt.Sprintf("route from %s to %s cannot be built", from, to))
	}
	return settlement.Accept(fmt.Sprintf("road of length %d accepted", road.Len()))
}

func (roadHandler) Execute(in Input) bool {
	road, ok := in.Engine.FindRoadPath(in.Action.Pos, in.Action.Target, in.Player)
	if !ok {
		return false
	}
	return in.Engine.BuildRoad(road, in.Player)
}
