package action

import (
	"fmt"

	"serfai/internal/domain/settlement"
)

type demolishBuildingHandler struct{}

func (demolishBuildingHandler) Validate(_ Validator, in Input) settlement.ValidationResult {
	pos := in.Action.Pos
	b, ok := in.Engine.BuildingAt(pos)
	if !ok {
		return settlement.Reject(settlement.ErrorInvalidPosition, fmt.Sprintf("no building at %s", pos))
	}
	if b.Owner != in.Player {
		return settlement.Reject(settlement.ErrorOutOfTerritory, fmt.Sprintf("building at %s belongs to player %d", pos, b.Owner))
	}
	if b.Burning {
		return settlement.Reject(settlement.ErrorPositionOccupied, fmt.Sprintf("building at %s is already burning", pos))
	}
	if !in.Engine.CanDemolishBuilding(pos, in.Player) {
		return settlement.Reject(settlement.ErrorInvalidPosition, fmt.Sprintf("engine refuses to demolish %s", pos))
	}
	return settlement.Accept(fmt.Sprintf("%s at %s can be demolished", b.Type, pos))
}

func (demolishBuildingHandler) Execute(in Input) bool {
	return in.Engine.DemolishBuilding(in.Action.Pos, in.Player)
}

type demolishFlagHandler struct{}

func (demolishFlagHandler) Validate(_ Validator, in Input) settlement.ValidationResult {
	pos := in.Action.Pos
	f, ok := in.Engine.FlagAt(pos)
	if !ok {
		return settlement.Reject(settlement.ErrorInvalidPosition, fmt.Sprintf("no flag at %s", pos))
	}
	if f.Owner != in.Player {
		return settlement.Reject(settlement.ErrorOutOfTerritory, fmt.Sprintf("flag at %s belongs to player %d", pos, f.Owner))
	}
	if !in.Engine.CanDemolishFlag(pos, in.Player) {
		return settlement.Reject(settlement.ErrorPositionOccupied, fmt.Sprintf("flag at %s still serves a building", pos))
	}
	return settlement.Accept(fmt.Sprintf("flag at %s can be demolished", pos))
}

func (demolishFlagHandler) Execute(in Input) bool {
	return in.Engine.DemolishFlag(in.Action.Pos, in.Player)
}

type demolishRoadHandler struct{}

func (demolishRoadHandler) Validate(_ Validator, in Input) settlement.ValidationResult {
	pos := in.Action.Pos
	d := settlement.Direction(in.Action.Param1)
	if d < 0 || d >= settlement.DirectionCount {
		return settlement.Reject(settlement.ErrorInvalidRoadPath, fmt.Sprintf("invalid direction %d", in.Action.Param1))
	}
	f, ok := in.Engine.FlagAt(pos)
	if !ok {
		return settlement.Reject(settlement.ErrorInvalidPosition, fmt.Sprintf("no flag at %s", pos))
	}
	if f.Owner != in.Player {
		return settlement.Reject(settlement.ErrorOutOfTerritory, fmt.Sprintf("flag at %s belongs to player %d", pos, f.Owner))
	}
	if !f.Paths[d] {
		return settlement.Reject(settlement.ErrorInvalidRoadPath, fmt.Sprintf("no road leaves %s towards %s", pos, d))
	}
	if !in.Engine.CanDemolishRoad(pos, d, in.Player) {
		return settlement.Reject(settlement.ErrorInvalidRoadPath, fmt.Sprintf("engine refuses to remove road at %s", pos))
	}
	return settlement.Accept(fmt.Sprintf("road at %s towards %s can be removed", pos, d))
}

func (demolishRoadHandler) Execute(in Input) bool {
	return in.Engine.DemolishRoad(in.Action.Pos, settlement.Direction(in.Action.Param1), in.Player)
}
