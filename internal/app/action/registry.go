package action

import (
	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
)

// Input is what a handler sees for one action. Correct enables position
// correction for placement handlers.
type Input struct {
	Action  settlement.Action
	Engine  ports.Engine
	Player  int
	Correct bool
}

type ActionHandler interface {
	Validate(v Validator, in Input) settlement.ValidationResult
	Execute(in Input) bool
}

type ActionSpec struct {
	Type    settlement.ActionType
	Reward  float64
	Handler ActionHandler
}

func actionRegistry() map[settlement.ActionType]ActionSpec {
	specs := map[settlement.ActionType]ActionSpec{
		settlement.ActionBuildCastle:         {Type: settlement.ActionBuildCastle, Reward: 10, Handler: castleHandler{}},
		settlement.ActionBuildFlag:           {Type: settlement.ActionBuildFlag, Reward: 0.5, Handler: flagHandler{}},
		settlement.ActionBuildRoad:           {Type: settlement.ActionBuildRoad, Reward: 1, Handler: roadHandler{}},
		settlement.ActionDemolishBuilding:    {Type: settlement.ActionDemolishBuilding, Reward: -0.5, Handler: demolishBuildingHandler{}},
		settlement.ActionDemolishFlag:        {Type: settlement.ActionDemolishFlag, Reward: -0.5, Handler: demolishFlagHandler{}},
		settlement.ActionDemolishRoad:        {Type: settlement.ActionDemolishRoad, Reward: -0.5, Handler: demolishRoadHandler{}},
		settlement.ActionSetResourcePriority: {Type: settlement.ActionSetResourcePriority, Reward: 0.1, Handler: resourcePriorityHandler{}},
		settlement.ActionSetToolPriority:     {Type: settlement.ActionSetToolPriority, Reward: 0.1, Handler: toolPriorityHandler{}},
		settlement.ActionSetFoodDistribution: {Type: settlement.ActionSetFoodDistribution, Reward: 0.1, Handler: foodDistributionHandler{}},
		settlement.ActionNone:                {Type: settlement.ActionNone, Handler: noopHandler{}},
		settlement.ActionWait:                {Type: settlement.ActionWait, Handler: noopHandler{}},
	}
	for _, b := range settlement.PlaceableBuildings() {
		t, _ := settlement.BuildActionFor(b)
		specs[t] = ActionSpec{Type: t, Reward: buildingReward(b), Handler: buildingHandler{building: b}}
	}
	return specs
}

var registry = actionRegistry()

func buildingReward(b settlement.BuildingType) float64 {
	switch {
	case b.IsMine():
		return 3
	case b.IsMilitary():
		return 2
	default:
		return 1.5
	}
}

func lookupSpec(t settlement.ActionType) (ActionSpec, bool) {
	spec, ok := registry[t]
	return spec, ok
}

// Reward is the fixed scoring signal logged for a successful action.
func Reward(t settlement.ActionType) float64 {
	return registry[t].Reward
}

type noopHandler struct{}

func (noopHandler) Validate(Validator, Input) settlement.ValidationResult {
	return settlement.Accept("no-op")
}

func (noopHandler) Execute(Input) bool { return true }
