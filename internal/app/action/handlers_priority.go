package action

import (
	"fmt"

	"serfai/internal/domain/settlement"
)

const maxPriorityValue = 65535

func checkPriority(index, limit, value int, what string) settlement.ValidationResult {
	if index < 0 || index >= limit {
		return settlement.Reject(settlement.ErrorUnknown, fmt.Sprintf("%s index %d out of range", what, index))
	}
	if value < 0 || value > maxPriorityValue {
		return settlement.Reject(settlement.ErrorUnknown, fmt.Sprintf("%s value %d out of range", what, value))
	}
	return settlement.Accept(fmt.Sprintf("%s %d set to %d", what, index, value))
}

type resourcePriorityHandler struct{}

func (resourcePriorityHandler) Validate(_ Validator, in Input) settlement.ValidationResult {
	return checkPriority(in.Action.Param1, settlement.ResourceTypeCount, in.Action.Param2, "resource")
}

func (resourcePriorityHandler) Execute(in Input) bool {
	return in.Engine.SetResourcePriority(in.Player, settlement.ResourceType(in.Action.Param1), in.Action.Param2)
}

type toolPriorityHandler struct{}

func (toolPriorityHandler) Validate(_ Validator, in Input) settlement.ValidationResult {
	return checkPriority(in.Action.Param1, settlement.ToolCount, in.Action.Param2, "tool")
}

func (toolPriorityHandler) Execute(in Input) bool {
	return in.Engine.SetToolPriority(in.Player, in.Action.Param1, in.Action.Param2)
}

type foodDistributionHandler struct{}

func (foodDistributionHandler) Validate(_ Validator, in Input) settlement.ValidationResult {
	return checkPriority(in.Action.Param1, settlement.FoodConsumerCount, in.Action.Param2, "food consumer")
}

func (foodDistributionHandler) Execute(in Input) bool {
	return in.Engine.SetFoodDistribution(in.Player, in.Action.Param1, in.Action.Param2)
}
