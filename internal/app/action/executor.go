package action

import (
	"fmt"
	"time"

	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
)

// Executor applies actions to the engine. It re-validates every action at its
// exact position immediately before mutating.
type Executor struct {
	Validator Validator
	Now       func() time.Time
}

func NewExecutor(v Validator) Executor {
	return Executor{Validator: v, Now: time.Now}
}

func (x Executor) Execute(a settlement.Action, eng ports.Engine, player int) settlement.ExecutionResult {
	now := x.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	res := x.execute(a, eng, player)
	res.Duration = now().Sub(start)
	return res
}

func (x Executor) execute(a settlement.Action, eng ports.Engine, player int) settlement.ExecutionResult {
	spec, ok := lookupSpec(a.Type)
	if !ok {
		return settlement.ExecutionResult{
			Kind:    settlement.ErrorUnknown,
			Message: fmt.Sprintf("unsupported action type %q", a.Type),
		}
	}

	in := Input{Action: a, Engine: eng, Player: player}
	check := spec.Handler.Validate(x.Validator, in)
	if !check.Valid {
		return settlement.ExecutionResult{Kind: check.Kind, Message: check.Reason}
	}
	if !spec.Handler.Execute(in) {
		return settlement.ExecutionResult{
			Kind:    settlement.ErrorEngine,
			Message: fmt.Sprintf("engine rejected %s after validation", a.Describe()),
		}
	}
	return settlement.ExecutionResult{
		Success: true,
		Reward:  spec.Reward,
		Kind:    settlement.ErrorNone,
		Message: fmt.Sprintf("executed %s", a.Describe()),
	}
}
