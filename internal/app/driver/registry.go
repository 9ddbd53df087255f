package driver

import (
	"sort"

	"serfai/internal/app/agent"
	"serfai/internal/app/shared/ailog"
)

// Registry binds at most one agent to each player index. It is not safe for
// concurrent use; the tick loop is its only writer.
type Registry struct {
	agents map[int]agent.Agent
	log    *ailog.Logger
}

func NewRegistry(log *ailog.Logger) *Registry {
	return &Registry{agents: map[int]agent.Agent{}, log: log}
}

// Attach binds a to player, replacing any earlier agent. A nil agent detaches.
func (r *Registry) Attach(player int, a agent.Agent) {
	if a == nil {
		r.Detach(player)
		return
	}
	r.agents[player] = a
	r.log.Attach(player, a.Name())
}

func (r *Registry) Detach(player int) bool {
	if _, ok := r.agents[player]; !ok {
		return false
	}
	delete(r.agents, player)
	r.log.Detach(player)
	return true
}

func (r *Registry) Agent(player int) (agent.Agent, bool) {
	a, ok := r.agents[player]
	return a, ok
}

func (r *Registry) Has(player int) bool {
	_, ok := r.agents[player]
	return ok
}

func (r *Registry) Len() int { return len(r.agents) }

// Players lists bound player indices in ascending order.
func (r *Registry) Players() []int {
	out := make([]int, 0, len(r.agents))
	for p := range r.agents {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func (r *Registry) Clear() {
	for _, p := range r.Players() {
		r.Detach(p)
	}
}
