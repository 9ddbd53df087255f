package driver

import (
	"fmt"

	"serfai/internal/app/agent"
	"serfai/internal/app/ports"
)

// SetupAIPlayers clears every binding and attaches a fresh agent of kind to
// each of the first count players the engine marks as AI. Agents get
// distinct seeds derived from opts.Seed. It returns the bound indices.
func (d *Driver) SetupAIPlayers(eng ports.GameReader, count int, kind agent.Kind, opts agent.Options) ([]int, error) {
	d.Registry.Clear()
	var bound []int
	for i := 0; i < eng.PlayerCount() && len(bound) < count; i++ {
		stats, ok := eng.Player(i)
		if !ok || !stats.IsAI {
			continue
		}
		o := opts
		o.Seed = opts.Seed + int64(i)
		if o.Name == "" {
			o.Name = fmt.Sprintf("AI-Player%d", i)
		} else {
			o.Name = fmt.Sprintf("%s-%d", opts.Name, i)
		}
		a, err := agent.New(kind, o)
		if err != nil {
			d.Registry.Clear()
			return nil, fmt.Errorf("setup ai player %d: %w", i, err)
		}
		d.Registry.Attach(i, a)
		bound = append(bound, i)
	}
	return bound, nil
}

// GameStarted resets per-player metrics and summary schedules.
func (d *Driver) GameStarted() {
	d.perf = map[int]*PerformanceMetrics{}
	d.lastSummary = map[int]uint32{}
}

// GameEnded logs the final standing of every bound agent.
func (d *Driver) GameEnded(eng ports.GameReader) {
	winner := eng.Winner()
	for _, p := range d.Registry.Players() {
		a, _ := d.Registry.Agent(p)
		m, _ := d.PerformanceMetrics(p)
		d.Log.Tracef(p, "game ended: winner=%d victory=%t agent=%s status=%s ok=%d failed=%d avg=%.3fms",
			winner, winner == p, a.Name(), a.Status(), m.SuccessfulActions, m.FailedActions, m.AverageExecutionMs())
	}
}
