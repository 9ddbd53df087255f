package cooldown

// Gate allows one decision every Interval ticks. A gate that was never marked
// is open, so the first decision of a game is never delayed.
type Gate struct {
	Interval uint32
	last     uint32
	marked   bool
}

func NewGate(interval uint32) Gate {
	return Gate{Interval: interval}
}

// Remaining returns how many ticks are left before the gate reopens.
func (g Gate) Remaining(tick uint32) uint32 {
	if !g.marked || tick < g.last {
		return 0
	}
	elapsed := tick - g.last
	if elapsed >= g.Interval {
		return 0
	}
	return g.Interval - elapsed
}

func (g Gate) Ready(tick uint32) bool { return g.Remaining(tick) == 0 }

func (g *Gate) Mark(tick uint32) {
	g.last = tick
	g.marked = true
}

// Last reports the tick of the most recent mark.
func (g Gate) Last() (uint32, bool) { return g.last, g.marked }
