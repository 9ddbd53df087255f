package agent

import (
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

// PendingBuilding is a placement the agent proposed but has not yet seen
// connected to a road. Flag is a guess until the building is confirmed.
type PendingBuilding struct {
	Pos      settlement.Pos          `json:"pos"`
	Flag     settlement.Pos          `json:"flag"`
	Type     settlement.BuildingType `json:"type"`
	QueuedAt uint32                  `json:"queued_at"`
}

func (p PendingBuilding) Age(tick uint32) uint32 {
	if tick < p.QueuedAt {
		return 0
	}
	return tick - p.QueuedAt
}

// PendingPolicy is the two-phase commit schedule for placements: entries
// younger than GraceTicks are not judged, and entries are evicted once their
// age reaches the timeout of the queue holding them.
type PendingPolicy struct {
	GraceTicks    uint32 `json:"grace_ticks" yaml:"grace_ticks"`
	AwaitTimeout  uint32 `json:"await_timeout" yaml:"await_timeout"`
	FailedTimeout uint32 `json:"failed_timeout" yaml:"failed_timeout"`
}

func DefaultPendingPolicy() PendingPolicy {
	return PendingPolicy{GraceTicks: 50, AwaitTimeout: 2000, FailedTimeout: 4000}
}

func (p PendingPolicy) normalized() PendingPolicy {
	def := DefaultPendingPolicy()
	if p.AwaitTimeout == 0 {
		p.AwaitTimeout = def.AwaitTimeout
	}
	if p.FailedTimeout == 0 {
		p.FailedTimeout = def.FailedTimeout
	}
	return p
}

type Verdict int

const (
	// VerdictDefer: still inside the grace window.
	VerdictDefer Verdict = iota
	// VerdictGone: the building never appeared or was removed.
	VerdictGone
	// VerdictAwaitFlag: the building stands but its flag is not visible yet.
	VerdictAwaitFlag
	VerdictReady
)

func (v Verdict) String() string {
	switch v {
	case VerdictDefer:
		return "defer"
	case VerdictGone:
		return "gone"
	case VerdictAwaitFlag:
		return "await_flag"
	case VerdictReady:
		return "ready"
	}
	return "unknown"
}

// Judge decides what to do with a pending entry given the current snapshot.
func (p PendingPolicy) Judge(pb PendingBuilding, s world.GameState) Verdict {
	if pb.Age(s.Tick) < p.GraceTicks {
		return VerdictDefer
	}
	if !s.Map.BuildingAt(pb.Pos) {
		return VerdictGone
	}
	if s.Capabilities.Buildings && !hasBuilding(s.Self, pb.Pos, pb.Type) {
		return VerdictGone
	}
	if !s.Map.FlagAt(pb.Flag) {
		return VerdictAwaitFlag
	}
	return VerdictReady
}

func hasBuilding(ps world.PlayerState, pos settlement.Pos, b settlement.BuildingType) bool {
	for _, info := range ps.Buildings {
		if info.Pos == pos {
			return info.Type == b
		}
	}
	return false
}

// pendingQueue is a FIFO of pending entries.
type pendingQueue []PendingBuilding

func (q *pendingQueue) push(pb PendingBuilding) { *q = append(*q, pb) }

func (q pendingQueue) head() (PendingBuilding, bool) {
	if len(q) == 0 {
		return PendingBuilding{}, false
	}
	return q[0], true
}

func (q *pendingQueue) pop() {
	if len(*q) > 0 {
		*q = (*q)[1:]
	}
}

// rotate moves the head to the back.
func (q *pendingQueue) rotate() {
	if len(*q) > 1 {
		h := (*q)[0]
		*q = append((*q)[1:], h)
	}
}

func (q *pendingQueue) setHead(pb PendingBuilding) {
	if len(*q) > 0 {
		(*q)[0] = pb
	}
}

// evict drops every entry whose age reached timeout and reports how many.
func (q *pendingQueue) evict(tick, timeout uint32) int {
	kept := (*q)[:0]
	for _, pb := range *q {
		if pb.Age(tick) < timeout {
			kept = append(kept, pb)
		}
	}
	n := len(*q) - len(kept)
	*q = kept
	return n
}

func (q pendingQueue) snapshot() []PendingBuilding {
	return append([]PendingBuilding(nil), q...)
}
