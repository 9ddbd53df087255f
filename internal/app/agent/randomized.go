package agent

import (
	"fmt"
	"math/rand"

	"serfai/internal/app/shared/ailog"
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

const (
	buildingProbability = 0.3
	flagProbability     = 0.1
	maxActionsPerTick   = 2

	randomSiteAttempts = 50
	randomSiteMargin   = 5

	// Castle flag distance cutoffs, by number of flags already near it.
	isolatedCastleReach  = 30
	connectedCastleReach = 15
	busyCastleReach      = 8
	nearestFlagReach     = 10
	connectionRadius     = 6
	castleFlagNeighbours = 2
)

// RandomizedAgent places random buildings and follows each one through
// placement, flag confirmation, road connection or demolition.
type RandomizedAgent struct {
	profile
	rng        *rand.Rand
	policy     PendingPolicy
	buildings  []settlement.BuildingType
	awaiting   pendingQueue
	failed     pendingQueue
	castle     settlement.Pos
	haveCastle bool
	log        *ailog.Logger
}

func NewRandomized(seed int64, policy PendingPolicy, log *ailog.Logger) *RandomizedAgent {
	return &RandomizedAgent{
		profile:   newProfile("RandomAgent", KindRandom),
		rng:       rand.New(rand.NewSource(seed)),
		policy:    policy.normalized(),
		buildings: settlement.PlaceableBuildings(),
		log:       log,
	}
}

func (a *RandomizedAgent) Ready() bool { return true }

func (a *RandomizedAgent) Status() string {
	return fmt.Sprintf("awaiting=%d failed=%d", len(a.awaiting), len(a.failed))
}

func (a *RandomizedAgent) Policy() PendingPolicy { return a.policy }

// Awaiting returns a copy of the awaiting-connection queue, oldest first.
func (a *RandomizedAgent) Awaiting() []PendingBuilding { return a.awaiting.snapshot() }

// Failed returns a copy of the failed-connection queue.
func (a *RandomizedAgent) Failed() []PendingBuilding { return a.failed.snapshot() }

func (a *RandomizedAgent) Decide(dc DecisionContext) []settlement.Action {
	s := dc.State
	player := s.Self.Index
	if n := a.awaiting.evict(s.Tick, a.policy.AwaitTimeout); n > 0 {
		a.log.Tracef(player, "evicted %d stale awaiting entries", n)
	}
	if n := a.failed.evict(s.Tick, a.policy.FailedTimeout); n > 0 {
		a.log.Tracef(player, "evicted %d stale failed entries", n)
	}

	if !s.Self.HasCastle {
		pos, _ := a.randomSite(dc, func(p settlement.Pos) bool { return dc.Live.Engine.CanBuildCastle(p, dc.Live.Player) })
		a.castle, a.haveCastle = pos, true
		return []settlement.Action{settlement.NewBuildCastle(pos)}
	}

	var actions []settlement.Action
	road, ok, halt := a.serviceAwaiting(dc)
	if halt {
		return nil
	}
	if ok {
		actions = append(actions, road)
	}
	if len(actions) < maxActionsPerTick {
		if demolish, ok := a.demolishFailed(dc); ok {
			actions = append(actions, demolish)
		}
	}
	if len(actions) < maxActionsPerTick && a.rng.Float64() < buildingProbability {
		if place, ok := a.placeBuilding(dc); ok {
			actions = append(actions, place)
		}
	}
	if len(actions) == 0 && a.rng.Float64() < flagProbability {
		pos, _ := a.randomSite(dc, func(p settlement.Pos) bool { return dc.Live.Engine.CanBuildFlag(p, dc.Live.Player) })
		actions = append(actions, settlement.NewBuildFlag(pos))
	}
	return actions
}

// serviceAwaiting looks at the oldest awaiting entry. halt is set when the
// entry turned out to be a failed placement, which ends the tick.
func (a *RandomizedAgent) serviceAwaiting(dc DecisionContext) (act settlement.Action, ok bool, halt bool) {
	s := dc.State
	pb, found := a.awaiting.head()
	if !found {
		return settlement.Action{}, false, false
	}
	if dc.Live != nil && pb.Age(s.Tick) >= a.policy.GraceTicks {
		if fp, exact := buildingFlag(dc.Live.Engine, dc.Live.Player, pb.Pos, pb.Type); exact && fp != pb.Flag {
			pb.Flag = fp
			a.awaiting.setHead(pb)
		}
	}

	switch a.policy.Judge(pb, s) {
	case VerdictDefer, VerdictAwaitFlag:
		return settlement.Action{}, false, false
	case VerdictGone:
		a.awaiting.pop()
		a.log.Tracef(s.Self.Index, "%s at %s never appeared, dropped", pb.Type, pb.Pos)
		return settlement.Action{}, false, true
	}

	a.awaiting.pop()
	target, found := a.connectionTarget(dc, pb.Flag)
	if !found {
		a.failed.push(pb)
		a.log.Tracef(s.Self.Index, "no connection for %s at %s", pb.Type, pb.Pos)
		return settlement.Action{}, false, false
	}
	return settlement.NewBuildRoad(pb.Flag, target), true, false
}

// demolishFailed proposes demolishing the head of the failed queue. Castles
// are dropped from the queue, never demolished. Without live access nothing
// is demolished until the castle has been located; the entries wait for
// eviction instead.
func (a *RandomizedAgent) demolishFailed(dc DecisionContext) (settlement.Action, bool) {
	s := dc.State
	if dc.Live == nil {
		if _, ok := castlePosition(dc, a.castle, a.haveCastle); !ok {
			return settlement.Action{}, false
		}
	}
	for range len(a.failed) {
		pb, _ := a.failed.head()
		if a.isCastle(dc, pb) {
			a.failed.pop()
			continue
		}
		if !s.Map.BuildingAt(pb.Pos) {
			a.failed.pop()
			continue
		}
		a.failed.rotate()
		return settlement.NewDemolishBuilding(pb.Pos), true
	}
	return settlement.Action{}, false
}

func (a *RandomizedAgent) isCastle(dc DecisionContext, pb PendingBuilding) bool {
	if pb.Type == settlement.BuildingCastle {
		return true
	}
	if pos, ok := dc.State.CastlePos(); ok && pos == pb.Pos {
		return true
	}
	if a.haveCastle && a.castle == pb.Pos {
		return true
	}
	if dc.Live != nil {
		if view, ok := dc.Live.Engine.BuildingAt(pb.Pos); ok && view.Type == settlement.BuildingCastle {
			return true
		}
	}
	return false
}

// placeBuilding proposes a random building and queues it as pending. With
// live access it gives up when no draw is legal, so the queued position is
// never one the validator would move. Snapshot-only placements stay
// optimistic: a corrected building is untracked and its entry ends as gone.
func (a *RandomizedAgent) placeBuilding(dc DecisionContext) (settlement.Action, bool) {
	s := dc.State
	b := a.buildings[a.rng.Intn(len(a.buildings))]
	pos, legal := a.randomSite(dc, func(p settlement.Pos) bool { return dc.Live.Engine.CanBuildBuilding(p, b, dc.Live.Player) })
	if dc.Live != nil && !legal {
		a.log.Tracef(s.Self.Index, "no legal site for %s", b)
		return settlement.Action{}, false
	}
	act, _ := settlement.NewBuildBuilding(b, pos)
	a.awaiting.push(PendingBuilding{Pos: pos, Flag: estimateFlag(s.Map, pos), Type: b, QueuedAt: s.Tick})
	return act, true
}

// randomSite draws interior positions. With live access the first draw legal
// accepts wins and ok is set; otherwise, or if none is legal, the first
// interior draw is used. The map centre is the last resort.
func (a *RandomizedAgent) randomSite(dc DecisionContext, legal func(settlement.Pos) bool) (settlement.Pos, bool) {
	m := dc.State.Map
	if m.Width <= 0 || m.Height <= 0 {
		return settlement.Pos{}, false
	}
	var (
		first    settlement.Pos
		hasFirst bool
	)
	for range randomSiteAttempts {
		p := settlement.Pos{X: a.rng.Intn(m.Width), Y: a.rng.Intn(m.Height)}
		if p.X <= randomSiteMargin || p.X >= m.Width-randomSiteMargin || p.Y <= randomSiteMargin || p.Y >= m.Height-randomSiteMargin {
			continue
		}
		if dc.Live == nil {
			return p, false
		}
		if !hasFirst {
			first, hasFirst = p, true
		}
		if legal(p) {
			return p, true
		}
	}
	if hasFirst {
		return first, false
	}
	return m.Center(), false
}

var flagOffsets = []settlement.Direction{settlement.DirDownRight, settlement.DirRight, settlement.DirDown}

// estimateFlag guesses where a building's flag will end up: the first
// neighbour from flagOffsets that already holds a flag or is free, favouring
// down-right.
func estimateFlag(m world.MapInfo, building settlement.Pos) settlement.Pos {
	for _, d := range flagOffsets {
		p := building.Move(d)
		if !m.InBounds(p) {
			continue
		}
		if m.FlagAt(p) || (!m.BuildingAt(p) && !m.RoadAt(p)) {
			return p
		}
	}
	return building.Move(settlement.DirDownRight)
}

// connectionTarget picks the flag a new road from `from` should reach. The
// castle flag is preferred, with a reach that shrinks as the castle gathers
// connections; otherwise the nearest owned flag within nearestFlagReach.
func (a *RandomizedAgent) connectionTarget(dc DecisionContext, from settlement.Pos) (settlement.Pos, bool) {
	s := dc.State
	if castleFlag, ok := a.castleFlag(dc); ok && castleFlag != from {
		reach := castleReach(castleConnections(s, castleFlag))
		if settlement.HexDistance(from, castleFlag) <= reach {
			return castleFlag, true
		}
	}

	var (
		best  settlement.Pos
		bestD = -1
	)
	for _, f := range s.Map.OwnedFlags(s.Self.Index) {
		if f == from {
			continue
		}
		d := settlement.HexDistance(from, f)
		if d > nearestFlagReach {
			continue
		}
		if bestD < 0 || d < bestD {
			best, bestD = f, d
		}
	}
	return best, bestD >= 0
}

func castleReach(connections int) int {
	switch {
	case connections == 0:
		return isolatedCastleReach
	case connections < 3:
		return connectedCastleReach
	default:
		return busyCastleReach
	}
}

// castleConnections approximates how connected the castle is by counting the
// player's other flags within connectionRadius of the castle flag. No road is
// traced.
func castleConnections(s world.GameState, castleFlag settlement.Pos) int {
	n := 0
	for _, f := range s.Map.OwnedFlags(s.Self.Index) {
		if f != castleFlag && settlement.HexDistance(f, castleFlag) <= connectionRadius {
			n++
		}
	}
	return n
}

// castleFlag finds the castle's flag exactly when the castle position is
// known, and otherwise guesses it.
func (a *RandomizedAgent) castleFlag(dc DecisionContext) (settlement.Pos, bool) {
	if pos, ok := castlePosition(dc, a.castle, a.haveCastle); ok {
		if dc.Live != nil {
			if fp, ok := buildingFlag(dc.Live.Engine, dc.Live.Player, pos, settlement.BuildingCastle); ok {
				return fp, true
			}
		} else if fp, ok := snapshotFlag(dc.State.Map, pos); ok {
			return fp, true
		}
	}
	return centralFlag(dc.State)
}

// centralFlag is the castle flag heuristic: the owned flag with the most
// owned tiles around it is assumed to sit at the heart of the territory.
func centralFlag(s world.GameState) (settlement.Pos, bool) {
	var (
		best  settlement.Pos
		score = -1
	)
	for _, f := range s.Map.OwnedFlags(s.Self.Index) {
		n := 0
		for _, q := range settlement.Disc(f, castleFlagNeighbours) {
			if s.Map.OwnedBy(q, s.Self.Index) {
				n++
			}
		}
		if n > score {
			best, score = f, n
		}
	}
	return best, score >= 0
}
