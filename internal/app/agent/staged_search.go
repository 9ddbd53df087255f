package agent

import (
	"math"

	"serfai/internal/app/action"
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

// Authoritative search budgets.
var (
	castleSpiral = action.SearchPlan{MinRadius: 5, RadiusStep: 3, AngleStep: 30, MaxTested: 100}
	foresterRing = action.SearchPlan{MinRadius: 2, MaxRadius: 12, RadiusStep: 2, AngleStep: 45, MaxTested: 80}
	buildingRing = action.SearchPlan{MinRadius: 1, MaxRadius: 10, RadiusStep: 2, AngleStep: 60, MaxTested: 60}
)

const (
	castleEdgeMargin   = 5
	castleGridStep     = 4
	castleGridBudget   = 500
	siteEdgeMargin     = 2
	treeRadius         = 3
	fallbackGridStart  = 10
	fallbackGridBudget = 100
)

func (a *StagedAgent) findCastleSite(dc DecisionContext) (settlement.Pos, bool) {
	if dc.Live != nil {
		return authoritativeCastleSite(dc)
	}
	return fallbackCastleSite(dc.State.Map)
}

// authoritativeCastleSite spirals out from the map centre and then scans a
// coarse grid, asking the engine at every candidate.
func authoritativeCastleSite(dc DecisionContext) (settlement.Pos, bool) {
	m := dc.State.Map
	eng, player := dc.Live.Engine, dc.Live.Player
	accept := func(p settlement.Pos) bool { return eng.CanBuildCastle(p, player) }
	inner := func(p settlement.Pos) bool { return m.Interior(p, castleEdgeMargin) }

	plan := castleSpiral
	plan.MaxRadius = min(m.Width, m.Height)/2 - castleEdgeMargin
	out := plan.Search(m.Center(), inner, accept)
	if out.Found {
		return out.Pos, true
	}

	tested := out.Tested
	for y := castleEdgeMargin; y < m.Height-castleEdgeMargin; y += castleGridStep {
		for x := castleEdgeMargin; x < m.Width-castleEdgeMargin; x += castleGridStep {
			p := settlement.Pos{X: x, Y: y}
			tested++
			if accept(p) {
				return p, true
			}
			if tested > castleGridBudget {
				return settlement.Pos{}, false
			}
		}
	}
	return settlement.Pos{}, false
}

// fallbackCastleSite scans a grid for an unowned grass tile whose 3x3
// neighbourhood is unowned and free of buildings.
func fallbackCastleSite(m world.MapInfo) (settlement.Pos, bool) {
	tested := 0
	for y := fallbackGridStart; y < m.Height-fallbackGridStart; y += castleGridStep {
		for x := fallbackGridStart; x < m.Width-fallbackGridStart; x += castleGridStep {
			p := settlement.Pos{X: x, Y: y}
			tested++
			if castleHeuristic(m, p) {
				return p, true
			}
			if tested > fallbackGridBudget {
				return settlement.Pos{}, false
			}
		}
	}
	return settlement.Pos{}, false
}

func castleHeuristic(m world.MapInfo, p settlement.Pos) bool {
	t, ok := m.TerrainAt(p)
	if !ok || !t.IsGrass() || m.BuildingAt(p) || m.FlagAt(p) || m.OwnerAt(p) != world.Unowned {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			q := p.Add(dx, dy)
			if q == p || !m.InBounds(q) {
				continue
			}
			if m.OwnerAt(q) != world.Unowned || m.BuildingAt(q) {
				return false
			}
		}
	}
	return true
}

// findForesterSite prefers a legal tile with trees in reach. With live access
// and no trees anywhere near, the first legal tile is used.
func (a *StagedAgent) findForesterSite(dc DecisionContext, center settlement.Pos) (settlement.Pos, bool) {
	m := dc.State.Map
	if dc.Live == nil {
		return discSearch(m, center, 2, 10, func(p settlement.Pos) bool {
			return buildingHeuristic(dc.State, p) && forestCover(m, p, treeRadius) >= 2
		})
	}
	eng, player := dc.Live.Engine, dc.Live.Player
	var (
		first    settlement.Pos
		hasFirst bool
	)
	out := foresterRing.Search(center, func(p settlement.Pos) bool { return m.Interior(p, siteEdgeMargin) }, func(p settlement.Pos) bool {
		if !eng.CanBuildBuilding(p, settlement.BuildingForester, player) {
			return false
		}
		if !hasFirst {
			first, hasFirst = p, true
		}
		return treesNear(m, p, treeRadius) >= 1
	})
	if out.Found {
		return out.Pos, true
	}
	return first, hasFirst
}

func (a *StagedAgent) findBuildingSite(dc DecisionContext, center settlement.Pos, b settlement.BuildingType) (settlement.Pos, bool) {
	m := dc.State.Map
	if dc.Live == nil {
		return discSearch(m, center, 2, 8, func(p settlement.Pos) bool { return buildingHeuristic(dc.State, p) })
	}
	eng, player := dc.Live.Engine, dc.Live.Player
	out := buildingRing.Search(center, func(p settlement.Pos) bool { return m.Interior(p, siteEdgeMargin) }, func(p settlement.Pos) bool {
		return eng.CanBuildBuilding(p, b, player)
	})
	return out.Pos, out.Found
}

// buildingHeuristic approximates the engine's placement rules from the
// snapshot: own territory, free tile, grass.
func buildingHeuristic(s world.GameState, p settlement.Pos) bool {
	t, ok := s.Map.TerrainAt(p)
	if !ok || !t.IsGrass() || s.Map.BuildingAt(p) || s.Map.FlagAt(p) {
		return false
	}
	return s.Map.OwnedBy(p, s.Self.Index)
}

// discSearch walks discs of growing radius around center in row order.
func discSearch(m world.MapInfo, center settlement.Pos, minR, maxR int, accept func(settlement.Pos) bool) (settlement.Pos, bool) {
	for r := minR; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				p := center.Add(dx, dy)
				if m.InBounds(p) && accept(p) {
					return p, true
				}
			}
		}
	}
	return settlement.Pos{}, false
}

// treesNear counts reported tree deposits within radius of p.
func treesNear(m world.MapInfo, p settlement.Pos, radius int) int {
	n := 0
	for _, t := range m.Deposits[settlement.DepositTrees] {
		if dist(t, p) <= float64(radius) {
			n++
		}
	}
	return n
}

// forestCover is treesNear when the map reports trees at all. Otherwise every
// grass tile in range counts as potential forest.
func forestCover(m world.MapInfo, p settlement.Pos, radius int) int {
	if len(m.Deposits[settlement.DepositTrees]) > 0 {
		return treesNear(m, p, radius)
	}
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			if t, ok := m.TerrainAt(p.Add(dx, dy)); ok && t.IsGrass() {
				n++
			}
		}
	}
	return n
}

func dist(a, b settlement.Pos) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
