package sim

import (
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

const maxPriority = 65535

// free reports a tile without building, flag or road.
func (e *Engine) free(i int) bool {
	return e.byTile[i] == nil && e.flagTile[i] == 0 && !e.road[i]
}

func (e *Engine) flagNearby(p settlement.Pos) bool {
	for _, d := range settlement.Directions() {
		if e.HasFlag(p.Move(d)) {
			return true
		}
	}
	return false
}

func (e *Engine) buildingNearby(p settlement.Pos) bool {
	for _, d := range settlement.Directions() {
		if e.HasBuilding(p.Move(d)) {
			return true
		}
	}
	return false
}

func suitsBuilding(t settlement.Terrain, b settlement.BuildingType) bool {
	if b.IsMine() {
		return t.IsTundra()
	}
	return t.IsGrass()
}

func (e *Engine) CanBuildFlag(p settlement.Pos, playerIndex int) bool {
	if !e.validPlayer(playerIndex) || !e.interior(p, 1) {
		return false
	}
	i, _ := e.index(p)
	if !e.ownedBy(i, playerIndex) || !e.free(i) || !e.terrain[i].Walkable() {
		return false
	}
	return !e.flagNearby(p)
}

// flagSpotUsable reports whether a building at p can use or create its flag
// at the down-right neighbour.
func (e *Engine) flagSpotUsable(p settlement.Pos, playerIndex int) bool {
	fp := p.Move(settlement.DirDownRight)
	if f := e.flagOn(fp); f != nil {
		return f.owner == playerIndex
	}
	return e.CanBuildFlag(fp, playerIndex)
}

func (e *Engine) CanBuildBuilding(p settlement.Pos, b settlement.BuildingType, playerIndex int) bool {
	if b == settlement.BuildingNone || b == settlement.BuildingCastle || !b.Valid() {
		return false
	}
	if !e.validPlayer(playerIndex) || !e.players[playerIndex].hasCastle || !e.interior(p, 1) {
		return false
	}
	i, _ := e.index(p)
	if !e.ownedBy(i, playerIndex) || !e.free(i) || !suitsBuilding(e.terrain[i], b) {
		return false
	}
	if e.buildingNearby(p) {
		return false
	}
	return e.flagSpotUsable(p, playerIndex)
}

func (e *Engine) CanBuildCastle(p settlement.Pos, playerIndex int) bool {
	if !e.validPlayer(playerIndex) || e.players[playerIndex].hasCastle || !e.interior(p, 2) {
		return false
	}
	i, _ := e.index(p)
	if !e.free(i) || !e.terrain[i].IsGrass() {
		return false
	}
	for _, q := range settlement.Disc(p, 2) {
		j, ok := e.index(q)
		if !ok {
			return false
		}
		if e.owner[j] != world.Unowned || e.byTile[j] != nil {
			return false
		}
	}
	fp := p.Move(settlement.DirDownRight)
	j, _ := e.index(fp)
	return e.free(j) && e.terrain[j].Walkable() && !e.flagNearby(fp)
}

func (e *Engine) BuildCastle(p settlement.Pos, playerIndex int) bool {
	if !e.CanBuildCastle(p, playerIndex) {
		return false
	}
	e.claim(p, e.cfg.CastleRadius, playerIndex)
	pl := e.players[playerIndex]
	pl.hasCastle = true
	pl.castle = p
	pl.castleKnights = 5
	pl.resources[settlement.ResourcePlank] += 10
	pl.resources[settlement.ResourceStone] += 5

	f := e.placeFlag(p.Move(settlement.DirDownRight), playerIndex)
	e.placeBuilding(p, settlement.BuildingCastle, playerIndex, f, true)
	return true
}

func (e *Engine) BuildFlag(p settlement.Pos, playerIndex int) bool {
	if !e.CanBuildFlag(p, playerIndex) {
		return false
	}
	e.placeFlag(p, playerIndex)
	return true
}

func (e *Engine) BuildBuilding(p settlement.Pos, b settlement.BuildingType, playerIndex int) bool {
	if !e.CanBuildBuilding(p, b, playerIndex) {
		return false
	}
	fp := p.Move(settlement.DirDownRight)
	f := e.flagOn(fp)
	if f == nil {
		f = e.placeFlag(fp, playerIndex)
	}
	e.placeBuilding(p, b, playerIndex, f, false)
	return true
}

func (e *Engine) placeFlag(p settlement.Pos, playerIndex int) *flag {
	i, _ := e.index(p)
	f := &flag{index: len(e.flags), pos: p, owner: playerIndex}
	e.flags = append(e.flags, f)
	e.flagTile[i] = f.index
	return f
}

func (e *Engine) placeBuilding(p settlement.Pos, t settlement.BuildingType, playerIndex int, f *flag, completed bool) {
	i, _ := e.index(p)
	b := &building{
		typ:        t,
		pos:        p,
		owner:      playerIndex,
		flag:       f.index,
		completed:  completed,
		completeAt: e.tick + e.cfg.ConstructionTicks,
	}
	e.buildings = append(e.buildings, b)
	e.byTile[i] = b
}

// claim takes every unowned tile within radius of center.
func (e *Engine) claim(center settlement.Pos, radius int, playerIndex int) {
	for _, q := range settlement.Disc(center, radius) {
		if i, ok := e.index(q); ok && e.owner[i] == world.Unowned {
			e.owner[i] = uint8(playerIndex)
		}
	}
}

func (e *Engine) CanDemolishBuilding(p settlement.Pos, playerIndex int) bool {
	i, ok := e.index(p)
	if !ok {
		return false
	}
	b := e.byTile[i]
	return b != nil && b.owner == playerIndex && !b.burning
}

func (e *Engine) DemolishBuilding(p settlement.Pos, playerIndex int) bool {
	if !e.CanDemolishBuilding(p, playerIndex) {
		return false
	}
	i, _ := e.index(p)
	b := e.byTile[i]
	b.burning = true
	b.burnUntil = e.tick + e.cfg.BurnTicks
	if b.typ == settlement.BuildingCastle {
		e.players[playerIndex].hasCastle = false
	}
	return true
}

func (e *Engine) CanDemolishFlag(p settlement.Pos, playerIndex int) bool {
	f := e.flagOn(p)
	if f == nil || f.owner != playerIndex {
		return false
	}
	if b, ok := e.BuildingAt(p.Move(settlement.DirUpLeft)); ok && b.FlagIndex == f.index && !b.Burning {
		return false
	}
	return true
}

func (e *Engine) DemolishFlag(p settlement.Pos, playerIndex int) bool {
	if !e.CanDemolishFlag(p, playerIndex) {
		return false
	}
	f := e.flagOn(p)
	for d := range f.roads {
		if f.roads[d] != nil {
			e.removeRoad(f.roads[d])
		}
	}
	if b, ok := e.byTile[e.mustIndex(p.Move(settlement.DirUpLeft))]; ok && b != nil && b.flag == f.index {
		b.flag = 0
	}
	i, _ := e.index(p)
	delete(e.flagTile, i)
	e.flags[f.index] = nil
	return true
}

func (e *Engine) mustIndex(p settlement.Pos) int {
	i, ok := e.index(p)
	if !ok {
		return -1
	}
	return i
}

func (e *Engine) SetResourcePriority(playerIndex int, r settlement.ResourceType, value int) bool {
	if !e.validPlayer(playerIndex) || r < 0 || int(r) >= settlement.ResourceTypeCount || value < 0 || value > maxPriority {
		return false
	}
	e.players[playerIndex].priorities[r] = value
	return true
}

func (e *Engine) SetToolPriority(playerIndex int, tool int, value int) bool {
	if !e.validPlayer(playerIndex) || tool < 0 || tool >= settlement.ToolCount || value < 0 || value > maxPriority {
		return false
	}
	e.players[playerIndex].tools[tool] = value
	return true
}

func (e *Engine) SetFoodDistribution(playerIndex int, consumer int, value int) bool {
	if !e.validPlayer(playerIndex) || consumer < 0 || consumer >= settlement.FoodConsumerCount || value < 0 || value > maxPriority {
		return false
	}
	e.players[playerIndex].food[consumer] = value
	return true
}
