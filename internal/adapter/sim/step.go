package sim

import "serfai/internal/domain/settlement"

var production = map[settlement.BuildingType]settlement.ResourceType{
	settlement.BuildingLumberjack:  settlement.ResourceLumber,
	settlement.BuildingStonecutter: settlement.ResourceStone,
	settlement.BuildingFisher:      settlement.ResourceFish,
	settlement.BuildingFarm:        settlement.ResourceWheat,
	settlement.BuildingPigFarm:     settlement.ResourcePig,
	settlement.BuildingStoneMine:   settlement.ResourceStone,
	settlement.BuildingCoalMine:    settlement.ResourceCoal,
	settlement.BuildingIronMine:    settlement.ResourceIronOre,
	settlement.BuildingGoldMine:    settlement.ResourceGoldOre,
}

// converters consume one unit of the first resource to make one of the second.
var converters = map[settlement.BuildingType][2]settlement.ResourceType{
	settlement.BuildingSawmill:      {settlement.ResourceLumber, settlement.ResourcePlank},
	settlement.BuildingMill:         {settlement.ResourceWheat, settlement.ResourceFlour},
	settlement.BuildingBaker:        {settlement.ResourceFlour, settlement.ResourceBread},
	settlement.BuildingButcher:      {settlement.ResourcePig, settlement.ResourceMeat},
	settlement.BuildingSteelSmelter: {settlement.ResourceIronOre, settlement.ResourceSteel},
	settlement.BuildingGoldSmelter:  {settlement.ResourceGoldOre, settlement.ResourceGoldBar},
}

// Step advances the simulation by one tick: construction completes, burning
// buildings disappear and completed producers yield goods every production
// period.
func (e *Engine) Step() {
	if e.ended {
		return
	}
	e.tick++

	kept := e.buildings[:0]
	for _, b := range e.buildings {
		if b.burning && e.tick >= b.burnUntil {
			if i, ok := e.index(b.pos); ok && e.byTile[i] == b {
				delete(e.byTile, i)
			}
			continue
		}
		if !b.completed && !b.burning && e.tick >= b.completeAt {
			b.completed = true
			if b.typ.IsMilitary() {
				e.claim(b.pos, e.cfg.MilitaryRadius, b.owner)
			}
		}
		kept = append(kept, b)
	}
	e.buildings = kept

	if e.tick%e.cfg.ProductionPeriod != 0 {
		return
	}
	for _, b := range e.buildings {
		if !b.completed || b.burning {
			continue
		}
		pl := e.players[b.owner]
		if r, ok := production[b.typ]; ok {
			pl.resources[r]++
			continue
		}
		if conv, ok := converters[b.typ]; ok && pl.resources[conv[0]] > 0 {
			pl.resources[conv[0]]--
			pl.resources[conv[1]]++
		}
	}
}
