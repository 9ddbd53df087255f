package settlement

import "fmt"

type BuildingType int

const (
	BuildingNone BuildingType = iota
	BuildingFisher
	BuildingLumberjack
	BuildingBoatbuilder
	BuildingStonecutter
	BuildingStoneMine
	BuildingCoalMine
	BuildingIronMine
	BuildingGoldMine
	BuildingForester
	BuildingStock
	BuildingHut
	BuildingFarm
	BuildingButcher
	BuildingPigFarm
	BuildingMill
	BuildingBaker
	BuildingSawmill
	BuildingSteelSmelter
	BuildingToolMaker
	BuildingWeaponSmith
	BuildingTower
	BuildingFortress
	BuildingGoldSmelter
	BuildingCastle
)

const BuildingTypeCount = int(BuildingCastle) + 1

var buildingNames = [BuildingTypeCount]string{
	"none", "fisher", "lumberjack", "boatbuilder", "stonecutter", "stone_mine",
	"coal_mine", "iron_mine", "gold_mine", "forester", "stock", "hut", "farm",
	"butcher", "pig_farm", "mill", "baker", "sawmill", "steel_smelter",
	"tool_maker", "weapon_smith", "tower", "fortress", "gold_smelter", "castle",
}

func (b BuildingType) String() string {
	if !b.Valid() {
		return fmt.Sprintf("building(%d)", int(b))
	}
	return buildingNames[b]
}

func (b BuildingType) Valid() bool { return b >= BuildingNone && int(b) < BuildingTypeCount }

func (b BuildingType) IsMine() bool {
	switch b {
	case BuildingStoneMine, BuildingCoalMine, BuildingIronMine, BuildingGoldMine:
		return true
	}
	return false
}

func (b BuildingType) IsMilitary() bool {
	switch b {
	case BuildingHut, BuildingTower, BuildingFortress, BuildingCastle:
		return true
	}
	return false
}

// PlaceableBuildings is every type an agent may place with a plain build
// action. The castle has its own action and is excluded.
func PlaceableBuildings() []BuildingType {
	out := make([]BuildingType, 0, BuildingTypeCount-2)
	for b := BuildingFisher; b < BuildingCastle; b++ {
		out = append(out, b)
	}
	return out
}

type ResourceType int

const (
	ResourceFish ResourceType = iota
	ResourcePig
	ResourceMeat
	ResourceWheat
	ResourceFlour
	ResourceBread
	ResourceLumber
	ResourcePlank
	ResourceBoat
	ResourceStone
	ResourceIronOre
	ResourceSteel
	ResourceCoal
	ResourceGoldOre
	ResourceGoldBar
	ResourceShovel
	ResourceHammer
	ResourceRod
	ResourceCleaver
	ResourceScythe
	ResourceAxe
	ResourceSaw
	ResourcePick
	ResourcePincer
	ResourceSword
	ResourceShield
)

const ResourceTypeCount = int(ResourceShield) + 1

// ToolCount is the number of tool kinds with an adjustable production priority
// (shovel through pincer).
const ToolCount = int(ResourcePincer-ResourceShovel) + 1

// FoodConsumerCount is the number of mine kinds sharing the food supply.
const FoodConsumerCount = 4

// KnightTierCount is the number of knight ranks tracked per player.
const KnightTierCount = 5

// Terrain is the freeserf style terrain code: 0-3 water, 4-7 grass,
// 8-10 desert, 11-13 tundra, 14-15 snow.
type Terrain uint8

const (
	TerrainWater0 Terrain = iota
	TerrainWater1
	TerrainWater2
	TerrainWater3
	TerrainGrass0
	TerrainGrass1
	TerrainGrass2
	TerrainGrass3
	TerrainDesert0
	TerrainDesert1
	TerrainDesert2
	TerrainTundra0
	TerrainTundra1
	TerrainTundra2
	TerrainSnow0
	TerrainSnow1
)

func (t Terrain) IsWater() bool  { return t <= TerrainWater3 }
func (t Terrain) IsGrass() bool  { return t >= TerrainGrass0 && t <= TerrainGrass3 }
func (t Terrain) IsTundra() bool { return t >= TerrainTundra0 && t <= TerrainTundra2 }
func (t Terrain) IsSnow() bool   { return t >= TerrainSnow0 }

// Walkable reports whether serfs and roads can cross the tile.
func (t Terrain) Walkable() bool { return !t.IsWater() && !t.IsSnow() }

// Deposit names a kind of natural resource the map reports positions for.
type Deposit string

const (
	DepositTrees Deposit = "trees"
	DepositStone Deposit = "stone"
	DepositCoal  Deposit = "coal"
	DepositIron  Deposit = "iron"
	DepositGold  Deposit = "gold"
	DepositFish  Deposit = "fish"
)

func Deposits() []Deposit {
	return []Deposit{DepositTrees, DepositStone, DepositCoal, DepositIron, DepositGold, DepositFish}
}
