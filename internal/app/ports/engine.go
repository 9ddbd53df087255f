package ports

import (
	"serfai/internal/domain/settlement"
)

type PlayerStats struct {
	Index     int
	IsAI      bool
	HasCastle bool

	Resources          [settlement.ResourceTypeCount]int
	ResourcePriorities [settlement.ResourceTypeCount]int
	Completed          [settlement.BuildingTypeCount]int
	Incomplete         [settlement.BuildingTypeCount]int

	Knights       [settlement.KnightTierCount]int
	CastleKnights int
	KnightMorale  int
	TerritorySize int
	TotalSerfs    int
	IdleSerfs     int
	EconomicScore int
	MilitaryScore int
}

type BuildingView struct {
	Type      settlement.BuildingType
	Pos       settlement.Pos
	Owner     int
	FlagIndex int
	Completed bool
	Burning   bool
}

// FlagView exposes a flag and its six path slots. Paths[d] is true when a
// road leaves the flag in direction d.
type FlagView struct {
	Index int
	Pos   settlement.Pos
	Owner int
	Paths [settlement.DirectionCount]bool
}

// GameReader is the read side of the simulation.
type GameReader interface {
	Tick() uint32
	Speed() uint32
	PlayerCount() int
	GameEnded() bool
	Winner() int
	Player(index int) (PlayerStats, bool)

	MapSize() (width, height int)
	Terrain(p settlement.Pos) settlement.Terrain
	Elevation(p settlement.Pos) uint8
	// Owner reports the owning player, or false for unowned or off-map tiles.
	Owner(p settlement.Pos) (int, bool)
	HasBuilding(p settlement.Pos) bool
	HasFlag(p settlement.Pos) bool
	HasRoad(p settlement.Pos) bool
	Deposits(kind settlement.Deposit) []settlement.Pos

	BuildingAt(p settlement.Pos) (BuildingView, bool)
	Flag(index int) (FlagView, bool)
	FlagAt(p settlement.Pos) (FlagView, bool)
	// OtherEndFlag resolves the flag at the far end of the road leaving
	// flagIndex in direction d.
	OtherEndFlag(flagIndex int, d settlement.Direction) (int, bool)
}

// Builder holds the authoritative predicates and mutations. Every Can* call is
// a pure read.
type Builder interface {
	CanBuildCastle(p settlement.Pos, player int) bool
	CanBuildFlag(p settlement.Pos, player int) bool
	CanBuildBuilding(p settlement.Pos, b settlement.BuildingType, player int) bool
	CanBuildRoad(road settlement.Road, player int) bool
	CanDemolishBuilding(p settlement.Pos, player int) bool
	CanDemolishFlag(p settlement.Pos, player int) bool
	CanDemolishRoad(flag settlement.Pos, d settlement.Direction, player int) bool

	BuildCastle(p settlement.Pos, player int) bool
	BuildFlag(p settlement.Pos, player int) bool
	BuildBuilding(p settlement.Pos, b settlement.BuildingType, player int) bool
	BuildRoad(road settlement.Road, player int) bool
	DemolishBuilding(p settlement.Pos, player int) bool
	DemolishFlag(p settlement.Pos, player int) bool
	DemolishRoad(flag settlement.Pos, d settlement.Direction, player int) bool

	SetResourcePriority(player int, r settlement.ResourceType, value int) bool
	SetToolPriority(player int, tool int, value int) bool
	SetFoodDistribution(player int, consumer int, value int) bool
}

// PathFinder turns two flag positions into a constructible route.
type PathFinder interface {
	FindRoadPath(from, to settlement.Pos, player int) (settlement.Road, bool)
}

type Engine interface {
	GameReader
	Builder
	PathFinder
}

// BuildingLister is implemented by engines able to enumerate a player's
// buildings. Snapshots record whether it was available.
type BuildingLister interface {
	Buildings(player int) []BuildingView
}

// Simulation is an engine the host can advance.
type Simulation interface {
	Engine
	Step()
}
