package world

import (
	"time"

	"serfai/internal/domain/settlement"
)

// Unowned marks a tile no player controls. Player indices are always below it.
const Unowned uint8 = 255

// NoWinner is GlobalInfo.Winner while the game is still running.
const NoWinner = -1

// GameState is the read-only view of the simulation handed to an agent for
// one tick.
type GameState struct {
	Tick         uint32        `json:"tick"`
	Speed        uint32        `json:"speed"`
	Self         PlayerState   `json:"self"`
	Opponents    []PlayerState `json:"opponents"`
	Map          MapInfo       `json:"map"`
	Global       GlobalInfo    `json:"global"`
	Capabilities Capabilities  `json:"capabilities"`
}

// Capabilities records which optional collections the capturing engine could
// populate, so "no opponents" and "opponents unknown" stay distinguishable.
type Capabilities struct {
	Opponents bool `json:"opponents"`
	Buildings bool `json:"buildings"`
}

type BuildingInfo struct {
	Pos       settlement.Pos          `json:"pos"`
	Type      settlement.BuildingType `json:"type"`
	Completed bool                    `json:"completed"`
}

type PlayerState struct {
	Index     int  `json:"index"`
	IsAI      bool `json:"is_ai"`
	HasCastle bool `json:"has_castle"`

	Resources          [settlement.ResourceTypeCount]int `json:"resources"`
	ResourcePriorities [settlement.ResourceTypeCount]int `json:"resource_priorities"`

	// BuildingCounts sums completed and under-construction buildings.
	BuildingCounts [settlement.BuildingTypeCount]int `json:"building_counts"`
	Buildings      []BuildingInfo                    `json:"buildings"`

	Knights       [settlement.KnightTierCount]int `json:"knights"`
	CastleKnights int                             `json:"castle_knights"`
	KnightMorale  int                             `json:"knight_morale"`
	TerritorySize int                             `json:"territory_size"`
	TotalSerfs    int                             `json:"total_serfs"`
	IdleSerfs     int                             `json:"idle_serfs"`
	EconomicScore int                             `json:"economic_score"`
	MilitaryScore int                             `json:"military_score"`
}

func (p PlayerState) Count(b settlement.BuildingType) int {
	if !b.Valid() {
		return 0
	}
	return p.BuildingCounts[b]
}

func (p PlayerState) Resource(r settlement.ResourceType) int {
	if r < 0 || int(r) >= settlement.ResourceTypeCount {
		return 0
	}
	return p.Resources[r]
}

// FirstBuilding returns the first known building of type b.
func (p PlayerState) FirstBuilding(b settlement.BuildingType) (BuildingInfo, bool) {
	for _, info := range p.Buildings {
		if info.Type == b {
			return info, true
		}
	}
	return BuildingInfo{}, false
}

type GlobalInfo struct {
	PlayerCount   int           `json:"player_count"`
	AIPlayerCount int           `json:"ai_player_count"`
	GameEnded     bool          `json:"game_ended"`
	Winner        int           `json:"winner"`
	TimeBudget    time.Duration `json:"time_budget"`
	LastExecution time.Duration `json:"last_execution"`
}

// CastlePos looks the castle up in the building list. It reports false when
// the list is unavailable or holds no castle.
func (s GameState) CastlePos() (settlement.Pos, bool) {
	if !s.Capabilities.Buildings {
		return settlement.Pos{}, false
	}
	info, ok := s.Self.FirstBuilding(settlement.BuildingCastle)
	return info.Pos, ok
}
