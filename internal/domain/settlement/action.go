package settlement

import "fmt"

type ActionType string

const (
	ActionBuildCastle         ActionType = "BUILD_CASTLE"
	ActionBuildFlag           ActionType = "BUILD_FLAG"
	ActionBuildRoad           ActionType = "BUILD_ROAD"
	ActionBuildLumberjack     ActionType = "BUILD_LUMBERJACK"
	ActionBuildForester       ActionType = "BUILD_FORESTER"
	ActionBuildStonecutter    ActionType = "BUILD_STONECUTTER"
	ActionBuildFisher         ActionType = "BUILD_FISHER"
	ActionBuildBoatbuilder    ActionType = "BUILD_BOATBUILDER"
	ActionBuildStoneMine      ActionType = "BUILD_STONE_MINE"
	ActionBuildCoalMine       ActionType = "BUILD_COAL_MINE"
	ActionBuildIronMine       ActionType = "BUILD_IRON_MINE"
	ActionBuildGoldMine       ActionType = "BUILD_GOLD_MINE"
	ActionBuildStock          ActionType = "BUILD_STOCK"
	ActionBuildHut            ActionType = "BUILD_HUT"
	ActionBuildFarm           ActionType = "BUILD_FARM"
	ActionBuildButcher        ActionType = "BUILD_BUTCHER"
	ActionBuildPigFarm        ActionType = "BUILD_PIG_FARM"
	ActionBuildMill           ActionType = "BUILD_MILL"
	ActionBuildBaker          ActionType = "BUILD_BAKER"
	ActionBuildSawmill        ActionType = "BUILD_SAWMILL"
	ActionBuildSteelSmelter   ActionType = "BUILD_STEEL_SMELTER"
	ActionBuildToolMaker      ActionType = "BUILD_TOOL_MAKER"
	ActionBuildWeaponSmith    ActionType = "BUILD_WEAPON_SMITH"
	ActionBuildTower          ActionType = "BUILD_TOWER"
	ActionBuildFortress       ActionType = "BUILD_FORTRESS"
	ActionBuildGoldSmelter    ActionType = "BUILD_GOLD_SMELTER"
	ActionDemolishBuilding    ActionType = "DEMOLISH_BUILDING"
	ActionDemolishFlag        ActionType = "DEMOLISH_FLAG"
	ActionDemolishRoad        ActionType = "DEMOLISH_ROAD"
	ActionSetResourcePriority ActionType = "SET_RESOURCE_PRIORITY"
	ActionSetToolPriority     ActionType = "SET_TOOL_PRIORITY"
	ActionSetFoodDistribution ActionType = "SET_FOOD_DISTRIBUTION"
	ActionNone                ActionType = "NO_ACTION"
	ActionWait                ActionType = "WAIT"
)

var buildActions = map[ActionType]BuildingType{
	ActionBuildLumberjack:   BuildingLumberjack,
	ActionBuildForester:     BuildingForester,
	ActionBuildStonecutter:  BuildingStonecutter,
	ActionBuildFisher:       BuildingFisher,
	ActionBuildBoatbuilder:  BuildingBoatbuilder,
	ActionBuildStoneMine:    BuildingStoneMine,
	ActionBuildCoalMine:     BuildingCoalMine,
	ActionBuildIronMine:     BuildingIronMine,
	ActionBuildGoldMine:     BuildingGoldMine,
	ActionBuildStock:        BuildingStock,
	ActionBuildHut:          BuildingHut,
	ActionBuildFarm:         BuildingFarm,
	ActionBuildButcher:      BuildingButcher,
	ActionBuildPigFarm:      BuildingPigFarm,
	ActionBuildMill:         BuildingMill,
	ActionBuildBaker:        BuildingBaker,
	ActionBuildSawmill:      BuildingSawmill,
	ActionBuildSteelSmelter: BuildingSteelSmelter,
	ActionBuildToolMaker:    BuildingToolMaker,
	ActionBuildWeaponSmith:  BuildingWeaponSmith,
	ActionBuildTower:        BuildingTower,
	ActionBuildFortress:     BuildingFortress,
	ActionBuildGoldSmelter:  BuildingGoldSmelter,
}

var actionForBuilding = func() map[BuildingType]ActionType {
	out := make(map[BuildingType]ActionType, len(buildActions))
	for a, b := range buildActions {
		out[b] = a
	}
	return out
}()

// Building returns the building type a plain build action places.
func (t ActionType) Building() (BuildingType, bool) {
	b, ok := buildActions[t]
	return b, ok
}

// IsPlacement reports whether the action puts a building on the map,
// including the castle.
func (t ActionType) IsPlacement() bool {
	if t == ActionBuildCastle {
		return true
	}
	_, ok := buildActions[t]
	return ok
}

func (t ActionType) IsNoop() bool { return t == ActionNone || t == ActionWait }

func BuildActionFor(b BuildingType) (ActionType, bool) {
	if b == BuildingCastle {
		return ActionBuildCastle, true
	}
	a, ok := actionForBuilding[b]
	return a, ok
}

// Action is a single proposed change. Pos is the primary tile; Target is the
// road destination. Param1 and Param2 carry priority actions' arguments, and
// Param1 names the direction slot for DEMOLISH_ROAD.
type Action struct {
	Type       ActionType `json:"type"`
	Pos        Pos        `json:"pos"`
	Target     Pos        `json:"target"`
	Param1     int        `json:"param1,omitempty"`
	Param2     int        `json:"param2,omitempty"`
	Priority   float64    `json:"priority"`
	Confidence float64    `json:"confidence"`
}

func NewBuildCastle(pos Pos) Action {
	return Action{Type: ActionBuildCastle, Pos: pos, Priority: 1.0, Confidence: 1.0}
}

func NewBuildFlag(pos Pos) Action {
	return Action{Type: ActionBuildFlag, Pos: pos, Priority: 0.5, Confidence: 1.0}
}

func NewBuildRoad(from, to Pos) Action {
	return Action{Type: ActionBuildRoad, Pos: from, Target: to, Priority: 0.9, Confidence: 1.0}
}

// NewBuildBuilding returns the placement action for b. The castle maps to
// BUILD_CASTLE; BuildingNone is rejected.
func NewBuildBuilding(b BuildingType, pos Pos) (Action, error) {
	t, ok := BuildActionFor(b)
	if !ok {
		return Action{}, fmt.Errorf("no build action for %s", b)
	}
	priority := 0.6
	switch b {
	case BuildingCastle:
		priority = 1.0
	case BuildingForester:
		priority = 0.8
	case BuildingLumberjack:
		priority = 0.7
	}
	return Action{Type: t, Pos: pos, Priority: priority, Confidence: 1.0}, nil
}

func NewDemolishBuilding(pos Pos) Action {
	return Action{Type: ActionDemolishBuilding, Pos: pos, Priority: 0.4, Confidence: 1.0}
}

func NewDemolishFlag(pos Pos) Action {
	return Action{Type: ActionDemolishFlag, Pos: pos, Priority: 0.3, Confidence: 1.0}
}

func NewDemolishRoad(flag Pos, dir Direction) Action {
	return Action{Type: ActionDemolishRoad, Pos: flag, Param1: int(dir), Priority: 0.3, Confidence: 1.0}
}

func NewSetResourcePriority(r ResourceType, value int) Action {
	return Action{Type: ActionSetResourcePriority, Param1: int(r), Param2: value, Priority: 0.2, Confidence: 1.0}
}

func NewSetToolPriority(tool int, value int) Action {
	return Action{Type: ActionSetToolPriority, Param1: tool, Param2: value, Priority: 0.2, Confidence: 1.0}
}

func NewSetFoodDistribution(consumer int, value int) Action {
	return Action{Type: ActionSetFoodDistribution, Param1: consumer, Param2: value, Priority: 0.2, Confidence: 1.0}
}

func NewWait() Action { return Action{Type: ActionWait} }

// WithPos returns a copy of the action moved to pos.
func (a Action) WithPos(pos Pos) Action {
	a.Pos = pos
	return a
}

// Describe renders the action for logs, e.g. "BUILD_ROAD((3,4) -> (9,9))".
func (a Action) Describe() string {
	switch a.Type {
	case ActionBuildRoad:
		return fmt.Sprintf("%s(%s -> %s)", a.Type, a.Pos, a.Target)
	case ActionDemolishRoad:
		return fmt.Sprintf("%s(%s, %s)", a.Type, a.Pos, Direction(a.Param1))
	case ActionSetResourcePriority, ActionSetToolPriority, ActionSetFoodDistribution:
		return fmt.Sprintf("%s(%d, %d)", a.Type, a.Param1, a.Param2)
	case ActionNone, ActionWait:
		return string(a.Type)
	}
	return fmt.Sprintf("%s(%s)", a.Type, a.Pos)
}
