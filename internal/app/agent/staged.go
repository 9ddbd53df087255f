package agent

import (
	"serfai/internal/app/shared/ailog"
	"serfai/internal/app/shared/cooldown"
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

type Stage int

const (
	StageNeedCastle Stage = iota
	StageNeedForester
	StageNeedLumberjack
	StageNeedRoads
	StageProducing
	StageExpanding
)

var stageNames = [...]string{"NEED_CASTLE", "NEED_FORESTER", "NEED_LUMBERJACK", "NEED_ROADS", "PRODUCING", "EXPANDING"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "UNKNOWN"
	}
	return stageNames[s]
}

const (
	stagedCooldown = 10
	// roadPhaseTicks is the game tick after which road building gives way to
	// production.
	roadPhaseTicks  = 300
	expansionLumber = 5
)

// StagedAgent bootstraps a wood economy in a fixed order: castle, forester,
// lumberjack, roads. Stages only move forward.
type StagedAgent struct {
	profile
	stage  Stage
	gate   cooldown.Gate
	placed map[settlement.BuildingType]settlement.Pos
	log    *ailog.Logger
}

func NewStaged(log *ailog.Logger) *StagedAgent {
	return &StagedAgent{
		profile: newProfile("StagedAgent", KindScripted),
		gate:    cooldown.NewGate(stagedCooldown),
		placed:  map[settlement.BuildingType]settlement.Pos{},
		log:     log,
	}
}

func (a *StagedAgent) Ready() bool    { return true }
func (a *StagedAgent) Stage() Stage   { return a.stage }
func (a *StagedAgent) Status() string { return a.stage.String() }

func (a *StagedAgent) Decide(dc DecisionContext) []settlement.Action {
	s := dc.State
	a.advance(s)
	if !a.gate.Ready(s.Tick) {
		return []settlement.Action{settlement.NewWait()}
	}
	a.gate.Mark(s.Tick)

	switch a.stage {
	case StageNeedCastle:
		return a.decideCastle(dc)
	case StageNeedForester:
		return a.decidePlacement(dc, settlement.BuildingForester)
	case StageNeedLumberjack:
		return a.decidePlacement(dc, settlement.BuildingLumberjack)
	case StageNeedRoads:
		return a.decideRoads(dc)
	}
	return nil
}

// advance applies at most one transition per call.
func (a *StagedAgent) advance(s world.GameState) {
	from := a.stage
	switch a.stage {
	case StageNeedCastle:
		if s.Self.HasCastle {
			a.stage = StageNeedForester
			if pos, ok := s.CastlePos(); ok {
				a.placed[settlement.BuildingCastle] = pos
			}
		}
	case StageNeedForester:
		if s.Self.Count(settlement.BuildingForester) > 0 {
			a.stage = StageNeedLumberjack
		}
	case StageNeedLumberjack:
		if s.Self.Count(settlement.BuildingLumberjack) > 0 {
			a.stage = StageNeedRoads
		}
	case StageNeedRoads:
		if s.Tick > roadPhaseTicks {
			a.stage = StageProducing
		}
	case StageProducing:
		if s.Self.Resource(settlement.ResourceLumber) > expansionLumber {
			a.stage = StageExpanding
		}
	}
	if a.stage != from {
		a.log.StateChange(s.Self.Index, from.String(), a.stage.String())
	}
}

func (a *StagedAgent) decideCastle(dc DecisionContext) []settlement.Action {
	if dc.State.Self.HasCastle {
		return nil
	}
	pos, ok := a.findCastleSite(dc)
	if !ok {
		a.log.Tracef(dc.State.Self.Index, "no castle site found")
		return nil
	}
	a.placed[settlement.BuildingCastle] = pos
	return []settlement.Action{settlement.NewBuildCastle(pos)}
}

// decidePlacement proposes b near its reference building unless one is
// already standing or under construction.
func (a *StagedAgent) decidePlacement(dc DecisionContext, b settlement.BuildingType) []settlement.Action {
	if dc.State.Self.Count(b) > 0 {
		return nil
	}
	ref, ok := a.reference(dc, b)
	if !ok {
		return nil
	}
	var pos settlement.Pos
	if b == settlement.BuildingForester {
		pos, ok = a.findForesterSite(dc, ref)
	} else {
		pos, ok = a.findBuildingSite(dc, ref, b)
	}
	if !ok {
		a.log.Tracef(dc.State.Self.Index, "no %s site near %s", b, ref)
		return nil
	}
	act, err := settlement.NewBuildBuilding(b, pos)
	if err != nil {
		a.log.Error(dc.State.Self.Index, "build action", err)
		return nil
	}
	a.placed[b] = pos
	return []settlement.Action{act}
}

// reference is the castle for the forester, and the forester (falling back
// to the castle) for everything else.
func (a *StagedAgent) reference(dc DecisionContext, b settlement.BuildingType) (settlement.Pos, bool) {
	if b != settlement.BuildingForester {
		if pos, ok := a.position(dc.State, settlement.BuildingForester); ok {
			return pos, true
		}
	}
	guess, have := a.placed[settlement.BuildingCastle]
	return castlePosition(dc, guess, have)
}

// position prefers the snapshot's building list over the agent's own record,
// which may predate a validator correction.
func (a *StagedAgent) position(s world.GameState, b settlement.BuildingType) (settlement.Pos, bool) {
	if s.Capabilities.Buildings {
		if info, ok := s.Self.FirstBuilding(b); ok {
			return info.Pos, true
		}
	}
	pos, ok := a.placed[b]
	return pos, ok
}

// decideRoads links the forester, then the lumberjack, to the castle flag.
// One road per decision.
func (a *StagedAgent) decideRoads(dc DecisionContext) []settlement.Action {
	if dc.Live == nil {
		return nil
	}
	eng, player := dc.Live.Engine, dc.Live.Player
	castle, ok := a.position(dc.State, settlement.BuildingCastle)
	if !ok {
		return nil
	}
	castleFlag, ok := buildingFlag(eng, player, castle, settlement.BuildingCastle)
	if !ok {
		a.log.Tracef(player, "castle flag not found at %s", castle)
		return nil
	}
	for _, b := range []settlement.BuildingType{settlement.BuildingForester, settlement.BuildingLumberjack} {
		pos, ok := a.position(dc.State, b)
		if !ok {
			continue
		}
		flagPos, ok := buildingFlag(eng, player, pos, b)
		if !ok || roadExists(eng, flagPos, castleFlag) {
			continue
		}
		return []settlement.Action{settlement.NewBuildRoad(flagPos, castleFlag)}
	}
	return nil
}
