package action

import (
	"fmt"

	"serfai/internal/adapter/sim"
	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
)

var _ ports.Engine = (*recordingEngine)(nil)

// recordingEngine wraps the reference simulation and records, for every
// mutation, whether the matching predicate approved the same target since the
// previous mutation.
type recordingEngine struct {
	*sim.Engine
	approved   map[string]bool
	mutations  int
	unapproved int
	pathCalls  int
	failBuilds bool
}

func newRecordingEngine(cfg sim.Config) *recordingEngine {
	return &recordingEngine{Engine: sim.New(cfg), approved: map[string]bool{}}
}

func key(kind string, parts ...any) string { return fmt.Sprint(kind, parts) }

func (r *recordingEngine) approve(ok bool, k string) bool {
	if ok {
		r.approved[k] = true
	}
	return ok
}

func (r *recordingEngine) mutate(k string) bool {
	r.mutations++
	if !r.approved[k] {
		r.unapproved++
	}
	r.approved = map[string]bool{}
	return !r.failBuilds
}

func (r *recordingEngine) CanBuildCastle(p settlement.Pos, pl int) bool {
	return r.approve(r.Engine.CanBuildCastle(p, pl), key("castle", p, pl))
}

func (r *recordingEngine) BuildCastle(p settlement.Pos, pl int) bool {
	return r.mutate(key("castle", p, pl)) && r.Engine.BuildCastle(p, pl)
}

func (r *recordingEngine) CanBuildFlag(p settlement.Pos, pl int) bool {
	return r.approve(r.Engine.CanBuildFlag(p, pl), key("flag", p, pl))
}

func (r *recordingEngine) BuildFlag(p settlement.Pos, pl int) bool {
	return r.mutate(key("flag", p, pl)) && r.Engine.BuildFlag(p, pl)
}

func (r *recordingEngine) CanBuildBuilding(p settlement.Pos, b settlement.BuildingType, pl int) bool {
	return r.approve(r.Engine.CanBuildBuilding(p, b, pl), key("building", p, b, pl))
}

func (r *recordingEngine) BuildBuilding(p settlement.Pos, b settlement.BuildingType, pl int) bool {
	return r.mutate(key("building", p, b, pl)) && r.Engine.BuildBuilding(p, b, pl)
}

func (r *recordingEngine) FindRoadPath(from, to settlement.Pos, pl int) (settlement.Road, bool) {
	r.pathCalls++
	return r.Engine.FindRoadPath(from, to, pl)
}

func (r *recordingEngine) CanBuildRoad(road settlement.Road, pl int) bool {
	return r.approve(r.Engine.CanBuildRoad(road, pl), key("road", road.Source, road.End(), pl))
}

func (r *recordingEngine) BuildRoad(road settlement.Road, pl int) bool {
	return r.mutate(key("road", road.Source, road.End(), pl)) && r.Engine.BuildRoad(road, pl)
}

func (r *recordingEngine) CanDemolishBuilding(p settlement.Pos, pl int) bool {
	return r.approve(r.Engine.CanDemolishBuilding(p, pl), key("demolish", p, pl))
}

func (r *recordingEngine) DemolishBuilding(p settlement.Pos, pl int) bool {
	return r.mutate(key("demolish", p, pl)) && r.Engine.DemolishBuilding(p, pl)
}

func (r *recordingEngine) CanDemolishFlag(p settlement.Pos, pl int) bool {
	return r.approve(r.Engine.CanDemolishFlag(p, pl), key("demolish-flag", p, pl))
}

func (r *recordingEngine) DemolishFlag(p settlement.Pos, pl int) bool {
	return r.mutate(key("demolish-flag", p, pl)) && r.Engine.DemolishFlag(p, pl)
}

func (r *recordingEngine) CanDemolishRoad(p settlement.Pos, d settlement.Direction, pl int) bool {
	return r.approve(r.Engine.CanDemolishRoad(p, d, pl), key("demolish-road", p, d, pl))
}

func (r *recordingEngine) DemolishRoad(p settlement.Pos, d settlement.Direction, pl int) bool {
	return r.mutate(key("demolish-road", p, d, pl)) && r.Engine.DemolishRoad(p, d, pl)
}
