package inmemory

import (
	"testing"

	"serfai/internal/domain/settlement"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess(settlement.ActionBuildCastle)
	r.RecordSuccess(settlement.ActionBuildRoad)
	r.RecordFailure(settlement.ActionBuildRoad, settlement.ErrorInvalidRoadPath)
	r.RecordFailure(settlement.ActionBuildForester, settlement.ErrorInvalidPosition)
	r.RecordBudgetExceeded()

	s := r.Snapshot()
	if s.ActionTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.ActionTotal)
	}
	if s.ActionSuccess != 2 {
		t.Fatalf("expected success 2, got %d", s.ActionSuccess)
	}
	if s.ActionFailure != 2 {
		t.Fatalf("expected failure 2, got %d", s.ActionFailure)
	}
	if s.BudgetExceeded != 1 {
		t.Fatalf("expected budget exceeded 1, got %d", s.BudgetExceeded)
	}
	if s.ByActionType[string(settlement.ActionBuildRoad)] != 2 {
		t.Fatalf("expected road count 2")
	}
	if s.ByErrorKind[string(settlement.ErrorInvalidPosition)] != 1 {
		t.Fatalf("expected invalid position count 1")
	}
}

func TestRecorderSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess(settlement.ActionBuildFlag)
	s := r.Snapshot()
	s.ByActionType[string(settlement.ActionBuildFlag)] = 99

	if got := r.Snapshot().ByActionType[string(settlement.ActionBuildFlag)]; got != 1 {
		t.Fatalf("expected recorder to keep 1, got %d", got)
	}
}
