package inmemory

import (
	"sync"

	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
)

var _ ports.ActionMetrics = (*Recorder)(nil)

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionFailure  uint64            `json:"action_failure"`
	BudgetExceeded uint64            `json:"budget_exceeded"`
	ByActionType   map[string]uint64 `json:"by_action_type"`
	ByErrorKind    map[string]uint64 `json:"by_error_kind"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	failure  uint64
	overrun  uint64
	byAction map[string]uint64
	byKind   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction: map[string]uint64{},
		byKind:   map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(actionType settlement.ActionType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byAction[string(actionType)]++
}

func (r *Recorder) RecordFailure(actionType settlement.ActionType, kind settlement.ErrorKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.byAction[string(actionType)]++
	r.byKind[string(kind)]++
}

func (r *Recorder) RecordBudgetExceeded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrun++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ActionSuccess:  r.success,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.failure,
		BudgetExceeded: r.overrun,
		ByActionType:   make(map[string]uint64, len(r.byAction)),
		ByErrorKind:    make(map[string]uint64, len(r.byKind)),
	}
	for k, v := range r.byAction {
		out.ByActionType[k] = v
	}
	for k, v := range r.byKind {
		out.ByErrorKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
