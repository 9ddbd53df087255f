package driver

import (
	"errors"
	"fmt"
	"time"

	"serfai/internal/app/action"
	"serfai/internal/app/agent"
	"serfai/internal/app/ports"
	"serfai/internal/app/shared/ailog"
	"serfai/internal/app/snapshot"
	"serfai/internal/domain/settlement"
)

const (
	DefaultBudget       = 3 * time.Millisecond
	DefaultSummaryEvery = 50
)

var ErrAgentPanic = errors.New("agent update panicked")

// Outcome is one proposed action after validation and, when valid,
// execution. Final differs from Proposed when the validator moved it.
type Outcome struct {
	Player     int                         `json:"player"`
	Tick       uint32                      `json:"tick"`
	Proposed   settlement.Action           `json:"proposed"`
	Final      settlement.Action           `json:"final"`
	Validation settlement.ValidationResult `json:"validation"`
	Result     settlement.ExecutionResult  `json:"result"`
}

type TickReport struct {
	Player         int           `json:"player"`
	Tick           uint32        `json:"tick"`
	TickDelta      uint32        `json:"tick_delta"`
	Ran            bool          `json:"ran"`
	Outcomes       []Outcome     `json:"outcomes"`
	Executed       int           `json:"executed"`
	Elapsed        time.Duration `json:"elapsed"`
	BudgetExceeded bool          `json:"budget_exceeded"`
	Err            error         `json:"-"`
}

// Driver runs the per-tick cycle for every bound agent: capture, decide,
// validate, execute. It is driven from the simulation's update loop and is
// not safe for concurrent use.
type Driver struct {
	Registry     *Registry
	Validator    action.Validator
	Executor     action.Executor
	Log          *ailog.Logger
	Metrics      ports.ActionMetrics
	Budget       time.Duration
	SummaryEvery uint32
	Now          func() time.Time

	perf        map[int]*PerformanceMetrics
	lastSummary map[int]uint32
}

func New(reg *Registry, log *ailog.Logger, metrics ports.ActionMetrics) *Driver {
	v := action.NewValidator()
	return &Driver{
		Registry:     reg,
		Validator:    v,
		Executor:     action.NewExecutor(v),
		Log:          log,
		Metrics:      metrics,
		Budget:       DefaultBudget,
		SummaryEvery: DefaultSummaryEvery,
		Now:          time.Now,
		perf:         map[int]*PerformanceMetrics{},
		lastSummary:  map[int]uint32{},
	}
}

// Update runs one decision cycle for player. Failures, including panics in
// the agent, are logged and reported; they never escape.
func (d *Driver) Update(player int, eng ports.Engine, tickDelta uint32) (rep TickReport) {
	rep = TickReport{Player: player, TickDelta: tickDelta}
	a, ok := d.Registry.Agent(player)
	if !ok || !a.Ready() {
		return rep
	}
	rep.Ran = true
	start := d.now()
	defer func() {
		if r := recover(); r != nil {
			rep.Err = fmt.Errorf("%w: %v", ErrAgentPanic, r)
			d.Log.Error(player, "agent update failed", rep.Err)
		}
	}()

	perf := d.metricsFor(player)
	state, err := snapshot.Capture(eng, player, snapshot.Options{
		TimeBudget:    d.budget(),
		LastExecution: perf.LastExecution,
		AIPlayerCount: d.Registry.Len(),
	})
	if err != nil {
		rep.Err = err
		d.Log.Error(player, "state capture failed", err)
		return rep
	}
	rep.Tick = state.Tick

	proposed := a.Decide(agent.DecisionContext{State: state, Live: &agent.LiveAccess{Engine: eng, Player: player}})
	for _, act := range proposed {
		if act.Type.IsNoop() {
			continue
		}
		out := d.apply(player, state.Tick, act, eng)
		if out.Result.Success {
			rep.Executed++
			perf.SuccessfulActions++
		} else {
			perf.FailedActions++
		}
		rep.Outcomes = append(rep.Outcomes, out)
	}

	if d.summaryDue(player, state.Tick) {
		d.Log.Summary(player, a.Status(), state)
	}

	rep.Elapsed = d.now().Sub(start)
	rep.BudgetExceeded = rep.Elapsed > d.budget()
	perf.observe(rep.Elapsed, rep.BudgetExceeded)
	d.Log.Performance(player, rep.Elapsed, d.budget(), rep.Executed)
	if rep.BudgetExceeded {
		d.Log.Tracef(player, "execution time exceeded budget")
		if d.Metrics != nil {
			d.Metrics.RecordBudgetExceeded()
		}
	}
	return rep
}

// apply validates act, moves it to the corrected position if one was found,
// and executes it.
func (d *Driver) apply(player int, tick uint32, act settlement.Action, eng ports.Engine) Outcome {
	out := Outcome{Player: player, Tick: tick, Proposed: act, Final: act}
	out.Validation = d.Validator.Validate(act, eng, player)
	d.Log.Validation(player, act, out.Validation)

	if !out.Validation.Valid {
		out.Result = settlement.ExecutionResult{Kind: out.Validation.Kind, Message: out.Validation.Reason}
	} else {
		if out.Validation.HasCorrection() {
			out.Final = act.WithPos(out.Validation.Corrected)
			d.Log.Tracef(player, "using corrected position %s instead of %s", out.Final.Pos, act.Pos)
		}
		out.Result = d.Executor.Execute(out.Final, eng, player)
	}
	d.Log.Execution(player, out.Final, out.Result)

	if d.Metrics != nil {
		if out.Result.Success {
			d.Metrics.RecordSuccess(act.Type)
		} else {
			d.Metrics.RecordFailure(act.Type, out.Result.Kind)
		}
	}
	return out
}

// UpdateAll runs Update for every bound player in index order.
func (d *Driver) UpdateAll(eng ports.Engine, tickDelta uint32) []TickReport {
	players := d.Registry.Players()
	out := make([]TickReport, 0, len(players))
	for _, p := range players {
		out = append(out, d.Update(p, eng, tickDelta))
	}
	return out
}

func (d *Driver) summaryDue(player int, tick uint32) bool {
	every := d.SummaryEvery
	if every == 0 {
		every = DefaultSummaryEvery
	}
	if d.lastSummary == nil {
		d.lastSummary = map[int]uint32{}
	}
	last := d.lastSummary[player]
	if tick < last || tick-last >= every {
		d.lastSummary[player] = tick
		return true
	}
	return false
}

func (d *Driver) metricsFor(player int) *PerformanceMetrics {
	if d.perf == nil {
		d.perf = map[int]*PerformanceMetrics{}
	}
	m, ok := d.perf[player]
	if !ok {
		m = &PerformanceMetrics{}
		d.perf[player] = m
	}
	return m
}

func (d *Driver) PerformanceMetrics(player int) (PerformanceMetrics, bool) {
	m, ok := d.perf[player]
	if !ok {
		return PerformanceMetrics{}, false
	}
	return *m, true
}

func (d *Driver) ResetPerformanceMetrics(player int) {
	delete(d.perf, player)
}

func (d *Driver) budget() time.Duration {
	if d.Budget <= 0 {
		return DefaultBudget
	}
	return d.Budget
}

func (d *Driver) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
