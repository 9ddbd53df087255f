package driver

import (
	"strings"
	"testing"
	"time"

	"serfai/internal/adapter/metrics/inmemory"
	"serfai/internal/app/agent"
	"serfai/internal/app/shared/ailog"
	"serfai/internal/domain/settlement"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateWithoutAgentDoesNothing(t *testing.T) {
	d := New(NewRegistry(nil), nil, nil)
	rep := d.Update(0, newEngine(t), 1)
	assert.False(t, rep.Ran)
	_, ok := d.PerformanceMetrics(0)
	assert.False(t, ok)
}

func TestUpdateSkipsAgentThatIsNotReady(t *testing.T) {
	reg := NewRegistry(nil)
	s := agent.NewScripted([]settlement.Action{settlement.NewBuildCastle(settlement.Pos{X: 20, Y: 20})})
	s.SetReady(false)
	reg.Attach(0, s)

	rep := New(reg, nil, nil).Update(0, newEngine(t), 1)
	assert.False(t, rep.Ran)
	assert.Empty(t, s.Seen())
}

func TestUpdateAppliesCorrectionBeforeExecuting(t *testing.T) {
	e := newEngine(t)
	reg := NewRegistry(nil)
	proposed := settlement.Pos{X: 1, Y: 1}
	reg.Attach(0, agent.NewScripted([]settlement.Action{settlement.NewBuildCastle(proposed)}))
	rec := inmemory.NewRecorder()

	rep := New(reg, nil, rec).Update(0, e, 1)
	require.NoError(t, rep.Err)
	require.Len(t, rep.Outcomes, 1)
	out := rep.Outcomes[0]
	assert.True(t, out.Validation.HasCorrection())
	assert.NotEqual(t, proposed, out.Final.Pos)
	assert.Equal(t, out.Validation.Corrected, out.Final.Pos)
	assert.True(t, out.Result.Success, out.Result.Message)
	assert.Equal(t, 1, rep.Executed)

	view, ok := e.BuildingAt(out.Final.Pos)
	require.True(t, ok)
	assert.Equal(t, settlement.BuildingCastle, view.Type)
	assert.EqualValues(t, 1, rec.Snapshot().ActionSuccess)
}

func TestUpdateReportsInvalidActionsWithoutExecuting(t *testing.T) {
	e := newEngine(t)
	require.True(t, e.BuildCastle(settlement.Pos{X: 20, Y: 20}, 0))
	flag := settlement.Pos{X: 21, Y: 21}
	reg := NewRegistry(nil)
	reg.Attach(0, agent.NewScripted([]settlement.Action{settlement.NewWait(), settlement.NewBuildRoad(flag, flag)}))
	rec := inmemory.NewRecorder()
	d := New(reg, nil, rec)

	rep := d.Update(0, e, 1)
	require.Len(t, rep.Outcomes, 1, "no-op actions are skipped")
	out := rep.Outcomes[0]
	assert.False(t, out.Validation.Valid)
	assert.False(t, out.Result.Success)
	assert.Equal(t, settlement.ErrorInvalidRoadPath, out.Result.Kind)
	assert.False(t, e.HasRoad(flag.Move(settlement.DirRight)))

	m, ok := d.PerformanceMetrics(0)
	require.True(t, ok)
	assert.EqualValues(t, 1, m.FailedActions)
	assert.EqualValues(t, 1, rec.Snapshot().ByErrorKind[string(settlement.ErrorInvalidRoadPath)])
}

func TestUpdateRecoversFromAgentPanic(t *testing.T) {
	base, hook := test.NewNullLogger()
	reg := NewRegistry(nil)
	reg.Attach(1, panicAgent{agent.NewScripted()})
	d := New(reg, ailog.New(base, false), nil)

	rep := d.Update(1, newEngine(t), 1)
	assert.True(t, rep.Ran)
	assert.ErrorIs(t, rep.Err, ErrAgentPanic)
	require.Len(t, hook.AllEntries(), 1, "errors are logged with debug off")
	assert.Equal(t, "[AI-ERROR] Player1: agent update failed", hook.LastEntry().Message)

	reg.Attach(1, agent.NewScripted())
	assert.NoError(t, d.Update(1, newEngine(t), 1).Err)
}

func TestUpdateFlagsBudgetOverrun(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0), step: 4 * time.Millisecond}
	reg := NewRegistry(nil)
	reg.Attach(0, agent.NewScripted())
	rec := inmemory.NewRecorder()
	d := New(reg, nil, rec)
	d.Now = clock.Now

	rep := d.Update(0, newEngine(t), 1)
	assert.Equal(t, 4*time.Millisecond, rep.Elapsed)
	assert.True(t, rep.BudgetExceeded)
	assert.EqualValues(t, 1, rec.Snapshot().BudgetExceeded)

	d.Budget = 10 * time.Millisecond
	rep = d.Update(0, newEngine(t), 1)
	assert.False(t, rep.BudgetExceeded)

	m, _ := d.PerformanceMetrics(0)
	assert.EqualValues(t, 2, m.Ticks)
	assert.EqualValues(t, 1, m.BudgetExceeded)
	assert.InDelta(t, 4.0, m.LastExecutionMs(), 1e-9)
	assert.InDelta(t, 4.0, m.AverageExecutionMs(), 1e-9)
}

func TestSummaryIsLoggedPeriodically(t *testing.T) {
	base, hook := test.NewNullLogger()
	reg := NewRegistry(nil)
	reg.Attach(0, agent.NewScripted())
	reg.Attach(1, agent.NewScripted())
	e := newEngine(t)
	d := New(reg, ailog.New(base, true), nil)

	for i := 0; i <= 120; i++ {
		d.UpdateAll(e, 1)
		e.Step()
	}
	summaries := map[int]int{}
	for _, entry := range hook.AllEntries() {
		if strings.Contains(entry.Message, " state=") {
			summaries[entry.Data["player"].(int)]++
		}
	}
	assert.Equal(t, map[int]int{0: 2, 1: 2}, summaries)
}

func TestStagedAgentBootstrapsEconomy(t *testing.T) {
	e := newEngine(t)
	reg := NewRegistry(nil)
	staged := agent.NewStaged(nil)
	reg.Attach(0, staged)
	d := New(reg, nil, nil)

	for i := 0; i < 60; i++ {
		rep := d.Update(0, e, 1)
		require.NoError(t, rep.Err)
		for _, out := range rep.Outcomes {
			require.True(t, out.Result.Success, "tick %d: %s: %s", rep.Tick, out.Final.Describe(), out.Result.Message)
		}
		e.Step()
	}

	stats, ok := e.Player(0)
	require.True(t, ok)
	assert.True(t, stats.HasCastle)
	assert.Equal(t, 1, stats.Completed[settlement.BuildingForester]+stats.Incomplete[settlement.BuildingForester])
	assert.Equal(t, 1, stats.Completed[settlement.BuildingLumberjack]+stats.Incomplete[settlement.BuildingLumberjack])
	assert.Equal(t, agent.StageNeedRoads, staged.Stage())

	castleFlag, ok := e.FlagAt(castleFlagOf(t, e, 0))
	require.True(t, ok)
	links := 0
	for _, used := range castleFlag.Paths {
		if used {
			links++
		}
	}
	assert.Equal(t, 2, links)
}
