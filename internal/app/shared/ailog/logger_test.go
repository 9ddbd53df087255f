package ailog

import (
	"errors"
	"testing"

	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoIsGatedByDebug(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base, false)

	l.Attach(1, "staged")
	l.Execution(1, settlement.NewBuildCastle(settlement.Pos{X: 4, Y: 4}), settlement.ExecutionResult{Success: true})
	assert.Empty(t, hook.AllEntries())

	l.SetDebug(true)
	l.Attach(1, "staged")
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, "[AI-ATTACH] Player1: agent staged attached", entry.Message)
	assert.Equal(t, "ai", entry.Data["category"])
	assert.Equal(t, 1, entry.Data["player"])
}

func TestErrorsAreAlwaysWritten(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base, false)

	l.Error(2, "decision failed", errors.New("boom"))
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "[AI-ERROR] Player2: decision failed", entry.Message)
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "boom")
}

func TestValidationMessageCarriesDescription(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base, true)

	a := settlement.NewBuildRoad(settlement.Pos{X: 1, Y: 2}, settlement.Pos{X: 3, Y: 4})
	l.Validation(0, a, settlement.Reject(settlement.ErrorInvalidRoadPath, "no route"))
	assert.Equal(t, "[AI-VALIDATE] Player0: BUILD_ROAD((1,2) -> (3,4)) invalid: no route", hook.LastEntry().Message)

	l.Validation(0, settlement.NewBuildCastle(settlement.Pos{X: 9, Y: 9}), settlement.AcceptCorrected(settlement.Pos{X: 10, Y: 9}, "moved"))
	assert.Equal(t, "(10,9)", hook.LastEntry().Data["corrected"])
}

func TestSummaryAndNilLogger(t *testing.T) {
	base, hook := test.NewNullLogger()
	l := New(base, true)
	s := world.GameState{Tick: 50}
	s.Self.HasCastle = true
	l.Summary(3, "NEED_FORESTER", s)
	assert.Contains(t, hook.LastEntry().Message, "castle=unknown")

	var none *Logger
	assert.NotPanics(t, func() {
		none.Attach(0, "x")
		none.Error(0, "ignored", nil)
		none.SetDebug(true)
	})
	assert.False(t, none.Debug())
}
