package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"serfai/internal/adapter/repo/memory"
	"serfai/internal/adapter/sim"
	"serfai/internal/app/agent"
	"serfai/internal/app/driver"
	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.TxManager = failingTx{}

type failingTx struct{ err error }

func (f failingTx) RunInTx(context.Context, func(context.Context) error) error { return f.err }

type fixture struct {
	session *Session
	engine  *sim.Engine
	journal memory.JournalRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	eng := sim.New(sim.Config{Width: 64, Height: 64, Players: 2, Seed: 5})
	log, _ := test.NewNullLogger()
	repo := memory.NewJournalRepo(store)
	s := NewSession(eng, driver.New(driver.NewRegistry(nil), nil, nil), Options{
		Journal: repo,
		Tx:      memory.NewTxManager(store),
		Log:     log,
		Now:     func() time.Time { return time.Unix(100, 0) },
	})
	return fixture{session: s, engine: eng, journal: repo}
}

func TestSessionTickJournalsOutcomes(t *testing.T) {
	f := newFixture(t)
	castle := settlement.Pos{X: 20, Y: 20}
	f.session.driver.Registry.Attach(0, agent.NewScripted(
		[]settlement.Action{settlement.NewBuildCastle(castle)},
		[]settlement.Action{settlement.NewBuildCastle(castle)},
	))

	reports, err := f.session.Tick(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.EqualValues(t, 1, f.session.CurrentTick())

	_, err = f.session.Tick(context.Background())
	require.NoError(t, err)

	entries, err := f.journal.ListByPlayer(context.Background(), f.session.RunID(), 0, ports.TickWindow{}, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[1]
	assert.EqualValues(t, 0, first.Tick)
	assert.Equal(t, string(settlement.ActionBuildCastle), first.ActionType)
	assert.True(t, first.Success)
	assert.Equal(t, time.Unix(100, 0), first.OccurredAt)
	assert.NotEmpty(t, first.ID)

	second := entries[0]
	assert.EqualValues(t, 1, second.Tick)
	assert.False(t, second.Success, "a second castle is refused")
	assert.NotEqual(t, string(settlement.ErrorNone), second.ErrorKind)
}

func TestSessionTickReportsJournalFailure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("db down")
	f.session.tx = failingTx{err: boom}
	f.session.driver.Registry.Attach(0, agent.NewScripted([]settlement.Action{settlement.NewBuildCastle(settlement.Pos{X: 20, Y: 20})}))

	reports, err := f.session.Tick(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, reports, 1, "the tick itself still ran")
	assert.EqualValues(t, 1, f.session.CurrentTick())
}

func TestSessionSetupAttachDetach(t *testing.T) {
	f := newFixture(t)
	bound, err := f.session.Setup(2, agent.KindScripted, agent.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, bound)

	players := f.session.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "AI-Player1", players[1].Agent)
	assert.Equal(t, agent.KindScripted, players[1].Kind)
	assert.Nil(t, players[0].Performance)

	_, err = f.session.Tick(context.Background())
	require.NoError(t, err)
	players = f.session.Players()
	require.NotNil(t, players[0].Performance)
	assert.EqualValues(t, 1, players[0].Performance.Ticks)

	a, err := f.session.Attach(1, agent.KindRandom, agent.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, agent.KindRandom, a.Kind())

	_, err = f.session.Attach(5, agent.KindRandom, agent.DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidPlayer)
	_, err = f.session.Attach(1, agent.KindHumanAssisted, agent.DefaultOptions())
	assert.ErrorIs(t, err, agent.ErrUnsupportedAgentKind)

	assert.True(t, f.session.Detach(0))
	assert.False(t, f.session.Detach(0))
	assert.Len(t, f.session.Players(), 1)
}

func TestSessionStateUsesPlayerView(t *testing.T) {
	f := newFixture(t)
	state, err := f.session.State(1)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Self.Index)
	assert.Equal(t, 64, state.Map.Width)

	_, err = f.session.State(2)
	assert.ErrorIs(t, err, ErrInvalidPlayer)
}

func TestSessionRunStopsAtTickLimit(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Setup(2, agent.KindRandom, agent.DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.session.Run(ctx, time.Millisecond, 5))
	assert.EqualValues(t, 5, f.session.CurrentTick())
}

func TestSessionRunStopsWhenGameEnds(t *testing.T) {
	f := newFixture(t)
	f.engine.End(1)

	_, err := f.session.Tick(context.Background())
	assert.ErrorIs(t, err, ErrGameEnded)
	assert.NoError(t, f.session.Run(context.Background(), time.Millisecond, 0))
	assert.Zero(t, f.session.CurrentTick())
}

func TestSessionRunHonoursCancellation(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.session.Run(ctx, time.Millisecond, 0), context.Canceled)
	assert.Error(t, f.session.Run(context.Background(), 0, 0))
}
