package agent

import (
	"testing"

	"serfai/internal/domain/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsImplementedKinds(t *testing.T) {
	opts := DefaultOptions()
	opts.Difficulty = 14
	opts.Personality = PersonalityEconomic

	staged, err := New(KindScripted, opts)
	require.NoError(t, err)
	assert.IsType(t, &StagedAgent{}, staged)
	assert.Equal(t, KindScripted, staged.Kind())
	assert.Equal(t, MaxDifficulty, staged.Difficulty())
	assert.Equal(t, PersonalityEconomic, staged.Personality())
	assert.True(t, staged.Ready())
	assert.Equal(t, "NEED_CASTLE", staged.Status())

	opts.Name = "bot-2"
	random, err := New(KindRandom, opts)
	require.NoError(t, err)
	assert.Equal(t, "bot-2", random.Name())
	assert.Equal(t, KindRandom, random.Kind())
	assert.Equal(t, "awaiting=0 failed=0", random.Status())
}

func TestNewRejectsUnimplementedKinds(t *testing.T) {
	for _, k := range []Kind{KindNeuralNetwork, KindHumanAssisted} {
		_, err := New(k, DefaultOptions())
		assert.ErrorIs(t, err, ErrUnsupportedAgentKind, string(k))
	}
	_, err := New(Kind("GENIUS"), DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownAgentKind)
}

func TestParseKindAndPersonality(t *testing.T) {
	k, err := ParseKind(" random ")
	require.NoError(t, err)
	assert.Equal(t, KindRandom, k)
	_, err = ParseKind("staged")
	assert.ErrorIs(t, err, ErrUnknownAgentKind)

	p, err := ParsePersonality("defensive")
	require.NoError(t, err)
	assert.Equal(t, PersonalityDefensive, p)
	_, err = ParsePersonality("shy")
	assert.Error(t, err)
}

func TestDifficultyIsClamped(t *testing.T) {
	a := NewStaged(nil)
	a.SetDifficulty(-3)
	assert.Equal(t, MinDifficulty, a.Difficulty())
	a.SetPersonality("")
	assert.Equal(t, PersonalityBalanced, a.Personality())
}

func TestScriptedReplaysBatchesInOrder(t *testing.T) {
	first := []settlement.Action{settlement.NewBuildCastle(settlement.Pos{X: 5, Y: 5})}
	second := []settlement.Action{settlement.NewBuildFlag(settlement.Pos{X: 7, Y: 7}), settlement.NewWait()}
	s := NewScripted(first)
	s.Push(second...)

	assert.Equal(t, "queued=2", s.Status())
	assert.Equal(t, first, s.Decide(DecisionContext{State: grassState(16, 16)}))
	assert.Equal(t, second, s.Decide(DecisionContext{State: grassState(16, 16)}))
	assert.Nil(t, s.Decide(DecisionContext{State: grassState(16, 16)}))
	assert.Len(t, s.Seen(), 3)

	s.SetReady(false)
	assert.False(t, s.Ready())
}
