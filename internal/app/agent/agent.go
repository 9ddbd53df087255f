package agent

import (
	"errors"
	"fmt"
	"strings"

	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

var (
	ErrUnknownAgentKind     = errors.New("unknown agent kind")
	ErrUnsupportedAgentKind = errors.New("agent kind not implemented")
	ErrUnknownPersonality   = errors.New("unknown personality")
)

type Kind string

const (
	KindScripted      Kind = "SCRIPTED"
	KindNeuralNetwork Kind = "NEURAL_NETWORK"
	KindHumanAssisted Kind = "HUMAN_ASSISTED"
	KindRandom        Kind = "RANDOM"
)

func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(raw)))
	switch k {
	case KindScripted, KindNeuralNetwork, KindHumanAssisted, KindRandom:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAgentKind, raw)
}

type Personality string

const (
	PersonalityBalanced     Personality = "BALANCED"
	PersonalityAggressive   Personality = "AGGRESSIVE"
	PersonalityEconomic     Personality = "ECONOMIC"
	PersonalityDefensive    Personality = "DEFENSIVE"
	PersonalityExpansionist Personality = "EXPANSIONIST"
)

func ParsePersonality(raw string) (Personality, error) {
	p := Personality(strings.ToUpper(strings.TrimSpace(raw)))
	switch p {
	case PersonalityBalanced, PersonalityAggressive, PersonalityEconomic, PersonalityDefensive, PersonalityExpansionist:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPersonality, raw)
}

const (
	MinDifficulty     = 0
	MaxDifficulty     = 10
	DefaultDifficulty = 5
)

// LiveAccess hands an agent the authoritative engine for its own player.
type LiveAccess struct {
	Engine ports.Engine
	Player int
}

// DecisionContext is everything an agent sees for one tick. Live is nil when
// only the snapshot is available; agents must then fall back to heuristics
// over State.
type DecisionContext struct {
	State world.GameState
	Live  *LiveAccess
}

// Agent proposes actions for one player. Implementations keep private state
// across ticks and are driven from a single goroutine.
type Agent interface {
	Name() string
	Kind() Kind
	Ready() bool
	Difficulty() int
	SetDifficulty(level int)
	Personality() Personality
	SetPersonality(p Personality)
	// Status is a short human readable description of the agent's internal
	// state, used in periodic summaries.
	Status() string
	Decide(dc DecisionContext) []settlement.Action
}

type profile struct {
	name        string
	kind        Kind
	difficulty  int
	personality Personality
}

func newProfile(name string, kind Kind) profile {
	return profile{name: name, kind: kind, difficulty: DefaultDifficulty, personality: PersonalityBalanced}
}

func (p *profile) Name() string             { return p.name }
func (p *profile) Kind() Kind               { return p.kind }
func (p *profile) Difficulty() int          { return p.difficulty }
func (p *profile) Personality() Personality { return p.personality }

func (p *profile) SetDifficulty(level int) {
	p.difficulty = min(max(level, MinDifficulty), MaxDifficulty)
}

func (p *profile) SetPersonality(v Personality) {
	if v == "" {
		v = PersonalityBalanced
	}
	p.personality = v
}

var (
	_ Agent = (*StagedAgent)(nil)
	_ Agent = (*RandomizedAgent)(nil)
	_ Agent = (*Scripted)(nil)
)
