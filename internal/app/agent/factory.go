package agent

import (
	"fmt"

	"serfai/internal/app/shared/ailog"
)

type Options struct {
	Name        string
	Seed        int64
	Difficulty  int
	Personality Personality
	Policy      PendingPolicy
	Logger      *ailog.Logger
}

func DefaultOptions() Options {
	return Options{Difficulty: DefaultDifficulty, Personality: PersonalityBalanced, Policy: DefaultPendingPolicy()}
}

// New builds an agent of the given kind. Neural network and human assisted
// agents are recognised but not implemented.
func New(kind Kind, opts Options) (Agent, error) {
	var (
		a    Agent
		prof *profile
	)
	switch kind {
	case KindScripted:
		s := NewStaged(opts.Logger)
		a, prof = s, &s.profile
	case KindRandom:
		r := NewRandomized(opts.Seed, opts.Policy, opts.Logger)
		a, prof = r, &r.profile
	case KindNeuralNetwork, KindHumanAssisted:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAgentKind, kind)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgentKind, kind)
	}
	if opts.Name != "" {
		prof.name = opts.Name
	}
	prof.SetDifficulty(opts.Difficulty)
	prof.SetPersonality(opts.Personality)
	return a, nil
}
