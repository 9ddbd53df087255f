package agent

import (
	"fmt"

	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

// Scripted replays a fixed queue of action batches, one batch per decision.
// It reports the SCRIPTED kind and is meant for tests and deterministic
// replays.
type Scripted struct {
	profile
	batches [][]settlement.Action
	ready   bool
	seen    []world.GameState
}

func NewScripted(batches ...[]settlement.Action) *Scripted {
	return &Scripted{profile: newProfile("ScriptedReplay", KindScripted), batches: batches, ready: true}
}

func (s *Scripted) Ready() bool         { return s.ready }
func (s *Scripted) SetReady(ready bool) { s.ready = ready }

func (s *Scripted) Push(batch ...settlement.Action) { s.batches = append(s.batches, batch) }

func (s *Scripted) Status() string { return fmt.Sprintf("queued=%d", len(s.batches)) }

// Seen returns the snapshots passed to Decide so far.
func (s *Scripted) Seen() []world.GameState { return s.seen }

func (s *Scripted) Decide(dc DecisionContext) []settlement.Action {
	s.seen = append(s.seen, dc.State)
	if len(s.batches) == 0 {
		return nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch
}
