package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"serfai/internal/app/agent"
	"serfai/internal/app/driver"
	"serfai/internal/app/ports"
	"serfai/internal/app/snapshot"
	"serfai/internal/domain/world"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrGameEnded     = errors.New("game ended")
	ErrInvalidPlayer = errors.New("invalid player index")
)

// Session owns one running game: the engine, the AI driver and the decision
// journal. Every method is safe for concurrent use; ticks and reads are
// serialised on one mutex.
type Session struct {
	mu      sync.Mutex
	runID   string
	engine  ports.Simulation
	driver  *driver.Driver
	journal ports.JournalRepository
	tx      ports.TxManager
	log     logrus.FieldLogger
	now     func() time.Time
	ended   bool
}

type Options struct {
	Journal ports.JournalRepository
	Tx      ports.TxManager
	Log     logrus.FieldLogger
	Now     func() time.Time
}

func NewSession(eng ports.Simulation, d *driver.Driver, opts Options) *Session {
	runID := uuid.NewString()
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		runID:   runID,
		engine:  eng,
		driver:  d,
		journal: opts.Journal,
		tx:      opts.Tx,
		log:     log.WithField("run_id", runID),
		now:     now,
	}
}

func (s *Session) RunID() string { return s.runID }

// Setup binds count fresh agents to the engine's AI players and starts the
// game bookkeeping.
func (s *Session) Setup(count int, kind agent.Kind, opts agent.Options) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bound, err := s.driver.SetupAIPlayers(s.engine, count, kind, opts)
	if err != nil {
		return nil, err
	}
	s.driver.GameStarted()
	s.log.WithFields(logrus.Fields{"players": bound, "kind": kind}).Info("ai players attached")
	return bound, nil
}

// Tick runs every bound agent against the current state, advances the
// engine one tick and journals the outcomes in one transaction.
func (s *Session) Tick(ctx context.Context) ([]driver.TickReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine.GameEnded() {
		s.finish()
		return nil, ErrGameEnded
	}

	reports := s.driver.UpdateAll(s.engine, 1)
	s.engine.Step()

	entries := s.journalEntries(reports)
	if len(entries) == 0 || s.journal == nil {
		return reports, nil
	}
	write := func(ctx context.Context) error { return s.journal.Append(ctx, entries) }
	var err error
	if s.tx != nil {
		err = s.tx.RunInTx(ctx, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		return reports, fmt.Errorf("append journal: %w", err)
	}
	return reports, nil
}

// Run ticks every interval until ctx is done, the game ends or maxTicks
// ticks have run (0 means no limit). Journal failures are logged and do not
// stop the game.
func (s *Session) Run(ctx context.Context, interval time.Duration, maxTicks uint32) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var ran uint32
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if _, err := s.Tick(ctx); err != nil {
			if errors.Is(err, ErrGameEnded) {
				return nil
			}
			s.log.WithError(err).Warn("tick failed")
		}
		ran++
		if maxTicks > 0 && ran >= maxTicks {
			s.log.WithField("ticks", ran).Info("tick limit reached")
			return nil
		}
	}
}

// finish reports the end of the game once.
func (s *Session) finish() {
	if s.ended {
		return
	}
	s.ended = true
	s.driver.GameEnded(s.engine)
	s.log.WithField("winner", s.engine.Winner()).Info("game ended")
}

func (s *Session) journalEntries(reports []driver.TickReport) []ports.JournalEntry {
	var out []ports.JournalEntry
	at := s.now()
	for _, rep := range reports {
		for _, o := range rep.Outcomes {
			out = append(out, ports.JournalEntry{
				ID:         uuid.NewString(),
				RunID:      s.runID,
				Player:     o.Player,
				Tick:       o.Tick,
				ActionType: string(o.Final.Type),
				Action:     o.Final.Describe(),
				Corrected:  o.Validation.HasCorrection(),
				Success:    o.Result.Success,
				ErrorKind:  string(o.Result.Kind),
				Message:    o.Result.Message,
				Reward:     o.Result.Reward,
				Duration:   o.Result.Duration,
				OccurredAt: at,
			})
		}
	}
	return out
}

func (s *Session) validPlayer(player int) bool {
	return player >= 0 && player < s.engine.PlayerCount()
}

// Attach binds a new agent of kind to player, replacing any earlier one.
func (s *Session) Attach(player int, kind agent.Kind, opts agent.Options) (agent.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validPlayer(player) {
		return nil, ErrInvalidPlayer
	}
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("AI-Player%d", player)
	}
	opts.Seed += int64(player)
	a, err := agent.New(kind, opts)
	if err != nil {
		return nil, err
	}
	s.driver.Registry.Attach(player, a)
	s.driver.ResetPerformanceMetrics(player)
	return a, nil
}

func (s *Session) Detach(player int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver.Registry.Detach(player)
}

type PlayerView struct {
	Index       int                        `json:"index"`
	Agent       string                     `json:"agent"`
	Kind        agent.Kind                 `json:"kind"`
	Ready       bool                       `json:"ready"`
	Difficulty  int                        `json:"difficulty"`
	Personality agent.Personality          `json:"personality"`
	Status      string                     `json:"status"`
	Performance *driver.PerformanceMetrics `json:"performance,omitempty"`
}

// Players lists the bound agents in player order.
func (s *Session) Players() []PlayerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := s.driver.Registry.Players()
	out := make([]PlayerView, 0, len(players))
	for _, p := range players {
		a, _ := s.driver.Registry.Agent(p)
		v := PlayerView{
			Index:       p,
			Agent:       a.Name(),
			Kind:        a.Kind(),
			Ready:       a.Ready(),
			Difficulty:  a.Difficulty(),
			Personality: a.Personality(),
			Status:      a.Status(),
		}
		if m, ok := s.driver.PerformanceMetrics(p); ok {
			v.Performance = &m
		}
		out = append(out, v)
	}
	return out
}

// State captures the game as seen by player.
func (s *Session) State(player int) (world.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validPlayer(player) {
		return world.GameState{}, ErrInvalidPlayer
	}
	return snapshot.Capture(s.engine, player, snapshot.Options{AIPlayerCount: s.driver.Registry.Len()})
}

func (s *Session) CurrentTick() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Tick()
}
