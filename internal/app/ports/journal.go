package ports

import (
	"context"
	"time"
)

// JournalEntry is one executed action as written to the decision journal.
type JournalEntry struct {
	ID         string
	RunID      string
	Player     int
	Tick       uint32
	ActionType string
	Action     string
	Corrected  bool
	Success    bool
	ErrorKind  string
	Message    string
	Reward     float64
	Duration   time.Duration
	OccurredAt time.Time
}

// TickWindow bounds a journal query to ticks in [From, To]. A zero To leaves
// the window open at the top.
type TickWindow struct {
	From uint32
	To   uint32
}

func (w TickWindow) Open() bool { return w.From == 0 && w.To == 0 }

func (w TickWindow) Contains(tick uint32) bool {
	return tick >= w.From && (w.To == 0 || tick <= w.To)
}

type JournalRepository interface {
	Append(ctx context.Context, entries []JournalEntry) error
	// ListByPlayer returns the newest entries inside window first, applying
	// limit after the window. It returns ErrNotFound when the player has no
	// entries in the run at all; an empty window yields an empty slice.
	ListByPlayer(ctx context.Context, runID string, player int, window TickWindow, limit int) ([]JournalEntry, error)
}
