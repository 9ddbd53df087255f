package memory

import (
	"context"
	"sort"

	"serfai/internal/app/ports"
)

var (
	_ ports.JournalRepository = JournalRepo{}
	_ ports.TxManager         = TxManager{}
)

type JournalRepo struct {
	store *Store
}

func NewJournalRepo(store *Store) JournalRepo {
	return JournalRepo{store: store}
}

func (r JournalRepo) Append(ctx context.Context, entries []ports.JournalEntry) error {
	defer r.store.lock(ctx)()
	for _, e := range entries {
		r.store.journal[e.RunID] = append(r.store.journal[e.RunID], e)
	}
	return nil
}

func (r JournalRepo) ListByPlayer(ctx context.Context, runID string, player int, window ports.TickWindow, limit int) ([]ports.JournalEntry, error) {
	defer r.store.rlock(ctx)()
	out := []ports.JournalEntry{}
	seen := false
	for _, e := range r.store.journal[runID] {
		if e.Player != player {
			continue
		}
		seen = true
		if window.Contains(e.Tick) {
			out = append(out, e)
		}
	}
	if !seen {
		return nil, ports.ErrNotFound
	}
	// newest first; entries of one tick keep reverse append order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick > out[j].Tick })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
