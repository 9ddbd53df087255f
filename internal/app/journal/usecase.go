package journal

import (
	"context"
	"errors"
	"strings"

	"serfai/internal/app/ports"
)

const MaxLimit = 500

var ErrInvalidRequest = errors.New("invalid journal request")

type UseCase struct {
	Entries ports.JournalRepository
}

// Execute lists a player's journal, newest first, restricted to the
// inclusive tick window [FromTick, ToTick] when either bound is set.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" || req.Player < 0 || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.ToTick > 0 && req.FromTick > req.ToTick {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 || limit > MaxLimit {
		limit = MaxLimit
	}
	window := ports.TickWindow{From: req.FromTick, To: req.ToTick}
	entries, err := u.Entries.ListByPlayer(ctx, req.RunID, req.Player, window, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Entries: entries, Summary: summarize(entries)}, nil
}

func summarize(entries []ports.JournalEntry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		if e.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
		if e.Corrected {
			s.Corrected++
		}
		s.Reward += e.Reward
		if e.Tick > s.LastTick {
			s.LastTick = e.Tick
		}
	}
	return s
}
