package journal

import "serfai/internal/app/ports"

type Request struct {
	RunID    string
	Player   int
	Limit    int
	FromTick uint32
	ToTick   uint32
}

// Summary aggregates the entries returned in a Response.
type Summary struct {
	Total     int     `json:"total"`
	Succeeded int     `json:"succeeded"`
	Failed    int     `json:"failed"`
	Corrected int     `json:"corrected"`
	Reward    float64 `json:"reward"`
	LastTick  uint32  `json:"last_tick"`
}

type Response struct {
	Entries []ports.JournalEntry
	Summary Summary
}
