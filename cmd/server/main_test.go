package main

import (
	"testing"

	"serfai/internal/adapter/repo/memory"
	"serfai/internal/config"
)

func TestNewEngine_SeatsHumansFirst(t *testing.T) {
	g := config.Default().Game
	g.Players = 3
	g.AIPlayers = 2

	e := newEngine(g)
	if got := e.PlayerCount(); got != 3 {
		t.Fatalf("PlayerCount()=%d want 3", got)
	}
	for i, wantAI := range []bool{false, true, true} {
		stats, ok := e.Player(i)
		if !ok {
			t.Fatalf("player %d missing", i)
		}
		if stats.IsAI != wantAI {
			t.Fatalf("player %d IsAI=%t want %t", i, stats.IsAI, wantAI)
		}
	}
	if w, h := e.MapSize(); w != g.Width || h != g.Height {
		t.Fatalf("MapSize()=%dx%d want %dx%d", w, h, g.Width, g.Height)
	}
}

func TestMustBuildRepos_InMemoryWithoutDSN(t *testing.T) {
	repo, tx := mustBuildRepos(config.DatabaseConfig{})
	if _, ok := repo.(memory.JournalRepo); !ok {
		t.Fatalf("expected memory journal repo, got %T", repo)
	}
	if _, ok := tx.(memory.TxManager); !ok {
		t.Fatalf("expected memory tx manager, got %T", tx)
	}
}
