package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"serfai/internal/app/agent"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Game     GameConfig     `yaml:"game"`
	AI       AIConfig       `yaml:"ai"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig selects postgres when DSN is set; otherwise the journal is
// kept in memory.
type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type GameConfig struct {
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Players        int    `yaml:"players"`
	AIPlayers      int    `yaml:"ai_players"`
	AgentKind      string `yaml:"agent_kind"`
	Seed           int64  `yaml:"seed"`
	TickIntervalMs int    `yaml:"tick_interval_ms"`
	MaxTicks       uint32 `yaml:"max_ticks"`
}

type AIConfig struct {
	Debug        bool                `yaml:"debug"`
	BudgetMs     int                 `yaml:"budget_ms"`
	SummaryEvery uint32              `yaml:"summary_every"`
	Difficulty   int                 `yaml:"difficulty"`
	Personality  string              `yaml:"personality"`
	Pending      agent.PendingPolicy `yaml:"pending"`
}

func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{MigrationsDir: "db/migrations"},
		Game: GameConfig{
			Width:          64,
			Height:         64,
			Players:        2,
			AIPlayers:      2,
			AgentKind:      string(agent.KindScripted),
			TickIntervalMs: 100,
		},
		AI: AIConfig{
			BudgetMs:     3,
			SummaryEvery: 50,
			Difficulty:   agent.DefaultDifficulty,
			Personality:  string(agent.PersonalityBalanced),
			Pending:      agent.DefaultPendingPolicy(),
		},
	}
}

// Load reads .env (if present), then the YAML file named by path or
// SERFAI_CONFIG (if any), then applies SERFAI_* environment overrides on
// top of Default.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv("SERFAI_CONFIG"))
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Database.DSN = stringEnv("SERFAI_DB_DSN", cfg.Database.DSN)
	cfg.Server.Addr = stringEnv("SERFAI_ADDR", cfg.Server.Addr)
	cfg.Game.AIPlayers = intEnv("SERFAI_AI_PLAYERS", cfg.Game.AIPlayers)
	cfg.Game.AgentKind = stringEnv("SERFAI_AGENT_KIND", cfg.Game.AgentKind)
	cfg.Game.Seed = int64(intEnv("SERFAI_SEED", int(cfg.Game.Seed)))
	cfg.AI.Debug = boolEnv("SERFAI_AI_DEBUG", cfg.AI.Debug)
}

func (c Config) Validate() error {
	if c.Game.Width < 16 || c.Game.Height < 16 {
		return fmt.Errorf("map must be at least 16x16, got %dx%d", c.Game.Width, c.Game.Height)
	}
	if c.Game.Players <= 0 || c.Game.Players > 254 {
		return fmt.Errorf("players must be in 1..254, got %d", c.Game.Players)
	}
	if c.Game.AIPlayers < 0 {
		return fmt.Errorf("ai_players must not be negative, got %d", c.Game.AIPlayers)
	}
	if c.Game.TickIntervalMs <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive, got %d", c.Game.TickIntervalMs)
	}
	if _, err := c.Kind(); err != nil {
		return err
	}
	if _, err := agent.ParsePersonality(c.AI.Personality); err != nil {
		return err
	}
	return nil
}

func (c Config) Kind() (agent.Kind, error) { return agent.ParseKind(c.Game.AgentKind) }

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Game.TickIntervalMs) * time.Millisecond
}

func (c Config) Budget() time.Duration {
	return time.Duration(c.AI.BudgetMs) * time.Millisecond
}

// AgentOptions builds factory options; Validate must have passed.
func (c Config) AgentOptions() agent.Options {
	p, _ := agent.ParsePersonality(c.AI.Personality)
	return agent.Options{
		Seed:        c.Game.Seed,
		Difficulty:  c.AI.Difficulty,
		Personality: p,
		Policy:      c.AI.Pending,
	}
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
