package main

import (
	"context"
	"flag"
	"log"

	httpadapter "serfai/internal/adapter/http"
	metricsinmem "serfai/internal/adapter/metrics/inmemory"
	gormrepo "serfai/internal/adapter/repo/gorm"
	"serfai/internal/adapter/repo/memory"
	"serfai/internal/adapter/sim"
	"serfai/internal/app/driver"
	"serfai/internal/app/host"
	"serfai/internal/app/journal"
	"serfai/internal/app/ports"
	"serfai/internal/app/shared/ailog"
	"serfai/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/sirupsen/logrus"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "YAML config file (defaults to $SERFAI_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	kind, _ := cfg.Kind()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.AI.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	aiLog := ailog.New(logger, cfg.AI.Debug)

	journalRepo, txManager := mustBuildRepos(cfg.Database)
	kpiRecorder := metricsinmem.NewRecorder()

	engine := newEngine(cfg.Game)

	d := driver.New(driver.NewRegistry(aiLog), aiLog, kpiRecorder)
	d.Budget = cfg.Budget()
	d.SummaryEvery = cfg.AI.SummaryEvery

	session := host.NewSession(engine, d, host.Options{
		Journal: journalRepo,
		Tx:      txManager,
		Log:     logger,
	})
	agentOpts := cfg.AgentOptions()
	agentOpts.Logger = aiLog
	bound, err := session.Setup(cfg.Game.AIPlayers, kind, agentOpts)
	if err != nil {
		log.Fatalf("setup ai players: %v", err)
	}

	h := httpadapter.Handler{
		Session:       session,
		JournalUC:     journal.UseCase{Entries: journalRepo},
		KPI:           kpiRecorder,
		AgentDefaults: agentOpts,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := session.Run(ctx, cfg.TickInterval(), cfg.Game.MaxTicks); err != nil && ctx.Err() == nil {
			logger.WithError(err).Error("game loop stopped")
		}
	}()

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	logger.WithFields(logrus.Fields{
		"addr":    cfg.Server.Addr,
		"run_id":  session.RunID(),
		"players": bound,
		"kind":    kind,
	}).Info("serfai server listening")
	s.Spin()
}

// newEngine builds the reference simulation. The first players-ai_players
// seats are human.
func newEngine(g config.GameConfig) *sim.Engine {
	return sim.New(sim.Config{
		Width:           g.Width,
		Height:          g.Height,
		Players:         g.Players,
		HumanPlayers:    max(0, g.Players-g.AIPlayers),
		Seed:            g.Seed,
		MountainPatches: 4,
		TreeCount:       g.Width * g.Height / 16,
	})
}

func mustBuildRepos(cfg config.DatabaseConfig) (ports.JournalRepository, ports.TxManager) {
	if cfg.DSN == "" {
		store := memory.NewStore()
		return memory.NewJournalRepo(store), memory.NewTxManager(store)
	}
	db, err := gormrepo.OpenPostgres(cfg.DSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewJournalRepo(db), gormrepo.NewTxManager(db)
}
