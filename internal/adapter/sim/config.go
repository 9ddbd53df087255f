package sim

import (
	"math/rand"

	"serfai/internal/domain/settlement"
)

type Config struct {
	Width             int
	Height            int
	Players           int
	HumanPlayers      int
	Seed              int64
	Speed             uint32
	ConstructionTicks uint32
	BurnTicks         uint32
	ProductionPeriod  uint32
	CastleRadius      int
	MilitaryRadius    int
	MaxRoadLength     int
	MountainPatches   int
	TreeCount         int

	// Terrain overrides the generated terrain when set.
	Terrain func(p settlement.Pos) settlement.Terrain
}

func DefaultConfig() Config {
	return Config{
		Width:             64,
		Height:            64,
		Players:           2,
		Speed:             2,
		ConstructionTicks: 60,
		BurnTicks:         20,
		ProductionPeriod:  50,
		CastleRadius:      8,
		MilitaryRadius:    4,
		MaxRoadLength:     64,
	}
}

func normalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Players <= 0 {
		cfg.Players = def.Players
	}
	if cfg.Players >= 255 {
		cfg.Players = 254
	}
	if cfg.Speed == 0 {
		cfg.Speed = def.Speed
	}
	if cfg.ConstructionTicks == 0 {
		cfg.ConstructionTicks = def.ConstructionTicks
	}
	if cfg.BurnTicks == 0 {
		cfg.BurnTicks = def.BurnTicks
	}
	if cfg.ProductionPeriod == 0 {
		cfg.ProductionPeriod = def.ProductionPeriod
	}
	if cfg.CastleRadius <= 0 {
		cfg.CastleRadius = def.CastleRadius
	}
	if cfg.MilitaryRadius <= 0 {
		cfg.MilitaryRadius = def.MilitaryRadius
	}
	if cfg.MaxRoadLength <= 0 {
		cfg.MaxRoadLength = def.MaxRoadLength
	}
	return cfg
}

// generateTerrain lays flat grass with optional tundra patches and scattered
// trees. The layout is a pure function of the seed.
func generateTerrain(cfg Config) ([]settlement.Terrain, map[settlement.Deposit][]settlement.Pos) {
	terrain := make([]settlement.Terrain, cfg.Width*cfg.Height)
	deposits := map[settlement.Deposit][]settlement.Pos{}
	if cfg.Terrain != nil {
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				terrain[y*cfg.Width+x] = cfg.Terrain(settlement.Pos{X: x, Y: y})
			}
		}
		return terrain, deposits
	}
	for i := range terrain {
		terrain[i] = settlement.TerrainGrass0
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	ores := []settlement.Deposit{settlement.DepositStone, settlement.DepositCoal, settlement.DepositIron, settlement.DepositGold}
	for n := 0; n < cfg.MountainPatches; n++ {
		center := settlement.Pos{X: 4 + rng.Intn(max(1, cfg.Width-8)), Y: 4 + rng.Intn(max(1, cfg.Height-8))}
		ore := ores[n%len(ores)]
		for _, p := range settlement.Disc(center, 2) {
			if p.X < 0 || p.Y < 0 || p.X >= cfg.Width || p.Y >= cfg.Height {
				continue
			}
			terrain[p.Y*cfg.Width+p.X] = settlement.TerrainTundra0
			deposits[ore] = append(deposits[ore], p)
		}
	}
	for n := 0; n < cfg.TreeCount; n++ {
		p := settlement.Pos{X: rng.Intn(cfg.Width), Y: rng.Intn(cfg.Height)}
		if terrain[p.Y*cfg.Width+p.X].IsGrass() {
			deposits[settlement.DepositTrees] = append(deposits[settlement.DepositTrees], p)
		}
	}
	return terrain, deposits
}
