package sim

import (
	"serfai/internal/app/ports"
	"serfai/internal/domain/settlement"
	"serfai/internal/domain/world"
)

type building struct {
	typ        settlement.BuildingType
	pos        settlement.Pos
	owner      int
	flag       int
	completeAt uint32
	completed  bool
	burning    bool
	burnUntil  uint32
}

type road struct {
	from, to       int
	fromDir, toDir settlement.Direction
	tiles          []settlement.Pos
}

type flag struct {
	index int
	pos   settlement.Pos
	owner int
	roads [settlement.DirectionCount]*road
}

type player struct {
	index         int
	ai            bool
	hasCastle     bool
	castle        settlement.Pos
	resources     [settlement.ResourceTypeCount]int
	priorities    [settlement.ResourceTypeCount]int
	tools         [settlement.ToolCount]int
	food          [settlement.FoodConsumerCount]int
	castleKnights int
	morale        int
}

// Engine is an in-memory settlement simulation. It models territory,
// placement, flags, roads, construction and demolition closely enough to
// drive the AI pipeline; it does not model serfs or transport.
type Engine struct {
	cfg       Config
	tick      uint32
	terrain   []settlement.Terrain
	elevation []uint8
	owner     []uint8
	road      []bool
	buildings []*building
	byTile    map[int]*building
	flags     []*flag
	flagTile  map[int]int
	players   []*player
	deposits  map[settlement.Deposit][]settlement.Pos
	ended     bool
	winner    int
}

var (
	_ ports.Simulation     = (*Engine)(nil)
	_ ports.BuildingLister = (*Engine)(nil)
)

func New(cfg Config) *Engine {
	cfg = normalize(cfg)
	terrain, deposits := generateTerrain(cfg)
	n := cfg.Width * cfg.Height
	// flag index 0 is reserved as "no flag"
	e := &Engine{
		cfg:       cfg,
		terrain:   terrain,
		elevation: make([]uint8, n),
		owner:     make([]uint8, n),
		road:      make([]bool, n),
		byTile:    map[int]*building{},
		flags:     []*flag{nil},
		flagTile:  map[int]int{},
		deposits:  deposits,
		winner:    world.NoWinner,
	}
	for i := range e.owner {
		e.owner[i] = world.Unowned
	}
	for i := 0; i < cfg.Players; i++ {
		p := &player{index: i, ai: i >= cfg.HumanPlayers, morale: 100}
		for r := range p.priorities {
			p.priorities[r] = 32
		}
		for t := range p.tools {
			p.tools[t] = 32
		}
		for c := range p.food {
			p.food[c] = 32
		}
		e.players = append(e.players, p)
	}
	return e
}

func (e *Engine) Tick() uint32     { return e.tick }
func (e *Engine) Speed() uint32    { return e.cfg.Speed }
func (e *Engine) PlayerCount() int { return len(e.players) }
func (e *Engine) GameEnded() bool  { return e.ended }
func (e *Engine) Winner() int      { return e.winner }

func (e *Engine) MapSize() (int, int) { return e.cfg.Width, e.cfg.Height }

// End stops the game and records the winner.
func (e *Engine) End(winner int) {
	e.ended = true
	e.winner = winner
}

// SetTerrain overrides a single tile.
func (e *Engine) SetTerrain(p settlement.Pos, t settlement.Terrain) {
	if i, ok := e.index(p); ok {
		e.terrain[i] = t
	}
}

func (e *Engine) index(p settlement.Pos) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= e.cfg.Width || p.Y >= e.cfg.Height {
		return 0, false
	}
	return p.Y*e.cfg.Width + p.X, true
}

// interior keeps placements off the outermost ring of tiles.
func (e *Engine) interior(p settlement.Pos, margin int) bool {
	return p.X >= margin && p.Y >= margin && p.X < e.cfg.Width-margin && p.Y < e.cfg.Height-margin
}

func (e *Engine) validPlayer(index int) bool { return index >= 0 && index < len(e.players) }

func (e *Engine) Terrain(p settlement.Pos) settlement.Terrain {
	i, ok := e.index(p)
	if !ok {
		return settlement.TerrainWater0
	}
	return e.terrain[i]
}

func (e *Engine) Elevation(p settlement.Pos) uint8 {
	i, ok := e.index(p)
	if !ok {
		return 0
	}
	return e.elevation[i]
}

func (e *Engine) Owner(p settlement.Pos) (int, bool) {
	i, ok := e.index(p)
	if !ok || e.owner[i] == world.Unowned {
		return 0, false
	}
	return int(e.owner[i]), true
}

func (e *Engine) ownedBy(i int, playerIndex int) bool {
	return e.owner[i] != world.Unowned && int(e.owner[i]) == playerIndex
}

func (e *Engine) HasBuilding(p settlement.Pos) bool {
	i, ok := e.index(p)
	return ok && e.byTile[i] != nil
}

func (e *Engine) HasFlag(p settlement.Pos) bool {
	i, ok := e.index(p)
	return ok && e.flagTile[i] != 0
}

func (e *Engine) HasRoad(p settlement.Pos) bool {
	i, ok := e.index(p)
	return ok && e.road[i]
}

func (e *Engine) Deposits(kind settlement.Deposit) []settlement.Pos {
	src := e.deposits[kind]
	out := make([]settlement.Pos, len(src))
	copy(out, src)
	return out
}

func (e *Engine) BuildingAt(p settlement.Pos) (ports.BuildingView, bool) {
	i, ok := e.index(p)
	if !ok {
		return ports.BuildingView{}, false
	}
	b := e.byTile[i]
	if b == nil {
		return ports.BuildingView{}, false
	}
	return b.view(), true
}

func (b *building) view() ports.BuildingView {
	return ports.BuildingView{
		Type:      b.typ,
		Pos:       b.pos,
		Owner:     b.owner,
		FlagIndex: b.flag,
		Completed: b.completed,
		Burning:   b.burning,
	}
}

func (e *Engine) flagByIndex(index int) *flag {
	if index <= 0 || index >= len(e.flags) {
		return nil
	}
	return e.flags[index]
}

func (e *Engine) flagOn(p settlement.Pos) *flag {
	i, ok := e.index(p)
	if !ok {
		return nil
	}
	return e.flagByIndex(e.flagTile[i])
}

func (f *flag) view() ports.FlagView {
	v := ports.FlagView{Index: f.index, Pos: f.pos, Owner: f.owner}
	for d, r := range f.roads {
		v.Paths[d] = r != nil
	}
	return v
}

func (e *Engine) Flag(index int) (ports.FlagView, bool) {
	f := e.flagByIndex(index)
	if f == nil {
		return ports.FlagView{}, false
	}
	return f.view(), true
}

func (e *Engine) FlagAt(p settlement.Pos) (ports.FlagView, bool) {
	f := e.flagOn(p)
	if f == nil {
		return ports.FlagView{}, false
	}
	return f.view(), true
}

func (e *Engine) OtherEndFlag(flagIndex int, d settlement.Direction) (int, bool) {
	f := e.flagByIndex(flagIndex)
	if f == nil || d < 0 || d >= settlement.DirectionCount {
		return 0, false
	}
	r := f.roads[d]
	if r == nil {
		return 0, false
	}
	if r.from == flagIndex && r.fromDir == d {
		return r.to, true
	}
	return r.from, true
}

func (e *Engine) Buildings(playerIndex int) []ports.BuildingView {
	out := []ports.BuildingView{}
	for _, b := range e.buildings {
		if b.owner == playerIndex {
			out = append(out, b.view())
		}
	}
	return out
}

func (e *Engine) Player(index int) (ports.PlayerStats, bool) {
	if !e.validPlayer(index) {
		return ports.PlayerStats{}, false
	}
	p := e.players[index]
	stats := ports.PlayerStats{
		Index:              p.index,
		IsAI:               p.ai,
		HasCastle:          p.hasCastle,
		Resources:          p.resources,
		ResourcePriorities: p.priorities,
	}

	placed := 0
	military := 0
	for _, b := range e.buildings {
		if b.owner != index || b.burning {
			continue
		}
		placed++
		if b.completed {
			stats.Completed[b.typ]++
			if b.typ.IsMilitary() {
				military++
			}
		} else {
			stats.Incomplete[b.typ]++
		}
	}
	for i := range e.owner {
		if e.ownedBy(i, index) {
			stats.TerritorySize++
		}
	}

	if p.hasCastle {
		stats.CastleKnights = p.castleKnights
		stats.Knights[0] = p.castleKnights
		stats.KnightMorale = p.morale
	}
	stats.TotalSerfs = 20 + 2*placed
	stats.IdleSerfs = max(0, stats.TotalSerfs-3*placed)
	for _, v := range p.resources {
		stats.EconomicScore += v
	}
	stats.EconomicScore += 10 * (placed - military)
	for _, k := range stats.Knights {
		stats.MilitaryScore += 10 * k
	}
	stats.MilitaryScore += 20 * military
	return stats, true
}
