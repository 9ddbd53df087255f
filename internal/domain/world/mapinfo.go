package world

import "serfai/internal/domain/settlement"

// MapInfo holds per-tile parallel arrays indexed by y*Width+x.
type MapInfo struct {
	Width       int                                     `json:"width"`
	Height      int                                     `json:"height"`
	Terrain     []settlement.Terrain                    `json:"terrain"`
	Elevation   []uint8                                 `json:"elevation"`
	Owner       []uint8                                 `json:"owner"`
	HasBuilding []bool                                  `json:"has_building"`
	HasFlag     []bool                                  `json:"has_flag"`
	HasRoad     []bool                                  `json:"has_road"`
	Deposits    map[settlement.Deposit][]settlement.Pos `json:"deposits"`
}

func NewMapInfo(width, height int) MapInfo {
	n := width * height
	if n < 0 {
		n = 0
	}
	m := MapInfo{
		Width:       width,
		Height:      height,
		Terrain:     make([]settlement.Terrain, n),
		Elevation:   make([]uint8, n),
		Owner:       make([]uint8, n),
		HasBuilding: make([]bool, n),
		HasFlag:     make([]bool, n),
		HasRoad:     make([]bool, n),
		Deposits:    map[settlement.Deposit][]settlement.Pos{},
	}
	for i := range m.Owner {
		m.Owner[i] = Unowned
	}
	return m
}

func (m MapInfo) InBounds(p settlement.Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// Interior reports whether p lies at least margin tiles away from every edge.
func (m MapInfo) Interior(p settlement.Pos, margin int) bool {
	return p.X >= margin && p.Y >= margin && p.X < m.Width-margin && p.Y < m.Height-margin
}

func (m MapInfo) Index(p settlement.Pos) (int, bool) {
	if !m.InBounds(p) {
		return 0, false
	}
	i := p.Y*m.Width + p.X
	if i >= len(m.Owner) {
		return 0, false
	}
	return i, true
}

func (m MapInfo) PosOf(i int) settlement.Pos {
	if m.Width == 0 {
		return settlement.Pos{}
	}
	return settlement.Pos{X: i % m.Width, Y: i / m.Width}
}

func (m MapInfo) Center() settlement.Pos {
	return settlement.Pos{X: m.Width / 2, Y: m.Height / 2}
}

func (m MapInfo) TerrainAt(p settlement.Pos) (settlement.Terrain, bool) {
	i, ok := m.Index(p)
	if !ok || i >= len(m.Terrain) {
		return 0, false
	}
	return m.Terrain[i], true
}

// OwnerAt returns Unowned for tiles off the map.
func (m MapInfo) OwnerAt(p settlement.Pos) uint8 {
	i, ok := m.Index(p)
	if !ok {
		return Unowned
	}
	return m.Owner[i]
}

func (m MapInfo) OwnedBy(p settlement.Pos, player int) bool {
	return player >= 0 && player < int(Unowned) && m.OwnerAt(p) == uint8(player)
}

func (m MapInfo) BuildingAt(p settlement.Pos) bool { return m.flagAt(m.HasBuilding, p) }
func (m MapInfo) FlagAt(p settlement.Pos) bool     { return m.flagAt(m.HasFlag, p) }
func (m MapInfo) RoadAt(p settlement.Pos) bool     { return m.flagAt(m.HasRoad, p) }

func (m MapInfo) flagAt(layer []bool, p settlement.Pos) bool {
	i, ok := m.Index(p)
	if !ok || i >= len(layer) {
		return false
	}
	return layer[i]
}

// OwnedFlags lists every flag tile owned by player in index order.
func (m MapInfo) OwnedFlags(player int) []settlement.Pos {
	out := []settlement.Pos{}
	for i, has := range m.HasFlag {
		if !has || i >= len(m.Owner) || int(m.Owner[i]) != player {
			continue
		}
		out = append(out, m.PosOf(i))
	}
	return out
}
