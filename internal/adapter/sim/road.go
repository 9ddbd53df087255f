package sim

import "serfai/internal/domain/settlement"

// passable reports whether a road may cross tile p for playerIndex.
func (e *Engine) passable(p settlement.Pos, playerIndex int) bool {
	if !e.interior(p, 1) {
		return false
	}
	i, _ := e.index(p)
	return e.ownedBy(i, playerIndex) && e.free(i) && e.terrain[i].Walkable()
}

// FindRoadPath runs a breadth-first search between two flags over free tiles
// the player owns. Direction slots already used at either flag are skipped.
func (e *Engine) FindRoadPath(from, to settlement.Pos, playerIndex int) (settlement.Road, bool) {
	src := e.flagOn(from)
	dst := e.flagOn(to)
	if src == nil || dst == nil || from == to {
		return settlement.Road{}, false
	}

	type step struct {
		prev settlement.Pos
		dir  settlement.Direction
	}
	visited := map[settlement.Pos]step{from: {}}
	depth := map[settlement.Pos]int{from: 0}
	queue := []settlement.Pos{from}
	found := false
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= e.cfg.MaxRoadLength {
			continue
		}
		for _, d := range settlement.Directions() {
			if cur == from && src.roads[d] != nil {
				continue
			}
			next := cur.Move(d)
			if _, seen := visited[next]; seen {
				continue
			}
			if next == to {
				if dst.roads[d.Reverse()] != nil {
					continue
				}
				visited[next] = step{prev: cur, dir: d}
				found = true
				break
			}
			if !e.passable(next, playerIndex) {
				continue
			}
			visited[next] = step{prev: cur, dir: d}
			depth[next] = depth[cur] + 1
			queue = append(queue, next)
		}
	}
	if !found {
		return settlement.Road{}, false
	}

	dirs := []settlement.Direction{}
	for p := to; p != from; p = visited[p].prev {
		dirs = append(dirs, visited[p].dir)
	}
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return settlement.Road{Source: from, Dirs: dirs}, true
}

func (e *Engine) CanBuildRoad(r settlement.Road, playerIndex int) bool {
	if r.Len() == 0 || r.Len() > e.cfg.MaxRoadLength || !e.validPlayer(playerIndex) {
		return false
	}
	src := e.flagOn(r.Source)
	dst := e.flagOn(r.End())
	if src == nil || dst == nil || src == dst {
		return false
	}
	if src.owner != playerIndex || dst.owner != playerIndex {
		return false
	}
	if src.roads[r.Dirs[0]] != nil || dst.roads[r.Dirs[len(r.Dirs)-1].Reverse()] != nil {
		return false
	}
	tiles := r.Tiles()
	seen := map[settlement.Pos]bool{}
	for k, p := range tiles {
		if seen[p] {
			return false
		}
		seen[p] = true
		if k == 0 || k == len(tiles)-1 {
			continue
		}
		if !e.passable(p, playerIndex) {
			return false
		}
	}
	return true
}

func (e *Engine) BuildRoad(r settlement.Road, playerIndex int) bool {
	if !e.CanBuildRoad(r, playerIndex) {
		return false
	}
	src := e.flagOn(r.Source)
	dst := e.flagOn(r.End())
	tiles := r.Tiles()
	rd := &road{
		from:    src.index,
		to:      dst.index,
		fromDir: r.Dirs[0],
		toDir:   r.Dirs[len(r.Dirs)-1].Reverse(),
		tiles:   tiles[1 : len(tiles)-1],
	}
	for _, p := range rd.tiles {
		i, _ := e.index(p)
		e.road[i] = true
	}
	src.roads[rd.fromDir] = rd
	dst.roads[rd.toDir] = rd
	return true
}

func (e *Engine) CanDemolishRoad(flagPos settlement.Pos, d settlement.Direction, playerIndex int) bool {
	f := e.flagOn(flagPos)
	if f == nil || f.owner != playerIndex || d < 0 || d >= settlement.DirectionCount {
		return false
	}
	return f.roads[d] != nil
}

func (e *Engine) DemolishRoad(flagPos settlement.Pos, d settlement.Direction, playerIndex int) bool {
	if !e.CanDemolishRoad(flagPos, d, playerIndex) {
		return false
	}
	e.removeRoad(e.flagOn(flagPos).roads[d])
	return true
}

func (e *Engine) removeRoad(rd *road) {
	for _, p := range rd.tiles {
		if i, ok := e.index(p); ok {
			e.road[i] = false
		}
	}
	if f := e.flagByIndex(rd.from); f != nil && f.roads[rd.fromDir] == rd {
		f.roads[rd.fromDir] = nil
	}
	if f := e.flagByIndex(rd.to); f != nil && f.roads[rd.toDir] == rd {
		f.roads[rd.toDir] = nil
	}
}
