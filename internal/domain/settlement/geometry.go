package settlement

import "fmt"

// Pos is a tile coordinate. The zero value doubles as "no position": tile
// (0,0) sits on the map border and never hosts a building or flag.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Pos) IsZero() bool { return p.X == 0 && p.Y == 0 }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

func (p Pos) Add(dx, dy int) Pos { return Pos{X: p.X + dx, Y: p.Y + dy} }

func (p Pos) Move(d Direction) Pos {
	off := dirOffsets[d%DirectionCount]
	return Pos{X: p.X + off[0], Y: p.Y + off[1]}
}

type Direction int

const (
	DirRight Direction = iota
	DirDownRight
	DirDown
	DirLeft
	DirUpLeft
	DirUp
)

const DirectionCount = 6

var dirOffsets = [DirectionCount][2]int{
	DirRight:     {1, 0},
	DirDownRight: {1, 1},
	DirDown:      {0, 1},
	DirLeft:      {-1, 0},
	DirUpLeft:    {-1, -1},
	DirUp:        {0, -1},
}

var dirNames = [DirectionCount]string{"right", "down-right", "down", "left", "up-left", "up"}

func (d Direction) Reverse() Direction { return (d + 3) % DirectionCount }

func (d Direction) String() string {
	if d < 0 || d >= DirectionCount {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return dirNames[d]
}

// Directions lists the six hex directions in slot order.
func Directions() [DirectionCount]Direction {
	return [DirectionCount]Direction{DirRight, DirDownRight, DirDown, DirLeft, DirUpLeft, DirUp}
}

// HexDistance is the step count between two tiles on the skewed hex grid
// where down-right is a single step.
func HexDistance(a, b Pos) int {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if (dx >= 0 && dy >= 0) || (dx <= 0 && dy <= 0) {
		return max(abs(dx), abs(dy))
	}
	return abs(dx) + abs(dy)
}

// Disc returns every tile within radius of center, center first, ordered by
// distance. Tiles are not bounds checked.
func Disc(center Pos, radius int) []Pos {
	out := []Pos{center}
	for r := 1; r <= radius; r++ {
		out = append(out, Ring(center, r)...)
	}
	return out
}

// Ring returns the tiles exactly r steps from center.
func Ring(center Pos, r int) []Pos {
	if r <= 0 {
		return []Pos{center}
	}
	out := make([]Pos, 0, 6*r)
	p := center
	for i := 0; i < r; i++ {
		p = p.Move(DirUp)
	}
	for _, side := range ringSides {
		for i := 0; i < r; i++ {
			out = append(out, p)
			p = p.Move(side)
		}
	}
	return out
}

// ringSides walks a hex ring clockwise from the top corner (center + r*Up).
var ringSides = [DirectionCount]Direction{DirDownRight, DirDown, DirLeft, DirUpLeft, DirUp, DirRight}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
