package settlement

// Road is a route that starts at a flag and follows Dirs one tile at a time.
type Road struct {
	Source Pos
	Dirs   []Direction
}

func (r Road) Len() int { return len(r.Dirs) }

func (r Road) End() Pos {
	p := r.Source
	for _, d := range r.Dirs {
		p = p.Move(d)
	}
	return p
}

// Tiles returns every tile on the route, both endpoints included.
func (r Road) Tiles() []Pos {
	out := make([]Pos, 0, len(r.Dirs)+1)
	p := r.Source
	out = append(out, p)
	for _, d := range r.Dirs {
		p = p.Move(d)
		out = append(out, p)
	}
	return out
}
