package action

import (
	"math"

	"serfai/internal/domain/settlement"
)

// SearchPlan bounds a radial position search: rings from MinRadius to
// MaxRadius every RadiusStep tiles, sampled every AngleStep degrees, giving up
// after MaxTested candidates.
type SearchPlan struct {
	MinRadius  int
	MaxRadius  int
	RadiusStep int
	AngleStep  int
	MaxTested  int
}

var (
	CastleSearch   = SearchPlan{MinRadius: 1, MaxRadius: 15, RadiusStep: 1, AngleStep: 15, MaxTested: 400}
	BuildingSearch = SearchPlan{MinRadius: 1, MaxRadius: 8, RadiusStep: 1, AngleStep: 45, MaxTested: 100}
)

type SearchOutcome struct {
	Pos    settlement.Pos
	Tested int
	Found  bool
}

func (p SearchPlan) normalized(def SearchPlan) SearchPlan {
	if p.MaxTested <= 0 {
		return def
	}
	if p.MinRadius <= 0 {
		p.MinRadius = 1
	}
	if p.RadiusStep <= 0 {
		p.RadiusStep = 1
	}
	if p.AngleStep <= 0 || p.AngleStep > 360 {
		p.AngleStep = 45
	}
	return p
}

// Search tests candidates outward from center and returns the first one
// accept approves. Off-map candidates are skipped without counting; every
// returned position was passed to accept.
func (p SearchPlan) Search(center settlement.Pos, inBounds func(settlement.Pos) bool, accept func(settlement.Pos) bool) SearchOutcome {
	out := SearchOutcome{}
	seen := map[settlement.Pos]bool{center: true}
	for r := p.MinRadius; r <= p.MaxRadius; r += p.RadiusStep {
		for deg := 0; deg < 360; deg += p.AngleStep {
			rad := float64(deg) * math.Pi / 180
			c := center.Add(int(math.Round(float64(r)*math.Cos(rad))), int(math.Round(float64(r)*math.Sin(rad))))
			if seen[c] || !inBounds(c) {
				continue
			}
			seen[c] = true
			out.Tested++
			if accept(c) {
				out.Pos = c
				out.Found = true
				return out
			}
			if out.Tested >= p.MaxTested {
				return out
			}
		}
	}
	return out
}
