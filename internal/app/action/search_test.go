package action

import (
	"math/rand"
	"testing"

	"serfai/internal/domain/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTerminatesWithinBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	inBounds := func(p settlement.Pos) bool { return p.X >= 1 && p.Y >= 1 && p.X < 63 && p.Y < 63 }

	for _, plan := range []SearchPlan{CastleSearch, BuildingSearch} {
		for trial := 0; trial < 200; trial++ {
			center := settlement.Pos{X: rng.Intn(64), Y: rng.Intn(64)}
			legal := map[settlement.Pos]bool{}
			density := rng.Float64() * 0.05
			for x := 0; x < 64; x++ {
				for y := 0; y < 64; y++ {
					if rng.Float64() < density {
						legal[settlement.Pos{X: x, Y: y}] = true
					}
				}
			}

			tested := map[settlement.Pos]bool{}
			out := plan.Search(center, inBounds, func(p settlement.Pos) bool {
				require.True(t, inBounds(p), "candidate %s off the map", p)
				require.False(t, tested[p], "candidate %s tested twice", p)
				tested[p] = true
				return legal[p]
			})

			require.LessOrEqual(t, out.Tested, plan.MaxTested)
			require.Equal(t, len(tested), out.Tested)
			if out.Found {
				assert.True(t, tested[out.Pos], "returned an untested position")
				assert.True(t, legal[out.Pos])
			} else {
				for p := range tested {
					assert.False(t, legal[p], "missed legal candidate %s", p)
				}
			}
		}
	}
}

func TestCastleSearchIsWiderThanBuildingSearch(t *testing.T) {
	assert.Greater(t, CastleSearch.MaxRadius, BuildingSearch.MaxRadius)
	assert.Less(t, CastleSearch.AngleStep, BuildingSearch.AngleStep)
	assert.Greater(t, CastleSearch.MaxTested, BuildingSearch.MaxTested)
}

func TestSearchFindsNearestRingFirst(t *testing.T) {
	center := settlement.Pos{X: 30, Y: 30}
	out := BuildingSearch.Search(center, func(settlement.Pos) bool { return true }, func(p settlement.Pos) bool {
		return settlement.HexDistance(center, p) <= 2 && p != center
	})
	require.True(t, out.Found)
	assert.Equal(t, 1, out.Tested)
}
