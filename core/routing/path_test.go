package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/taxisim/core/model"
)

func loc(x, y int) model.Location { return model.Location{X: x, Y: y} }

func TestDistance(t *testing.T) {
	points := []model.Location{loc(0, 0), loc(3, -4), loc(-2, 7), loc(5, 5), loc(-6, -1)}
	for _, a := range points {
		assert.Equal(t, 0, Distance(a, a), "distance to self for %v", a)
		for _, b := range points {
			assert.Equal(t, Distance(a, b), Distance(b, a), "symmetry %v %v", a, b)
		}
	}
	assert.Equal(t, 7, Distance(loc(0, 0), loc(3, -4)))
}

func TestPathProperties(t *testing.T) {
	for sx := -2; sx <= 2; sx++ {
		for sy := -2; sy <= 2; sy++ {
			for ex := -3; ex <= 3; ex++ {
				for ey := -3; ey <= 3; ey++ {
					start, end := loc(sx, sy), loc(ex, ey)
					p := Path(start, end)
					require.Len(t, p, Distance(start, end)+1, "len %v->%v", start, end)
					require.Equal(t, start, p[0])
					require.Equal(t, end, p[len(p)-1])
					for i := 1; i < len(p); i++ {
						require.Equal(t, 1, Distance(p[i-1], p[i]), "step %d of %v->%v", i, start, end)
					}
				}
			}
		}
	}
}

func TestPathVerticalFirst(t *testing.T) {
	got := Path(loc(0, 0), loc(2, 2))
	want := []model.Location{loc(0, 0), loc(0, 1), loc(0, 2), loc(1, 2), loc(2, 2)}
	assert.Equal(t, want, got)

	got = Path(loc(1, 1), loc(-1, -1))
	want = []model.Location{loc(1, 1), loc(1, 0), loc(1, -1), loc(0, -1), loc(-1, -1)}
	assert.Equal(t, want, got)
}

func TestPathSinglePoint(t *testing.T) {
	assert.Equal(t, []model.Location{loc(4, 4)}, Path(loc(4, 4), loc(4, 4)))
}

func TestCarPath(t *testing.T) {
	got := CarPath(loc(0, 0), loc(0, 0), loc(2, 0))
	assert.Equal(t, []model.Location{loc(0, 0), loc(1, 0), loc(2, 0)}, got)

	got = CarPath(loc(0, 0), loc(0, 1), loc(1, 1))
	assert.Equal(t, []model.Location{loc(0, 0), loc(0, 1), loc(1, 1)}, got)

	got = CarPath(loc(2, 2), loc(2, 2), loc(2, 2))
	assert.Equal(t, []model.Location{loc(2, 2)}, got)
}

func TestCarPathLength(t *testing.T) {
	car, pickup, dest := loc(-1, 3), loc(2, 0), loc(4, 4)
	p := CarPath(car, pickup, dest)
	assert.Len(t, p, Distance(car, pickup)+Distance(pickup, dest)+1)
	assert.Contains(t, p, pickup)
}
